package main

import (
	"errors"

	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dsl"
	"github.com/k-yle/jsx-pdf/pkg/lib"
)

var dslErrors = []error{
	dsl.ErrComponentExists,
	dsl.ErrUnknownKind,
	dsl.ErrCycleDetected,
	dsl.ErrInvalidNode,
	dsl.ErrMissingParam,
	dsl.ErrUnknownParam,
}

// errorFamily names the kind of failure behind err for labels and metrics.
func errorFamily(err error) string {
	if errors.Is(err, dsl.ErrScript) {
		return "script"
	}
	for _, target := range dslErrors {
		if errors.Is(err, target) {
			return "dsl"
		}
	}
	return lib.Family(err)
}
