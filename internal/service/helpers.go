package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/steelbuild/internal/domain"
)

// without returns ids with every occurrence of id removed.
func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ValidationErrors is an aggregated validation result. It matches
// domain.ErrValidation and exposes every underlying error.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(v))
	for _, e := range v {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}

func (v ValidationErrors) Unwrap() []error {
	return append([]error{domain.ErrValidation}, v...)
}

func formatValidationErrors(errs []error) error {
	return ValidationErrors(errs)
}
