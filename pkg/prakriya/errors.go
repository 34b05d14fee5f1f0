package prakriya

import (
	"errors"
	"fmt"
	"strings"

	"github.com/drdhaval2785/prakriya/pkg/dataset"
	"github.com/drdhaval2785/prakriya/pkg/translit"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidScript      = translit.ErrInvalidScript
	ErrDatasetUnavailable = dataset.ErrDatasetUnavailable

	ErrUnknownForm    = errors.New("unknown verb form")
	ErrUnknownField   = errors.New("unknown field")
	ErrUnknownVerb    = errors.New("unknown verb")
	ErrInvalidTense   = errors.New("invalid tense")
	ErrInvalidPerson  = errors.New("invalid purusha")
	ErrInvalidVachana = errors.New("invalid vachana")
	ErrInvalidSuffix  = errors.New("invalid suffix")
	ErrNoData         = errors.New("data is not available")
)

// QueryError carries the offending value of a failed query.
type QueryError struct {
	Kind    error
	Value   string
	Allowed []string
}

func (e *QueryError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("%v %q (want one of %s)", e.Kind, e.Value, strings.Join(e.Allowed, ", "))
	}
	if e.Value == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v %q", e.Kind, e.Value)
}

func (e *QueryError) Unwrap() error { return e.Kind }

func queryErr(kind error, value string) error {
	return &QueryError{Kind: kind, Value: value}
}
