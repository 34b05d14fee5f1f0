package app

import (
	"errors"

	"github.com/drdhaval2785/prakriya/pkg/prakriya"
)

// Exit statuses of the command line tools.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitScript      = 3
	ExitUnknownForm = 4
	ExitUnknownFld  = 5
	ExitUnknownVerb = 6
	ExitTense       = 7
	ExitPerson      = 8
	ExitVachana     = 9
	ExitSuffix      = 10
	ExitNoData      = 11
	ExitUnavailable = 12
)

var exitCodes = []struct {
	err  error
	code int
}{
	{prakriya.ErrInvalidScript, ExitScript},
	{prakriya.ErrUnknownForm, ExitUnknownForm},
	{prakriya.ErrUnknownField, ExitUnknownFld},
	{prakriya.ErrUnknownVerb, ExitUnknownVerb},
	{prakriya.ErrInvalidTense, ExitTense},
	{prakriya.ErrInvalidPerson, ExitPerson},
	{prakriya.ErrInvalidVachana, ExitVachana},
	{prakriya.ErrInvalidSuffix, ExitSuffix},
	{prakriya.ErrNoData, ExitNoData},
	{prakriya.ErrDatasetUnavailable, ExitUnavailable},
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, c := range exitCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ExitFailure
}
