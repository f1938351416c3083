package merge

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNoInputs reports that no presentation files were given or found.
var ErrNoInputs = errors.New("merge: no input files")

const (
	textCodeNoInputs = "MERGE_NO_INPUTS"
	textCodeWrite    = "MERGE_WRITE_FAILED"
	textCodeList     = "MERGE_LIST_FAILED"
)

func noInputsError(msg string) error {
	return goerrors.Wrap(ErrNoInputs, goerrors.CategoryValidation, msg).
		WithTextCode(textCodeNoInputs)
}

func writeError(cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryCommand, "write merged deck").
		WithTextCode(textCodeWrite)
}

func listError(dir string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryCommand, "list input directory "+dir).
		WithTextCode(textCodeList)
}
