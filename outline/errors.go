package outline

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrNotFound reports a markdown path that does not exist.
	ErrNotFound = errors.New("outline: input not found")
	// ErrMalformed reports input that is not valid UTF-8 or has broken front matter.
	ErrMalformed = errors.New("outline: malformed input")
)

const (
	textCodeNotFound  = "OUTLINE_INPUT_NOT_FOUND"
	textCodeMalformed = "OUTLINE_MALFORMED_INPUT"
	textCodeRead      = "OUTLINE_READ_FAILED"
)

func notFoundError(path string, cause error) error {
	return goerrors.Wrap(errors.Join(ErrNotFound, cause), goerrors.CategoryValidation, "markdown file not found: "+path).
		WithTextCode(textCodeNotFound)
}

func malformedError(msg string, cause error) error {
	err := ErrMalformed
	if cause != nil {
		err = errors.Join(ErrMalformed, cause)
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, msg).
		WithTextCode(textCodeMalformed)
}

func readError(cause error) error {
	if goerrors.IsWrapped(cause) {
		return cause
	}
	return goerrors.Wrap(cause, goerrors.CategoryCommand, "read markdown").
		WithTextCode(textCodeRead)
}
