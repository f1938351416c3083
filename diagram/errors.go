package diagram

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// ErrInvalidInput reports generator input that cannot be laid out.
var ErrInvalidInput = errors.New("diagram: invalid input")

const (
	textCodeInvalidInput = "DIAGRAM_INVALID_INPUT"
	textCodeWrite        = "DIAGRAM_WRITE_FAILED"
	textCodeEncode       = "DIAGRAM_ENCODE_FAILED"
)

func invalidInputError(name, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrInvalidInput, msg), goerrors.CategoryValidation, name+": "+msg).
		WithTextCode(textCodeInvalidInput)
}

func writeError(name string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryCommand, "write diagram "+name).
		WithTextCode(textCodeWrite)
}

func encodeError(name string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryCommand, "encode diagram "+name).
		WithTextCode(textCodeEncode)
}
