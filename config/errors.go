package config

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// ErrInvalid reports a configuration that fails validation.
var ErrInvalid = errors.New("config: invalid")

const (
	textCodeRead    = "CONFIG_READ_FAILED"
	textCodeDecode  = "CONFIG_DECODE_FAILED"
	textCodeInvalid = "CONFIG_INVALID"
)

func readError(path string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryValidation, "read config "+path).
		WithTextCode(textCodeRead)
}

func decodeError(cause error) error {
	return goerrors.Wrap(errors.Join(ErrInvalid, cause), goerrors.CategoryValidation, "config is not valid YAML").
		WithTextCode(textCodeDecode)
}

func invalidError(cause error) error {
	return goerrors.Wrap(errors.Join(ErrInvalid, cause), goerrors.CategoryValidation, "config is invalid").
		WithTextCode(textCodeInvalid)
}
