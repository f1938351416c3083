package quality

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrNotFound reports a deck path that does not exist.
	ErrNotFound = errors.New("quality: deck not found")
	// ErrMalformed reports a file that is not a readable presentation package.
	ErrMalformed = errors.New("quality: malformed deck")
	// ErrInvalidConfig reports thresholds that cannot be applied.
	ErrInvalidConfig = errors.New("quality: invalid config")
)

const (
	textCodeNotFound      = "QUALITY_DECK_NOT_FOUND"
	textCodeMalformed     = "QUALITY_MALFORMED_DECK"
	textCodeInvalidConfig = "QUALITY_INVALID_CONFIG"
)

func notFoundError(path string, cause error) error {
	return goerrors.Wrap(errors.Join(ErrNotFound, cause), goerrors.CategoryValidation, "deck not found: "+path).
		WithTextCode(textCodeNotFound)
}

func malformedError(path string, cause error) error {
	return goerrors.Wrap(errors.Join(ErrMalformed, cause), goerrors.CategoryCommand, "open deck: "+path).
		WithTextCode(textCodeMalformed)
}

func invalidConfigError(cause error) error {
	return goerrors.Wrap(errors.Join(ErrInvalidConfig, cause), goerrors.CategoryValidation, "quality config is invalid").
		WithTextCode(textCodeInvalidConfig)
}
