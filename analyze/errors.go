package analyze

import (
	"errors"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNotFound reports a deck path that does not exist.
var ErrNotFound = errors.New("analyze: deck not found")

const (
	textCodeNotFound = "ANALYZE_DECK_NOT_FOUND"
	textCodeOpen     = "ANALYZE_OPEN_FAILED"
)

func openError(path string, cause error) error {
	if errors.Is(cause, fs.ErrNotExist) {
		return goerrors.Wrap(errors.Join(ErrNotFound, cause), goerrors.CategoryValidation, "deck not found: "+path).
			WithTextCode(textCodeNotFound)
	}
	return goerrors.Wrap(cause, goerrors.CategoryCommand, "open deck: "+path).
		WithTextCode(textCodeOpen)
}
