package slidespec

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrInvalidStyle reports a Style that cannot be rendered.
	ErrInvalidStyle = errors.New("slidespec: invalid style")
	// ErrInvalidSlide reports a SlideSpec with unusable geometry or content.
	ErrInvalidSlide = errors.New("slidespec: invalid slide")
)

const (
	textCodeInvalidStyle = "SLIDESPEC_INVALID_STYLE"
	textCodeInvalidSlide = "SLIDESPEC_INVALID_SLIDE"
	textCodeRender       = "SLIDESPEC_RENDER_FAILED"
)

func invalidStyleError(cause error) error {
	return goerrors.Wrap(errors.Join(ErrInvalidStyle, cause), goerrors.CategoryValidation, "style is invalid").
		WithTextCode(textCodeInvalidStyle)
}

func invalidSlideError(index int, cause error) error {
	return goerrors.Wrap(errors.Join(ErrInvalidSlide, cause), goerrors.CategoryValidation, fmt.Sprintf("slide %d is invalid", index+1)).
		WithTextCode(textCodeInvalidSlide)
}

func renderError(msg string, cause error) error {
	if goerrors.IsWrapped(cause) {
		return cause
	}
	return goerrors.Wrap(cause, goerrors.CategoryCommand, msg).
		WithTextCode(textCodeRender)
}
