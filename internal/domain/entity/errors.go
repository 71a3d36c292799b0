package entity

import "errors"

// Structural failures abort a render and no document is returned.
// ErrImageEmbed is cosmetic: renderers absorb it and draw without the image.
var (
	ErrCorruptDocument   = errors.New("corrupt document")
	ErrFontUnavailable   = errors.New("font unavailable")
	ErrAssetFetchTimeout = errors.New("asset fetch timeout")
	ErrImageEmbed        = errors.New("image embed failure")
	ErrInvalidRequest    = errors.New("invalid request")
)

// ErrorCode classifies err for API responses and the render audit log. A fetch
// timeout is reported ahead of the font failure it caused.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRequest):
		return CodeBadRequest
	case errors.Is(err, ErrCorruptDocument):
		return CodeCorruptDocument
	case errors.Is(err, ErrAssetFetchTimeout):
		return CodeAssetTimeout
	case errors.Is(err, ErrFontUnavailable):
		return CodeFontUnavailable
	default:
		return CodeInternalError
	}
}
