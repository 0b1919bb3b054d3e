package posts

import "errors"

var (
	// ErrPostNotFound indicates the requested post doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidPost indicates the post input failed validation
	ErrInvalidPost = errors.New("invalid post")

	// ErrImportFailed indicates the remote document could not be fetched or
	// parsed
	ErrImportFailed = errors.New("post import failed")
)

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidPost)
}
