package extract

import "fmt"

// UnsupportedTypeError reports a file extension outside the supported classes.
// It is recoverable: batch callers skip the file and continue.
type UnsupportedTypeError struct {
	Extension string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.Extension)
}

// CorruptImageError reports bytes that could not be decoded as an image.
type CorruptImageError struct {
	Err error
}

func (e *CorruptImageError) Error() string {
	return fmt.Sprintf("cannot identify image file: %v", e.Err)
}

func (e *CorruptImageError) Unwrap() error { return e.Err }

// EncodingError reports a plain-text payload that is not valid UTF-8.
type EncodingError struct{}

func (e *EncodingError) Error() string {
	return "text file is not valid UTF-8"
}
