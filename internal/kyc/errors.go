package kyc

import "errors"

var (
	// ErrNotFound indicates a missing KYC record.
	ErrNotFound = errors.New("kyc record not found")
	// ErrInvalidInput indicates missing or malformed caller input.
	ErrInvalidInput = errors.New("invalid input")
)
