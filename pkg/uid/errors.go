package uid

import "errors"

var (
	ErrInvalidAlphabetType = errors.New("alphabet must be a string or symbol sequence")
	ErrAlphabetTooShort    = errors.New("alphabet must have at least 2 symbols")
	ErrInvalidBitStrength  = errors.New("bit strength must be a positive multiple of 8")
	ErrInvalidOutputLength = errors.New("output length must be a positive integer")
	ErrConflictingSize     = errors.New("bit strength and output length are mutually exclusive")
	ErrEntropyUnavailable  = errors.New("entropy source unavailable")
	ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")
	ErrLengthMismatch      = errors.New("identifier length mismatch")
)

// IsConfigError reports whether err comes from an invalid generator
// configuration rather than from generation itself.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidAlphabetType) ||
		errors.Is(err, ErrAlphabetTooShort) ||
		errors.Is(err, ErrInvalidBitStrength) ||
		errors.Is(err, ErrInvalidOutputLength) ||
		errors.Is(err, ErrConflictingSize)
}
