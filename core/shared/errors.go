package shared

import "errors"

var (
	ErrConfigNotFound      = errors.New("configuration file not found")
	ErrUnsupportedFormat   = errors.New("unsupported configuration format")
	ErrMalformedDocument   = errors.New("malformed route configuration")
	ErrMissingPrecondition = errors.New("missing project precondition")
)

// HintedError carries a short suggestion printed under the error message.
type HintedError struct {
	Err  error
	Hint string
}

func (e *HintedError) Error() string {
	return e.Err.Error()
}

func (e *HintedError) Unwrap() error {
	return e.Err
}

func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &HintedError{Err: err, Hint: hint}
}

// HintOf returns the outermost hint found in err's chain, or "".
func HintOf(err error) string {
	var hinted *HintedError
	if errors.As(err, &hinted) {
		return hinted.Hint
	}
	return ""
}
