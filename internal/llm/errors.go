package llm

import "errors"

// ErrJSONModeUnsupported is returned when the target model rejects the
// structured-JSON response mode. It is not a failure of the request itself.
var ErrJSONModeUnsupported = errors.New("model does not support JSON response mode")

// TransientError marks a failure worth retrying: network errors, rate
// limits and 5xx-class provider failures.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient call failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err as retryable.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err (anywhere in its chain) is retryable.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}
