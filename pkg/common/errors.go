package common

import "errors"

// AsError is errors.As which returns the target instead of filling it.
func AsError[T error](err error) (T, bool) {
	var target T
	return target, errors.As(err, &target)
}
