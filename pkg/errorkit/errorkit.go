// Package errorkit holds the error primitives shared across the bimap packages.
package errorkit

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a string based error type that allows declaring sentinel errors as constants.
//
//	const ErrSomething errorkit.Error = "ErrSomething"
type Error string

func (err Error) Error() string { return string(err) }

// Wrap bundles another error value together with this Error.
// Both remain reachable through errors.Is and errors.As.
func (err Error) Wrap(oth error) error {
	if oth == nil {
		return err
	}
	return wrapper{Owner: err, Wrapped: oth}
}

// F formats a detail message and attaches it to the Error.
func (err Error) F(format string, a ...any) error { return err.Wrap(fmt.Errorf(format, a...)) }

type wrapper struct {
	Owner   Error
	Wrapped error
}

func (w wrapper) Error() string {
	return fmt.Sprintf("[%s] %s", w.Owner, w.Wrapped.Error())
}

func (w wrapper) As(target any) bool {
	return errors.As(w.Owner, target) || errors.As(w.Wrapped, target)
}

func (w wrapper) Is(target error) bool {
	return errors.Is(w.Owner, target) || errors.Is(w.Wrapped, target)
}

func (w wrapper) Unwrap() error { return w.Wrapped }

// Merge combines the non-nil errors into a single error value.
// It returns nil when no error is given,
// and the error itself when only one non-nil error is present.
func Merge(errs ...error) error {
	var present []error
	for _, err := range errs {
		if err != nil {
			present = append(present, err)
		}
	}
	switch len(present) {
	case 0:
		return nil
	case 1:
		return present[0]
	default:
		return multiError(present)
	}
}

// Finish is meant to be used from a deferred call to fold the result of a closing function into the returned error.
//
//	defer errorkit.Finish(&returnErr, file.Close)
func Finish(returnErr *error, blk func() error) {
	*returnErr = Merge(*returnErr, blk())
}

type multiError []error

func (errs multiError) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

func (errs multiError) As(target any) bool {
	for _, err := range errs {
		if errors.As(err, target) {
			return true
		}
	}
	return false
}

func (errs multiError) Is(target error) bool {
	for _, err := range errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
