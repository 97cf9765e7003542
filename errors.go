package livefyre

import (
	"errors"
	"fmt"
)

// InvalidArgumentError is returned before any signing or network call when
// an input fails validation.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e InvalidArgumentError) Error() string {
	if e.Field == "" {
		return "invalid argument"
	}
	return fmt.Sprintf("invalid argument %s: %s", e.Field, e.Reason)
}

// Is enables errors.Is matching on InvalidArgumentError.
func (e InvalidArgumentError) Is(target error) bool {
	_, ok := target.(InvalidArgumentError)
	if ok {
		return true
	}
	_, ok = target.(*InvalidArgumentError)
	return ok
}

// ErrInvalidArgument is the sentinel for validation failures.
var ErrInvalidArgument = InvalidArgumentError{}

func invalid(field, format string, args ...any) error {
	return InvalidArgumentError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// TokenError wraps a failure to sign or decode a token.
type TokenError struct {
	Op  string
	Err error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return "token: " + e.Op
	}
	return fmt.Sprintf("token: %s: %v", e.Op, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

// Is enables errors.Is matching against ErrToken.
func (e *TokenError) Is(target error) bool {
	_, ok := target.(*TokenError)
	return ok
}

// ErrToken is the sentinel for token failures.
var ErrToken = &TokenError{}

// RemoteServiceError carries an unexpected status returned by Livefyre.
type RemoteServiceError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("livefyre: %s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Is enables errors.Is matching against ErrRemoteService.
func (e *RemoteServiceError) Is(target error) bool {
	_, ok := target.(*RemoteServiceError)
	return ok
}

// ErrRemoteService is the sentinel for unexpected remote statuses.
var ErrRemoteService = &RemoteServiceError{}

// ErrCollectionIDUnset is returned when the collection id is read before a
// successful create or update.
var ErrCollectionIDUnset = errors.New("collection id is not set; sync the collection first")
