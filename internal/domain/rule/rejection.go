package rule

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies why a command was rejected.
type Kind string

const (
	KindStructural Kind = "structural"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
)

// Sentinels each rejection kind matches through errors.Is.
var (
	ErrStructural = errors.New("invalid input")
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("conflict")
)

// Rejection is the value every validating operation returns instead of a verdict-less error.
type Rejection struct {
	Kind    Kind
	Field   string
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func (r *Rejection) Is(target error) bool {
	switch r.Kind {
	case KindStructural:
		return target == ErrStructural
	case KindNotFound:
		return target == ErrNotFound
	case KindConflict:
		return target == ErrConflict
	default:
		return false
	}
}

func Structural(field, format string, args ...any) *Rejection {
	return newRejection(KindStructural, field, format, args...)
}

func NotFound(field, format string, args ...any) *Rejection {
	return newRejection(KindNotFound, field, format, args...)
}

func Conflict(field, format string, args ...any) *Rejection {
	return newRejection(KindConflict, field, format, args...)
}

func newRejection(kind Kind, field, format string, args ...any) *Rejection {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Rejection{Kind: kind, Field: field, Message: msg}
}

// As unwraps err looking for a Rejection.
func As(err error) (*Rejection, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}

// KindOf reports the rejection kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	rejection, ok := As(err)
	if !ok {
		return "", false
	}
	return rejection.Kind, true
}
