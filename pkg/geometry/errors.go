package geometry

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures raised anywhere in modelgen.
type ErrorKind int

const (
	KindIO           ErrorKind = iota // file system or stream failure
	KindInvalidModel                  // malformed mesh or recipe data
	KindExport                        // serialization failure
	KindImport                        // parse failure
	KindTransform                     // raised by the transform core
	KindPlugin                        // raised by plugins
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindInvalidModel:
		return "invalid model data"
	case KindExport:
		return "export error"
	case KindImport:
		return "import error"
	case KindTransform:
		return "transform error"
	case KindPlugin:
		return "plugin error"
	default:
		return "error"
	}
}

// Error is the typed error returned by modelgen packages. Op names the
// operation that failed (a transform, an exporter, a plugin).
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

// Sentinels for errors.Is matching on kind alone.
var (
	ErrIO           = &Error{Kind: KindIO}
	ErrInvalidModel = &Error{Kind: KindInvalidModel}
	ErrExport       = &Error{Kind: KindExport}
	ErrImport       = &Error{Kind: KindImport}
	ErrTransform    = &Error{Kind: KindTransform}
	ErrPlugin       = &Error{Kind: KindPlugin}
)

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg != "" {
			msg += ": " + e.Err.Error()
		} else {
			msg = e.Err.Error()
		}
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrTransform)
// works regardless of Op and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func newError(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// TransformError reports a failure inside a transform.
func TransformError(op, format string, args ...any) error {
	return newError(KindTransform, op, format, args...)
}

// InvalidModelError reports malformed model or recipe data.
func InvalidModelError(op, format string, args ...any) error {
	return newError(KindInvalidModel, op, format, args...)
}

// ExportError reports a serialization failure.
func ExportError(op, format string, args ...any) error {
	return newError(KindExport, op, format, args...)
}

// ImportError reports a parse failure.
func ImportError(op, format string, args ...any) error {
	return newError(KindImport, op, format, args...)
}

// PluginError reports a plugin failure.
func PluginError(op, format string, args ...any) error {
	return newError(KindPlugin, op, format, args...)
}

// Wrap attaches a kind and operation to an underlying error. A nil err
// returns nil.
func Wrap(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
