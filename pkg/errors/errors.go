// Package errors provides structured error reporting for package loading
// and object construction.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindParse indicates a malformed package or item description.
	KindParse
	// KindResolve indicates an item reference that could not be resolved.
	KindResolve
	// KindConstruct indicates a failure while materializing objects.
	KindConstruct
	// KindPanic indicates a recovered panic. Err is a *PanicError.
	KindPanic
	// KindStore indicates a package store failure.
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindResolve:
		return "resolve"
	case KindConstruct:
		return "construct"
	case KindPanic:
		return "panic"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is a structured error raised while loading or constructing UI.
type Error struct {
	// Op is the operation that failed (e.g., "construct.Flatten").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Package is the name or id of the package involved, if any.
	Package string
	// Item is the item involved, if any.
	Item string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	fmt.Fprintf(&sb, " [%s]", e.Kind)
	if e.Package != "" || e.Item != "" {
		fmt.Fprintf(&sb, " item=%s/%s", e.Package, e.Item)
	}
	fmt.Fprintf(&sb, ": %v", e.Err)
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError is the Err of a KindPanic error: the value passed to panic.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives reported errors, recovered panics included.
type ErrorHandler interface {
	HandleError(err *Error)
}
