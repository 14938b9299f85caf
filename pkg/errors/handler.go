package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	handlerMu sync.RWMutex
	// DefaultHandler receives every reported error. Replace it with
	// SetHandler.
	DefaultHandler ErrorHandler = &LogHandler{}
)

// SetHandler installs h as the global handler. Nil restores a quiet
// LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

func handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report stamps err and hands it to the global handler.
func Report(err *Error) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := handler(); h != nil {
		h.HandleError(err)
	}
}

// Recover turns a panic of the deferring function into a KindPanic error
// for the given package item. The error is reported and, when errp is
// not nil, stored in *errp. It must be deferred directly:
//
//	defer errors.Recover(&err, "construct.Run.callback", "Main", "Window")
func Recover(errp *error, op, pkg, item string) {
	r := recover()
	if r == nil {
		return
	}
	e := &Error{
		Op:         op,
		Kind:       KindPanic,
		Package:    pkg,
		Item:       item,
		Err:        &PanicError{Value: r},
		StackTrace: CaptureStack(),
	}
	Report(e)
	if errp != nil {
		*errp = e
	}
}

// CaptureStack formats the stack of its caller's caller.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}
