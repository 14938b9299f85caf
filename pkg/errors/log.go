package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs an Error. Recovered panics are tagged as such.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	w := h.out()
	tag := "error"
	if err.Kind == KindPanic {
		tag = "panic"
	}
	if !h.Verbose {
		fmt.Fprintf(w, "[uipack %s] %s: %v\n", tag, err.Op, err.Err)
		return
	}
	fmt.Fprintf(w, "[uipack %s] %s [%s]", tag, err.Op, err.Kind)
	if err.Package != "" || err.Item != "" {
		fmt.Fprintf(w, " item=%s/%s", err.Package, err.Item)
	}
	fmt.Fprintf(w, ": %v\n", err.Err)
	if err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
