package testing

import (
	"sync"
	"testing"

	uierrors "github.com/go-drift/uipack/pkg/errors"
)

// ErrorLog records reported errors.
type ErrorLog struct {
	mu     sync.Mutex
	errors []*uierrors.Error
}

// RecordErrors installs an ErrorLog as the global error handler for the
// duration of the test.
func RecordErrors(tb testing.TB) *ErrorLog {
	tb.Helper()
	log := &ErrorLog{}
	uierrors.SetHandler(log)
	tb.Cleanup(func() { uierrors.SetHandler(nil) })
	return log
}

func (l *ErrorLog) HandleError(err *uierrors.Error) {
	l.mu.Lock()
	l.errors = append(l.errors, err)
	l.mu.Unlock()
}

// Errors returns the reported errors in order, recovered panics included.
func (l *ErrorLog) Errors() []*uierrors.Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*uierrors.Error(nil), l.errors...)
}

// Panics returns the reported KindPanic errors in order.
func (l *ErrorLog) Panics() []*uierrors.Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var panics []*uierrors.Error
	for _, err := range l.errors {
		if err.Kind == uierrors.KindPanic {
			panics = append(panics, err)
		}
	}
	return panics
}
