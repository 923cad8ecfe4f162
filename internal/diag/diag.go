// Package diag reports broken internal invariants.
//
// It is reserved for conditions that indicate a bug in ssbuf itself or a
// caller breaking an ownership contract (using a value after handing its
// buffer away). Ordinary input validation never goes through here; those
// failures are returned as errors.
package diag

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

// BacktraceEnv enables full stack traces in fatal reports when set to "1".
const BacktraceEnv = "SSBUF_FULL_BACKTRACE"

var fullBacktrace atomic.Bool

func init() {
	fullBacktrace.Store(os.Getenv(BacktraceEnv) == "1")
}

// SetFullBacktrace toggles stack traces in fatal reports.
func SetFullBacktrace(on bool) {
	fullBacktrace.Store(on)
}

// Failure is the panic value raised by Assert.
type Failure struct {
	Message string
	File    string
	Line    int
	Stack   []byte
}

func (f *Failure) Error() string {
	if len(f.Stack) == 0 {
		return f.Message
	}
	return f.Message + "\n" + string(f.Stack)
}

// Assert panics with a *Failure when cond is false.
// An empty format yields the default "assertion failed" notice.
func Assert(cond bool, format string, args ...any) {
	if cond {
		return
	}
	f := report(2, format, args...)
	if fullBacktrace.Load() {
		f.Stack = debug.Stack()
	}
	panic(f)
}

// Check logs the report when cond is false and returns cond.
func Check(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	log.Print(report(2, format, args...).Message)
	return false
}

func report(skip int, format string, args ...any) *Failure {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		file = "???"
	}
	file = filepath.Base(file)

	var msg string
	if format == "" {
		msg = fmt.Sprintf("%s (%d): assertion failed", file, line)
	} else {
		msg = strings.TrimRight(fmt.Sprintf(format, args...), "\n")
		msg = fmt.Sprintf("%s\tin %s at line %d", msg+"\n", file, line)
	}
	return &Failure{Message: msg, File: file, Line: line}
}
