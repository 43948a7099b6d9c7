// Package selflog provides internal diagnostic logging for mtlog.
//
// When enabled, selflog reports conditions that would otherwise be silently
// discarded, such as malformed struct tags or the plans compiled by the
// attributed policy. Output goes through a zap core so that diagnostics use
// the same encoding regardless of destination.
//
// Enable selflog to write to stderr:
//
//	selflog.Enable(os.Stderr)
//	defer selflog.Disable()
//
// Enable with a custom handler:
//
//	selflog.EnableFunc(func(msg string) {
//	    t.Log(msg)
//	})
//
// Messages are formatted as:
//
//	2025-01-29T15:30:45Z	[component] message details
//
// Set MTLOG_SELFLOG to "stderr", "stdout" or a file path to enable it on
// startup.
package selflog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.SugaredLogger]

// Enable activates self-logging to the provided writer. Writes are
// serialized, so w does not need to be safe for concurrent use.
func Enable(w io.Writer) {
	if w == nil {
		return
	}
	current.Store(newLogger(zapcore.Lock(zapcore.AddSync(w))))
}

// EnableFunc activates self-logging using a callback function that receives
// one formatted line per message, without the trailing newline.
func EnableFunc(fn func(string)) {
	if fn == nil {
		return
	}
	current.Store(newLogger(zapcore.Lock(zapcore.AddSync(funcWriter(fn)))))
}

// Disable deactivates self-logging.
func Disable() {
	current.Store(nil)
}

// IsEnabled returns true if selflog is currently enabled.
// Use this to avoid formatting costs when disabled:
//
//	if selflog.IsEnabled() {
//	    selflog.Printf("[sink] processed %d events", count)
//	}
func IsEnabled() bool {
	return current.Load() != nil
}

// Printf logs an internal diagnostic message. The format string should
// start with the component in square brackets, e.g. "[console] write failed: %v".
func Printf(format string, args ...any) {
	l := current.Load()
	if l == nil {
		return
	}
	l.Info(fmt.Sprintf(format, args...))
}

// Sync wraps a writer to make it safe for concurrent use.
func Sync(w io.Writer) io.Writer {
	return zapcore.Lock(zapcore.AddSync(w))
}

func newLogger(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     utcTime,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	return zap.New(zapcore.NewCore(enc, ws, zapcore.DebugLevel)).Sugar()
}

func utcTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339))
}

type funcWriter func(string)

func (f funcWriter) Write(p []byte) (int, error) {
	f(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func init() {
	switch dest := os.Getenv("MTLOG_SELFLOG"); dest {
	case "":
	case "stderr":
		Enable(os.Stderr)
	case "stdout":
		Enable(os.Stdout)
	default:
		if f, err := os.OpenFile(dest, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			Enable(f)
		}
	}
}
