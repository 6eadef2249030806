// Package logging provides structured logging for the bimap tooling.
// Details can be attached to a context, so every log call down the call stack carries them.
package logging

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.llib.dev/testcase/clock"
)

type Logger struct {
	Out io.Writer

	MessageKey   string
	LevelKey     string
	TimestampKey string

	// Level is the logging level.
	// The default Level is LevelInfo.
	Level Level
	// Separator is used to separate log entries from each other.
	// By default, it is the current operating system's line separator.
	Separator string
	// MarshalFunc is used to serialise the logging event.
	// When nil it defaults to JSON format.
	MarshalFunc func(any) ([]byte, error)
	// KeyFormatter will be used to format the logging field keys.
	KeyFormatter func(string) string
	// Hijack takes over the logging, and instead of writing to Out,
	// the event is passed to the Hijack function.
	Hijack HijackFunc
	// TestingTB is used to mark logging methods as helper functions,
	// so when logging is used during testing, the log points to the actual call site.
	TestingTB testingTB

	outLock sync.Mutex
}

type HijackFunc func(ctx context.Context, level Level, msg string, fields Fields)

func (l *Logger) Debug(ctx context.Context, msg string, ds ...Detail) {
	l.tb().Helper()
	l.Log(ctx, LevelDebug, msg, ds...)
}

func (l *Logger) Info(ctx context.Context, msg string, ds ...Detail) {
	l.tb().Helper()
	l.Log(ctx, LevelInfo, msg, ds...)
}

func (l *Logger) Warn(ctx context.Context, msg string, ds ...Detail) {
	l.tb().Helper()
	l.Log(ctx, LevelWarn, msg, ds...)
}

func (l *Logger) Error(ctx context.Context, msg string, ds ...Detail) {
	l.tb().Helper()
	l.Log(ctx, LevelError, msg, ds...)
}

func (l *Logger) Fatal(ctx context.Context, msg string, ds ...Detail) {
	l.tb().Helper()
	l.Log(ctx, LevelFatal, msg, ds...)
}

func (l *Logger) Log(ctx context.Context, level Level, msg string, ds ...Detail) {
	l.tb().Helper()
	if !isLevelEnabled(l.getLevel(), level) {
		return
	}
	if l.Hijack != nil {
		le := l.details(ctx, ds)
		l.Hijack(ctx, level, msg, Fields(le))
		return
	}
	_ = l.write(ctx, level, msg, ds, clock.Now())
}

func (l *Logger) details(ctx context.Context, ds []Detail) entry {
	le := make(entry)
	for _, d := range detailsFromContext(ctx) {
		d.addTo(l, le)
	}
	for _, d := range ds {
		if d != nil {
			d.addTo(l, le)
		}
	}
	return le
}

func (l *Logger) write(ctx context.Context, level Level, msg string, ds []Detail, at time.Time) error {
	le := l.details(ctx, ds)
	le[l.getLevelKey()] = level
	le[l.getMessageKey()] = msg
	le[l.getTimestampKey()] = at.Format(time.RFC3339)
	bs, err := l.marshalFunc()(map[string]any(le))
	if err != nil {
		return err
	}
	l.outLock.Lock()
	defer l.outLock.Unlock()
	_, err = l.writer().Write(append(bs, l.separator()...))
	return err
}

func (l *Logger) writer() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stderr
}

var defaultMarshal = jsoniter.ConfigCompatibleWithStandardLibrary.Marshal

func (l *Logger) marshalFunc() func(any) ([]byte, error) {
	if l.MarshalFunc != nil {
		return l.MarshalFunc
	}
	return defaultMarshal
}

func (l *Logger) formatKey(key string) string {
	if l.KeyFormatter != nil {
		return l.KeyFormatter(key)
	}
	return key
}

func (l *Logger) coalesceKey(key, defaultKey string) string {
	if key == "" {
		key = defaultKey
	}
	return l.formatKey(key)
}

func (l *Logger) getTimestampKey() string { return l.coalesceKey(l.TimestampKey, "timestamp") }

func (l *Logger) getMessageKey() string { return l.coalesceKey(l.MessageKey, "message") }

func (l *Logger) getLevelKey() string { return l.coalesceKey(l.LevelKey, "level") }

func (l *Logger) separator() string {
	if l.Separator != "" {
		return l.Separator
	}
	if os.PathSeparator == '\\' {
		return "\r\n"
	}
	return "\n"
}

func (l *Logger) getLevel() Level {
	if len(l.Level) == 0 {
		return defaultLevel
	}
	return l.Level
}

type testingTB interface {
	Helper()
	Cleanup(func())
	Log(args ...any)
}

type nullTestingTB struct{}

func (nullTestingTB) Helper() {}

func (nullTestingTB) Cleanup(func()) {}

func (nullTestingTB) Log(...any) {}

func (l *Logger) tb() testingTB {
	if l.TestingTB != nil {
		return l.TestingTB
	}
	return nullTestingTB{}
}

// Stub returns a debug level Logger that records its output into the returned buffer.
func Stub(tb testingTB) (*Logger, StubOutput) {
	buf := &stubOutput{}
	l := &Logger{
		TestingTB: tb,
		Level:     LevelDebug,
		Out:       buf,
	}
	tb.Cleanup(func() {
		if f, ok := tb.(interface{ Failed() bool }); ok && f.Failed() {
			tb.Log("logs:\n" + buf.String())
		}
	})
	return l, buf
}

type StubOutput interface {
	io.Reader
	String() string
	Bytes() []byte
}

type stubOutput struct {
	m   sync.Mutex
	buf bytes.Buffer
}

func (o *stubOutput) Read(p []byte) (int, error) {
	o.m.Lock()
	defer o.m.Unlock()
	return o.buf.Read(p)
}

func (o *stubOutput) Write(p []byte) (int, error) {
	o.m.Lock()
	defer o.m.Unlock()
	return o.buf.Write(p)
}

func (o *stubOutput) String() string {
	o.m.Lock()
	defer o.m.Unlock()
	return o.buf.String()
}

func (o *stubOutput) Bytes() []byte {
	o.m.Lock()
	defer o.m.Unlock()
	return append([]byte(nil), o.buf.Bytes()...)
}
