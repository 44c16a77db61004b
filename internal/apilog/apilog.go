// Package apilog writes the per-run session log: one append-only text file
// holding a request block and a response block for every HTTP exchange the
// harness performs, plus free-form session markers.
package apilog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/poetrydb-api-tests/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const fileNameLayout = "2006-01-02_15-04-05"

var errNoResponse = errors.New("no response received")

// Options controls where and how the session log is written.
type Options struct {
	// Dir receives the log file; it is created if missing.
	Dir string
	// Console mirrors every entry to ConsoleWriter.
	Console       bool
	ConsoleWriter io.Writer
	// ErrorOutput receives sink write failures. Defaults to stderr.
	ErrorOutput io.Writer
	// Now is the clock used for the file name and session markers.
	Now func() time.Time
}

// Logger is a session-scoped exchange log. Create it with Open at the start
// of a run and Close it at the end. All methods are safe for concurrent use
// and tolerate a nil receiver.
type Logger struct {
	mu   sync.Mutex
	zl   *zap.Logger
	file *os.File
	path string
	now  func() time.Time
}

// Open creates the session log file named after the current time.
func Open(opts Options) (*Logger, error) {
	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		return nil, fmt.Errorf("log directory is empty")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("api_test_log_%s.log", now().Format(fileNameLayout)))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(file), zapcore.InfoLevel),
	}
	if opts.Console {
		w := opts.ConsoleWriter
		if w == nil {
			w = os.Stderr
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(zapcore.AddSync(w)), zapcore.InfoLevel))
	}

	errOut := opts.ErrorOutput
	if errOut == nil {
		errOut = os.Stderr
	}

	return &Logger{
		zl:   zap.New(zapcore.NewTee(cores...), zap.ErrorOutput(zapcore.Lock(zapcore.AddSync(errOut)))),
		file: file,
		path: path,
		now:  now,
	}, nil
}

// Path returns the session log file path.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// LogAPICall writes the request block followed by the response block for ex.
// The pair is written without interleaving from other exchanges.
func (l *Logger) LogAPICall(ctx context.Context, ex domain.Exchange) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeRequest(ctx, ex)
	l.writeResponse(ex)
}

// LogTransportError writes the request block followed by an error block, for
// exchanges that never received a response.
func (l *Logger) LogTransportError(ctx context.Context, ex domain.Exchange, err error) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeRequest(ctx, ex)
	l.zl.Error(ErrorRecord{Timestamp: ex.FinishedAt(), Err: err}.Format())
}

// LogRequest writes only the request block for ex.
func (l *Logger) LogRequest(ctx context.Context, ex domain.Exchange) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeRequest(ctx, ex)
}

// LogResponse writes only the response block for ex.
func (l *Logger) LogResponse(ex domain.Exchange) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeResponse(ex)
}

// LogInfo writes a free-form informational line.
func (l *Logger) LogInfo(msg string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Info(msg)
}

// LogError writes a free-form error line.
func (l *Logger) LogError(msg string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Error(msg)
}

// Now returns the logger's clock reading, used for session markers.
func (l *Logger) Now() time.Time {
	if l == nil || l.now == nil {
		return time.Now()
	}
	return l.now()
}

// Close flushes and closes the session log file. Further writes are dropped.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	_ = l.zl.Sync()
	err := l.file.Close()
	l.file = nil
	l.zl = zap.NewNop()
	return err
}

func (l *Logger) writeRequest(ctx context.Context, ex domain.Exchange) {
	rec := RequestRecord{
		Timestamp:    ex.StartedAt,
		TestName:     TestName(ctx),
		FunctionName: Caller(ctx),
		Method:       ex.Method,
		URL:          ex.URL,
		Headers:      ex.RequestHeaders,
		Payload:      ex.RequestBody,
	}
	l.zl.Info(rec.Format())
}

// writeResponse falls back to an error block when ex never got a response,
// so every request block is still closed by a separator.
func (l *Logger) writeResponse(ex domain.Exchange) {
	if !ex.Completed() {
		l.zl.Error(ErrorRecord{Timestamp: ex.FinishedAt(), Err: errNoResponse}.Format())
		return
	}
	rec := ResponseRecord{
		Timestamp:  ex.FinishedAt(),
		StatusCode: ex.StatusCode,
		Elapsed:    ex.Elapsed,
		Body:       ex.ResponseBody,
		Headers:    ex.ResponseHeaders,
	}
	l.zl.Info(rec.Format())
}
