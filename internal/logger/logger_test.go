package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samvad-hq/poetrydb-api-tests/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestInitWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := InitWriter(&config.Config{LogLevel: "warn"}, &buf)
	if err != nil {
		t.Fatalf("InitWriter: %v", err)
	}
	t.Cleanup(func() { S = nil })

	log.InfoObj("hidden", "k", 1)
	log.WarnObj("shown", "run_meta", map[string]any{"checks": 3})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"checks":3`) {
		t.Fatalf("warn entry missing or malformed: %s", out)
	}
	if !strings.Contains(out, `"ts":`) {
		t.Fatalf("expected ts key: %s", out)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := ParseLevel("bogus"); got != zapcore.InfoLevel {
		t.Fatalf("ParseLevel(bogus) = %v", got)
	}
	if got := ParseLevel(" WARNING "); got != zapcore.WarnLevel {
		t.Fatalf("ParseLevel(WARNING) = %v", got)
	}
}

func TestPackageHelpersNoopBeforeInit(t *testing.T) {
	S = nil
	InfoObj("x", "k", "v")
	if err := Close(); err != nil {
		t.Fatalf("Close before Init: %v", err)
	}
}

func TestEnsureFallsBackToNop(t *testing.T) {
	if _, ok := Ensure(nil).(*NopLogger); !ok {
		t.Fatalf("Ensure(nil) should return NopLogger")
	}
}
