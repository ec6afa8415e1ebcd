package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l := New(Options{Level: "debug", Filename: file})
	l.Info("hello", zap.String("component", "test"))
	_ = l.Sync()

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("log file is empty")
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l := New(Options{Level: "loud"})
	if l.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug must be disabled when level is invalid")
	}
	if !l.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info must be enabled")
	}
}
