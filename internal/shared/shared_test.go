package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		WithLogger(logger, "screen", "Login").Info("transition")

		out := buf.String()
		if !strings.Contains(out, "transition") || !strings.Contains(out, "screen=Login") {
			t.Errorf("expected message and key-value pair, got %q", out)
		}
	})

	t.Run("SetLogLevel filters debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "app.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("hello")

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected log file to exist: %v", err)
		}
		if info.Size() == 0 {
			t.Error("expected log file to contain the entry")
		}
	})
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected a uuid, got %q: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Errorf("expected v4 uuid, got v%d", parsed.Version())
	}
	if GenerateID() == id {
		t.Error("expected unique ids")
	}
}
