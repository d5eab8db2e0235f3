// package testing contains shared testing utilities
package testing

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/desertthunder/routerdrawer/internal/flow"
)

// Prompter is a test double for [flow.Prompter] that answers every dialog immediately.
type Prompter struct {
	Answer bool
	Seen   []flow.Dialog
}

func (p *Prompter) Confirm(d flow.Dialog, answer func(bool)) {
	p.Seen = append(p.Seen, d)
	answer(p.Answer)
}

func (p *Prompter) Notify(d flow.Dialog, ack func()) {
	p.Seen = append(p.Seen, d)
	ack()
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// AssertStack fails the test unless got equals the wanted screens, bottom first.
func AssertStack(t *testing.T, got []flow.Screen, want ...flow.Screen) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected stack %v, got %v", want, got)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
