package render

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.svg")

	err := WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content: got %q, want %q", data, "hello")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode: got %v, want 0644", info.Mode().Perm())
	}

	assertOnlyFile(t, dir, "chart.svg")
}

func TestWriteFile_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.svg")
	if err := os.WriteFile(path, []byte("old chart"), 0o600); err != nil {
		t.Fatalf("seeding output: %v", err)
	}

	err := WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	})
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("content: got %q, want %q", data, "new")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode: got %v, want 0644", info.Mode().Perm())
	}
	assertOnlyFile(t, dir, "chart.svg")
}

func TestWriteFile_WriterFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.svg")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seeding output: %v", err)
	}

	boom := errors.New("boom")
	err := WriteFile(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})

	var writeErr *OutputWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *OutputWriteError, got %v", err)
	}
	if writeErr.Path != path || !errors.Is(err, boom) {
		t.Errorf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "previous" {
		t.Errorf("existing file changed: got %q", data)
	}
	assertOnlyFile(t, dir, "chart.svg")
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "chart.svg")

	err := WriteFile(path, func(w io.Writer) error { return nil })

	var writeErr *OutputWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *OutputWriteError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped fs.ErrNotExist, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the path: %v", err)
	}
}

func TestWriteSVG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.svg")

	c := NewSVGCanvas(4, 4)
	c.SetSourceRGB(colorful.Color{B: 1})
	c.Rectangle(0, 0, 4, 4)

	if err := WriteSVG(path, c); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "<?xml") || !strings.Contains(string(data), `fill="#0000ff"`) {
		t.Errorf("unexpected document:\n%s", data)
	}
}

func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != name {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents: got %v, want [%s]", names, name)
	}
}
