package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesFileUnderDir(t *testing.T) {
	dir := t.TempDir()
	client, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := client.Save(context.Background(), "invoice-042.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected file under %s, got %s", dir, path)
	}
	if !strings.HasSuffix(path, "_invoice-042.pdf") {
		t.Fatalf("expected original name suffix, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestSaveStripsDirectoryComponents(t *testing.T) {
	client, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := client.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(path, "..") {
		t.Fatalf("expected traversal stripped, got %s", path)
	}
	if filepath.Dir(path) != client.Dir() {
		t.Fatalf("expected file inside upload dir, got %s", path)
	}
}

func TestSaveRejectsEmptyName(t *testing.T) {
	client, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Save(context.Background(), "   ", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	client, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.Remove(filepath.Join(client.Dir(), "nope.pdf")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}
