package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDirSink_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export", "nested")
	sink, err := NewDirSink(dir)
	if err != nil {
		t.Fatalf("NewDirSink failed: %v", err)
	}
	if sink.Location() != dir {
		t.Errorf("location = %q", sink.Location())
	}

	ctx := context.Background()
	if err := sink.Put(ctx, "slide-001.png", []byte("one"), "image/png"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := sink.Put(ctx, "slide-001.png", []byte("two"), "image/png"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "slide-001.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "two" {
		t.Errorf("content = %q, want overwrite", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestDirSink_RejectsPaths(t *testing.T) {
	sink, err := NewDirSink(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"../escape.png", "a/b.png", ".."} {
		if err := sink.Put(context.Background(), name, nil, ""); err == nil {
			t.Errorf("Put(%q) should fail", name)
		}
	}
}
