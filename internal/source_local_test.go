package internal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalSourceDescribe(t *testing.T) {
	dir := t.TempDir()
	content := testContent(512)
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	source := NewLocalSource(dir)

	descriptor, err := source.Describe(context.Background(), "clip")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if descriptor.Size != 512 {
		t.Fatalf("Size = %d, want 512", descriptor.Size)
	}
	if descriptor.MediaType != "video/mp4" {
		t.Fatalf("MediaType = %q, want video/mp4", descriptor.MediaType)
	}

	if _, err := source.Describe(context.Background(), "absent"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestLocalSourceReadRange(t *testing.T) {
	dir := t.TempDir()
	content := testContent(512)
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	source := NewLocalSource(dir)

	chunk, err := source.ReadRange(context.Background(), "clip", ByteRange{Start: 10, End: 19, Total: 512})
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if !bytes.Equal(chunk, content[10:20]) {
		t.Fatalf("chunk does not match source bytes 10-19")
	}

	whole, err := source.ReadAll(context.Background(), "clip")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(whole, content) {
		t.Fatalf("ReadAll differs from the file content")
	}
}
