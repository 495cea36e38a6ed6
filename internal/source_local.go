package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const localExtension = ".mp4"

// LocalSource serves video content from files under a fixed content root.
// An id maps to <root>/<id>.mp4.
type LocalSource struct {
	root string
}

func NewLocalSource(root string) *LocalSource {
	return &LocalSource{root: root}
}

func (s *LocalSource) path(id string) (string, error) {
	if !validContentID.MatchString(id) {
		return "", ErrContentNotFound
	}
	return filepath.Join(s.root, id+localExtension), nil
}

func (s *LocalSource) Describe(_ context.Context, id string) (ContentDescriptor, error) {
	path, err := s.path(id)
	if err != nil {
		return ContentDescriptor{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ContentDescriptor{}, ErrContentNotFound
		}
		return ContentDescriptor{}, fmt.Errorf("stat content: %w", err)
	}
	return ContentDescriptor{ID: id, Size: uint64(info.Size()), MediaType: mp4MediaType}, nil
}

func (s *LocalSource) ReadRange(_ context.Context, id string, span ByteRange) ([]byte, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(int64(span.Start), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek content: %w", err)
	}
	chunk := make([]byte, span.Length())
	if _, err := io.ReadFull(file, chunk); err != nil {
		return nil, fmt.Errorf("read content range: %w", err)
	}
	return chunk, nil
}

func (s *LocalSource) ReadAll(_ context.Context, id string) ([]byte, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("read content: %w", err)
	}
	return body, nil
}
