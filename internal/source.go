package internal

import (
	"context"
	"errors"
	"regexp"
)

// ContentDescriptor reports what a source knows about one piece of content.
// It is derived per request; descriptors are never cached.
type ContentDescriptor struct {
	ID        string
	Size      uint64
	MediaType string
}

// ContentSource yields metadata and byte spans for video content. Describe
// must succeed before any range logic runs against the content.
type ContentSource interface {
	Describe(ctx context.Context, id string) (ContentDescriptor, error)
	ReadRange(ctx context.Context, id string, span ByteRange) ([]byte, error)
	ReadAll(ctx context.Context, id string) ([]byte, error)
}

// ErrContentNotFound is returned when an id resolves to no content.
var ErrContentNotFound = errors.New("content not found")

// Both source variants serve mp4 exclusively.
const mp4MediaType = "video/mp4"

// Content ids are opaque tokens. Anything outside this set is rejected before
// it can reach the filesystem or be embedded into an origin URL.
var validContentID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
