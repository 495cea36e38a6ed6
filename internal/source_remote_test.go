package internal

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

// rangeOrigin answers HEAD/GET with full range support via http.ServeContent.
func rangeOrigin(content []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "video.mp4", time.Unix(0, 0), bytes.NewReader(content))
	})
}

// plainOrigin ignores Range headers and always returns the whole body.
func plainOrigin(content []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			_, _ = w.Write(content)
		}
	})
}

func TestRemoteDescribe(t *testing.T) {
	content := testContent(1000)
	origin := httptest.NewServer(rangeOrigin(content))
	defer origin.Close()

	source := NewRemoteSource(origin.URL + "/%s.mp4")
	descriptor, err := source.Describe(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if descriptor.Size != 1000 {
		t.Fatalf("Size = %d, want 1000", descriptor.Size)
	}
	if descriptor.MediaType != "video/mp4" {
		t.Fatalf("MediaType = %q", descriptor.MediaType)
	}
}

func TestRemoteReadRangeForwarded(t *testing.T) {
	content := testContent(1000)
	var sawRange bool
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Range") != "" {
			sawRange = true
		}
		http.ServeContent(w, r, "video.mp4", time.Unix(0, 0), bytes.NewReader(content))
	}))
	defer origin.Close()

	source := NewRemoteSource(origin.URL + "/%s.mp4")
	chunk, err := source.ReadRange(context.Background(), "abc", ByteRange{Start: 100, End: 199, Total: 1000})
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if !sawRange {
		t.Fatalf("range was not forwarded to the origin")
	}
	if !bytes.Equal(chunk, content[100:200]) {
		t.Fatalf("chunk does not match source bytes 100-199")
	}
}

func TestRemoteReadRangeFallbackSlices(t *testing.T) {
	content := testContent(1000)
	origin := httptest.NewServer(plainOrigin(content))
	defer origin.Close()

	source := NewRemoteSource(origin.URL + "/%s.mp4")
	chunk, err := source.ReadRange(context.Background(), "abc", ByteRange{Start: 100, End: 199, Total: 1000})
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if !bytes.Equal(chunk, content[100:200]) {
		t.Fatalf("fallback slice does not match source bytes 100-199")
	}
}

func TestRemoteReadAll(t *testing.T) {
	content := testContent(1000)
	origin := httptest.NewServer(rangeOrigin(content))
	defer origin.Close()

	source := NewRemoteSource(origin.URL + "/%s.mp4")
	body, err := source.ReadAll(context.Background(), "abc")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(body, content) {
		t.Fatalf("ReadAll body differs from origin content")
	}
}

func TestRemoteInvalidIDNeverReachesOrigin(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("origin was contacted for an invalid id: %s", r.URL.Path)
	}))
	defer origin.Close()

	source := NewRemoteSource(origin.URL + "/%s.mp4")
	for _, id := range []string{"../secret", "a/b", "a?x=1"} {
		if _, err := source.Describe(context.Background(), id); !errors.Is(err, ErrContentNotFound) {
			t.Fatalf("id %q: expected ErrContentNotFound, got %v", id, err)
		}
	}
}

func TestRemoteUpstreamFailure(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer origin.Close()

	source := NewRemoteSource(origin.URL + "/%s.mp4")
	if _, err := source.ReadAll(context.Background(), "abc"); err == nil {
		t.Fatalf("expected an error for a failing origin")
	}
	if _, err := source.ReadRange(context.Background(), "abc", ByteRange{Start: 0, End: 9, Total: 10}); err == nil {
		t.Fatalf("expected an error for a failing origin")
	}
}
