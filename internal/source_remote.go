package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteSource fetches video content from an origin server. The URL template
// contains a single %s that is replaced with the content id. The byte range is
// forwarded to the origin; only when the origin ignores it and answers with
// the full body does the source fall back to slicing in memory. No response
// is cached across requests.
type RemoteSource struct {
	template string
	client   *http.Client
}

func NewRemoteSource(template string) *RemoteSource {
	return &RemoteSource{
		template: template,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *RemoteSource) url(id string) (string, error) {
	if !validContentID.MatchString(id) {
		return "", ErrContentNotFound
	}
	return fmt.Sprintf(s.template, id), nil
}

func (s *RemoteSource) Describe(ctx context.Context, id string) (ContentDescriptor, error) {
	target, err := s.url(id)
	if err != nil {
		return ContentDescriptor{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return ContentDescriptor{}, fmt.Errorf("build origin request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return ContentDescriptor{}, fmt.Errorf("fetch origin metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ContentDescriptor{}, ErrContentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return ContentDescriptor{}, fmt.Errorf("origin metadata status %d", resp.StatusCode)
	}
	if resp.ContentLength < 0 {
		return ContentDescriptor{}, fmt.Errorf("origin did not report a content length")
	}
	return ContentDescriptor{ID: id, Size: uint64(resp.ContentLength), MediaType: mp4MediaType}, nil
}

func (s *RemoteSource) ReadRange(ctx context.Context, id string, span ByteRange) ([]byte, error) {
	target, err := s.url(id)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build origin request: %w", err)
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", span.Start, span.End))
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch origin range: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusPartialContent:
		chunk, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read origin range body: %w", err)
		}
		if uint64(len(chunk)) != span.Length() {
			return nil, fmt.Errorf("origin returned %d bytes, want %d", len(chunk), span.Length())
		}
		return chunk, nil
	case http.StatusOK:
		// origin ignored the range; buffer the object and slice it here
		whole, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read origin body: %w", err)
		}
		if span.End >= uint64(len(whole)) {
			return nil, fmt.Errorf("origin body shorter than requested range")
		}
		return whole[span.Start : span.End+1], nil
	default:
		return nil, fmt.Errorf("origin range status %d", resp.StatusCode)
	}
}

func (s *RemoteSource) ReadAll(ctx context.Context, id string) ([]byte, error) {
	target, err := s.url(id)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build origin request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch origin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("origin status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read origin body: %w", err)
	}
	return body, nil
}
