package internal

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// HandleVideo serves whole or partial video content for GET /api/video/{id}.
// The response is fully resolved before the first byte is written, so error
// paths never emit a partial body.
func (s *Server) HandleVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/video/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "missing video id", http.StatusBadRequest)
		return
	}

	descriptor, err := s.source.Describe(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrContentNotFound) {
			http.Error(w, fmt.Sprintf("video not found: %s", id), http.StatusNotFound)
			return
		}
		log.Printf("video %s: describe failed: %v", id, err)
		http.Error(w, "error reading video content", http.StatusInternalServerError)
		return
	}

	span, decision := ParseRange(r.Header.Get("Range"), descriptor.Size)
	switch decision {
	case RangeMalformed:
		http.Error(w, "invalid Range header", http.StatusBadRequest)

	case RangeUnsatisfiable:
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", descriptor.Size))
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)

	case RangeSatisfiable:
		chunk, err := s.source.ReadRange(r.Context(), id, span)
		if err != nil {
			log.Printf("video %s: range read failed: %v", id, err)
			http.Error(w, "error reading video content", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", descriptor.MediaType)
		w.Header().Set("Content-Length", strconv.FormatUint(span.Length(), 10))
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", span.Start, span.End, descriptor.Size))
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write(chunk)
		s.metrics.CountStream(uint64(len(chunk)))

	default:
		body, err := s.source.ReadAll(r.Context(), id)
		if err != nil {
			log.Printf("video %s: read failed: %v", id, err)
			http.Error(w, "error reading video content", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", descriptor.MediaType)
		w.Header().Set("Content-Length", strconv.FormatUint(descriptor.Size, 10))
		_, _ = w.Write(body)
		s.metrics.CountStream(uint64(len(body)))
	}
}
