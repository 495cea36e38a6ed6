package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bytetube/internal/storage"
)

func newCatalogTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.NewStore("sqlite://file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewServer(NewHub(), NewLocalSource(t.TempDir()), store)
}

func TestCatalogCreateAndList(t *testing.T) {
	server := newCatalogTestServer(t)

	create := httptest.NewRequest(http.MethodPost, "/api/videos",
		strings.NewReader(`{"id":"abc","title":"My Clip","description":"short"}`))
	rec := httptest.NewRecorder()
	server.HandleVideos(rec, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	dup := httptest.NewRequest(http.MethodPost, "/api/videos",
		strings.NewReader(`{"id":"abc","title":"Again"}`))
	rec = httptest.NewRecorder()
	server.HandleVideos(rec, dup)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", rec.Code)
	}

	list := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	rec = httptest.NewRecorder()
	server.HandleVideos(rec, list)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var resp videoListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Videos) != 1 || resp.Videos[0].ID != "abc" || resp.Videos[0].Title != "My Clip" {
		t.Fatalf("unexpected list: %+v", resp.Videos)
	}
}

func TestCatalogRejectsBadIDs(t *testing.T) {
	server := newCatalogTestServer(t)

	for _, body := range []string{
		`{"id":"../etc","title":"x"}`,
		`{"id":"","title":"x"}`,
		`{"id":"ok","title":""}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/videos", strings.NewReader(body))
		rec := httptest.NewRecorder()
		server.HandleVideos(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestCatalogGetAndDelete(t *testing.T) {
	server := newCatalogTestServer(t)

	create := httptest.NewRequest(http.MethodPost, "/api/videos",
		strings.NewReader(`{"id":"abc","title":"My Clip"}`))
	rec := httptest.NewRecorder()
	server.HandleVideos(rec, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	get := httptest.NewRequest(http.MethodGet, "/api/videos/abc", nil)
	rec = httptest.NewRecorder()
	server.HandleVideoByID(rec, get)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	del := httptest.NewRequest(http.MethodDelete, "/api/videos/abc", nil)
	rec = httptest.NewRecorder()
	server.HandleVideoByID(rec, del)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	server.HandleVideoByID(rec, httptest.NewRequest(http.MethodGet, "/api/videos/abc", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestRoomExistsEndpoint(t *testing.T) {
	server := newCatalogTestServer(t)

	rec := httptest.NewRecorder()
	server.HandleRoomExists(rec, httptest.NewRequest(http.MethodGet, "/exists?room=42", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for an unknown room", rec.Code)
	}

	server.hub.join("42", newClient(nil))
	rec = httptest.NewRecorder()
	server.HandleRoomExists(rec, httptest.NewRequest(http.MethodGet, "/exists?room=42", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a live room", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newCatalogTestServer(t)
	server.metrics.CountStream(1234)

	rec := httptest.NewRecorder()
	server.HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if payload["streams_total"].(float64) != 1 {
		t.Fatalf("streams_total = %v, want 1", payload["streams_total"])
	}
	if payload["bytes_served_total"].(float64) != 1234 {
		t.Fatalf("bytes_served_total = %v, want 1234", payload["bytes_served_total"])
	}
}
