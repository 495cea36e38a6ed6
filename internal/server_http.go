package internal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"bytetube/internal/storage"
)

type videoDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type videoListResponse struct {
	Videos []videoDTO `json:"videos"`
}

type createVideoRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HandleVideos serves the catalog collection: GET lists entries, POST adds one.
func (s *Server) HandleVideos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		videos, err := s.store.ListVideos(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp := videoListResponse{Videos: make([]videoDTO, 0, len(videos))}
		for _, v := range videos {
			resp.Videos = append(resp.Videos, videoDTO(v))
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		var req createVideoRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		if !validContentID.MatchString(req.ID) {
			writeError(w, http.StatusBadRequest, errors.New("video id must be alphanumeric"))
			return
		}
		if req.Title == "" {
			writeError(w, http.StatusBadRequest, errors.New("title is required"))
			return
		}
		if err := s.store.CreateVideo(r.Context(), req.ID, req.Title, req.Description); err != nil {
			if errors.Is(err, storage.ErrVideoExists) {
				writeError(w, http.StatusConflict, err)
				return
			}
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": req.ID})
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// HandleVideoByID serves one catalog entry: GET fetches it, DELETE removes it.
func (s *Server) HandleVideoByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/videos/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "missing video id", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		video, err := s.store.GetVideo(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if video == nil {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, videoDTO(*video))
	case http.MethodDelete:
		if err := s.store.DeleteVideo(r.Context(), id); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, "GET, DELETE")
	}
}

// HandleRoomExists answers whether a chat room is live without creating it.
func (s *Server) HandleRoomExists(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")
	if room == "" {
		http.Error(w, "missing room", http.StatusBadRequest)
		return
	}
	if s.hub.Exists(room) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}
	http.Error(w, "not found", http.StatusNotFound)
}

// HandleMetrics reports the process counters plus the live room count.
func (s *Server) HandleMetrics(w http.ResponseWriter, _ *http.Request) {
	payload := s.metrics.snapshot()
	payload["open_rooms"] = s.hub.RoomCount()
	writeJSON(w, http.StatusOK, payload)
}

// HandleHealth is a plain liveness probe.
func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}

func decodeJSON(r *http.Request, out interface{}) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
