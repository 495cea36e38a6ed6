package internal

import (
	"net"
	"net/http"
	"time"

	"bytetube/internal/storage"
)

// Server bundles the dependencies shared by the HTTP handlers: the chat hub,
// the content source, the catalog store, metrics, and the join limiter. It is
// constructed once per process and wired into a mux by internal/app.
type Server struct {
	hub         *Hub
	source      ContentSource
	store       *storage.Store
	metrics     *Metrics
	joinLimiter *RateLimiter
	chatLimiter *RateLimiter
}

func NewServer(hub *Hub, source ContentSource, store *storage.Store) *Server {
	return &Server{
		hub:         hub,
		source:      source,
		store:       store,
		metrics:     NewMetrics(),
		joinLimiter: NewRateLimiter(30, time.Minute),
		chatLimiter: NewRateLimiter(chatRateBurst, chatRateWindow),
	}
}

func (s *Server) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
