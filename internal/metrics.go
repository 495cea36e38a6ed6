package internal

import "sync/atomic"

// Metrics collects process-wide counters for the metrics endpoint.
type Metrics struct {
	activeConns atomic.Int64
	streams     atomic.Uint64
	bytesServed atomic.Uint64
	broadcasts  atomic.Uint64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) IncConn() {
	m.activeConns.Add(1)
}

func (m *Metrics) DecConn() {
	m.activeConns.Add(-1)
}

// CountStream records one served video response and the bytes it carried.
func (m *Metrics) CountStream(bytes uint64) {
	m.streams.Add(1)
	m.bytesServed.Add(bytes)
}

func (m *Metrics) IncBroadcast() {
	m.broadcasts.Add(1)
}

func (m *Metrics) snapshot() map[string]any {
	return map[string]any{
		"active_connections":       m.activeConns.Load(),
		"streams_total":            m.streams.Load(),
		"bytes_served_total":       m.bytesServed.Load(),
		"messages_broadcast_total": m.broadcasts.Load(),
	}
}
