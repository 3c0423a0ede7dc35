// Package stats tracks operation counters for the running server.
// The totals are surfaced on the monitoring page only; the wire
// protocol has no stats command.
package stats

import "sync"

// Counters holds the running totals. Zero value is ready to use.
type Counters struct {
	mu     sync.RWMutex
	totals Snapshot
}

// Snapshot is a point-in-time, lock-free copy of Counters' totals.
type Snapshot struct {
	Connections int64
	SetOps      int64
	GetOps      int64
	DeleteOps   int64
}

// IncConnections records one accepted connection.
func (c *Counters) IncConnections() {
	c.mu.Lock()
	c.totals.Connections++
	c.mu.Unlock()
}

// IncSet records one completed set command.
func (c *Counters) IncSet() {
	c.mu.Lock()
	c.totals.SetOps++
	c.mu.Unlock()
}

// IncGet records one completed get command.
func (c *Counters) IncGet() {
	c.mu.Lock()
	c.totals.GetOps++
	c.mu.Unlock()
}

// IncDelete records one completed delete command.
func (c *Counters) IncDelete() {
	c.mu.Lock()
	c.totals.DeleteOps++
	c.mu.Unlock()
}

// Snap returns a copy of the running totals safe to read without
// further locking.
func (c *Counters) Snap() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totals
}
