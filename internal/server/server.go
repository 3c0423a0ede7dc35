// Package server runs the accept loop: one goroutine per connection,
// handed off to internal/conn, shut down by cancelling a context.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/DaHogie/memcachedImplementation/internal/conn"
	"github.com/DaHogie/memcachedImplementation/internal/stats"
	"github.com/DaHogie/memcachedImplementation/internal/storage"
)

// Server owns the listener and the store every connection shares.
type Server struct {
	listenAddr  string
	idleTimeout time.Duration
	store       storage.Store
	counters    *stats.Counters

	listener net.Listener
}

// New constructs a Server. The listener is not opened until Run.
func New(listenAddr string, idleTimeout time.Duration, store storage.Store) *Server {
	return &Server{
		listenAddr:  listenAddr,
		idleTimeout: idleTimeout,
		store:       store,
		counters:    &stats.Counters{},
	}
}

// Stats returns the operation counters accumulated across every
// connection this server has served.
func (s *Server) Stats() *stats.Counters {
	return s.counters
}

// Run opens the listener and accepts connections until ctx is
// cancelled, at which point it closes the listener and returns nil.
// A per-connection goroutine is spawned for every accepted client;
// Run does not wait for those goroutines to finish.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.listenAddr, err)
	}
	s.listener = listener

	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	log.Printf("listening on %s", s.listenAddr)

	for {
		nc, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				log.Printf("accept error: %v", err)
				continue
			}
		}

		s.counters.IncConnections()
		c := conn.New(nc, s.store, s.idleTimeout, s.counters)
		go c.Serve()
	}
}
