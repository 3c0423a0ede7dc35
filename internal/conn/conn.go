// Package conn implements the per-connection protocol state machine:
// COMMAND and AWAIT_DATA_BLOCK, driven by internal/protocol's pure
// parser and internal/storage's persistence interface.
package conn

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"time"

	"github.com/DaHogie/memcachedImplementation/internal/protocol"
	"github.com/DaHogie/memcachedImplementation/internal/stats"
	"github.com/DaHogie/memcachedImplementation/internal/storage"
)

// maxRetainedDataBuf caps how large a data-block scratch buffer a
// connection keeps between sets.
const maxRetainedDataBuf = 64 * 1024

type state int

const (
	stateCommand state = iota
	stateAwaitDataBlock
)

// Conn drives one client connection through the COMMAND and
// AWAIT_DATA_BLOCK states. It owns the pending-set header and the
// idle-timeout deadline exclusively; the storage handle is shared
// across every connection.
type Conn struct {
	nc          net.Conn
	r           *bufio.Reader
	w           *bufio.Writer
	store       storage.Store
	idleTimeout time.Duration
	counters    *stats.Counters

	state   state
	pending *protocol.SetHeader
	dataBuf []byte
}

// New wraps an accepted net.Conn in a fresh state machine. The
// connection starts in COMMAND state with no pending set header.
// counters may be nil, in which case operation counts are dropped.
func New(nc net.Conn, store storage.Store, idleTimeout time.Duration, counters *stats.Counters) *Conn {
	return &Conn{
		nc:          nc,
		r:           bufio.NewReader(nc),
		w:           bufio.NewWriter(nc),
		store:       store,
		idleTimeout: idleTimeout,
		counters:    counters,
		state:       stateCommand,
	}
}

// Serve runs the connection to completion: quit, peer close, idle
// timeout, or a fatal transport error. It always closes nc before
// returning.
func (c *Conn) Serve() {
	defer c.nc.Close()

	for {
		c.nc.SetReadDeadline(time.Now().Add(c.idleTimeout))

		switch c.state {
		case stateCommand:
			if !c.stepCommand() {
				return
			}
		case stateAwaitDataBlock:
			if !c.stepDataBlock() {
				return
			}
		}
	}
}

// stepCommand reads and dispatches one command line. It returns false
// when the connection should be torn down (quit, peer close, idle
// timeout, or a fatal transport error).
func (c *Conn) stepCommand() bool {
	line, err := c.r.ReadBytes('\n')
	if err != nil {
		// EOF, read-deadline expiry, or reset: tear down without
		// writing a reply.
		return false
	}

	trimmed := bytes.TrimRight(line, "\r\n")
	cmd, cerr := protocol.ParseCommand(trimmed)
	if cerr != nil {
		c.write(cerr.Message)
		return true
	}

	switch cmd.Kind {
	case protocol.CmdQuit:
		return false
	case protocol.CmdSet:
		c.pending = cmd.Set
		c.state = stateAwaitDataBlock
	case protocol.CmdGet:
		c.handleGet(cmd.Get)
	case protocol.CmdDelete:
		c.handleDelete(cmd.Delete)
	}
	return true
}

// stepDataBlock consumes the pending set header's data block: exactly
// bytes+2 bytes, buffered in full before any validation runs. The
// pending header is always cleared afterward. It returns false when
// the connection should be torn down (peer close, idle timeout, or a
// fatal transport error mid data-block).
func (c *Conn) stepDataBlock() bool {
	header := c.pending
	c.pending = nil
	c.state = stateCommand

	need := header.Bytes + 2
	buf := c.dataBuf
	if cap(buf) < need {
		buf = make([]byte, need)
		if need <= maxRetainedDataBuf {
			c.dataBuf = buf
		}
	}
	buf = buf[:need]

	if _, err := io.ReadFull(c.r, buf); err != nil {
		// EOF, read-deadline expiry, or reset: discard the pending set
		// and tear down without writing a reply.
		return false
	}

	if !bytes.HasSuffix(buf, []byte("\r\n")) {
		c.write(protocol.ErrDataBlockMismatch)
		return true
	}
	payload := buf[:header.Bytes]

	if err := c.store.Upsert(header.Key, header.Flags, header.Bytes, payload); err != nil {
		c.write(protocol.ErrServerStore)
		return true
	}
	if c.counters != nil {
		c.counters.IncSet()
	}
	if !header.NoReply {
		c.write(protocol.RespStored)
	}
	return true
}

func (c *Conn) handleGet(get *protocol.GetCommand) {
	entries, err := c.store.MultiGet(get.Keys)
	if err != nil {
		c.write(protocol.ErrServerGet)
		return
	}
	if c.counters != nil {
		c.counters.IncGet()
	}

	for _, e := range entries {
		c.write(protocol.FormatValueLine(e.Key, e.Flags, e.Bytes))
		c.write(e.DataBlock)
		c.write([]byte("\r\n"))
	}
	c.write(protocol.RespEnd)
}

func (c *Conn) handleDelete(del *protocol.DeleteCommand) {
	n, err := c.store.Delete(del.Key)
	if err != nil {
		c.write(protocol.ErrServerDelete)
		return
	}
	if c.counters != nil {
		c.counters.IncDelete()
	}
	if del.NoReply {
		return
	}
	if n > 0 {
		c.write(protocol.RespDeleted)
	} else {
		c.write(protocol.RespNotFound)
	}
}

// write sends b and flushes immediately: the reply for command N is
// fully written before command N+1 is read.
func (c *Conn) write(b []byte) {
	if _, err := c.w.Write(b); err != nil {
		return
	}
	if err := c.w.Flush(); err != nil {
		return
	}
}
