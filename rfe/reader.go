package rfe

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// resyncWindow bounds how far the reader loop will scan forward from the
// current read position to find the next recognizable frame prefix after an
// Invalid/UnknownMessageType byte. Left unbounded, a stream of garbage could
// make every read scan the entire buffer; 64KiB is just above the largest
// Sweep payload (the largest Sweep encoding caps at 65535 amplitude bytes)
// while still being a hard ceiling.
const resyncWindow = 64 * 1024

// maxBufferSize is the absolute cap on how large the reader's accumulation
// buffer is allowed to grow before it gives up and drops everything,
// logging the loss. This is independent of resyncWindow: resyncWindow
// bounds how far a *resync scan* looks, maxBufferSize bounds how much
// *unconsumed* data can pile up waiting for one (e.g. a Sweep's declared
// length never arriving in full).
const maxBufferSize = 1024 * 1024

// cacher is implemented by both saMessageContainer and sgMessageContainer.
type cacher interface {
	cacheMessage(Message)
}

// reader owns the background read-parse-advance loop for one connection. It
// never returns to callers except via the done channel; all parse errors
// are absorbed here, never surfaced through the public API.
type reader struct {
	port Port

	cacheMu sync.RWMutex
	cache   cacher

	logger *log.Logger
	done   chan struct{}
}

func newReader(port Port, cache cacher, logger *log.Logger) *reader {
	return &reader{port: port, cache: cache, logger: logger, done: make(chan struct{})}
}

// setCache redirects future decoded messages to a new cacher, used by
// discovery once a connection's device kind (spectrum analyzer vs signal
// generator) is known and a probe-only cache can be replaced with the real
// one, without tearing down and reopening the port.
func (r *reader) setCache(c cacher) {
	r.cacheMu.Lock()
	r.cache = c
	r.cacheMu.Unlock()
}

func (r *reader) dispatch(msg Message) {
	r.cacheMu.RLock()
	c := r.cache
	r.cacheMu.RUnlock()
	c.cacheMessage(msg)
}

func (r *reader) run() {
	defer close(r.done)

	buf := make([]byte, 0, 8192)
	chunk := make([]byte, 4096)

	for {
		n, err := r.port.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			r.logger.Debug("read error, stopping reader", "err", err)
			return
		}
		if n == 0 {
			continue
		}

		buf = r.drain(buf)

		if len(buf) > maxBufferSize {
			r.logger.Warn("reader buffer exceeded cap, dropping unparsed bytes", "size", len(buf))
			buf = buf[:0]
		}
	}
}

// drain repeatedly decodes frames from the front of buf, dispatching each
// to the cache, until no further progress can be made: either the buffer is
// empty, or the next decode reports Incomplete (wait for more bytes).
func (r *reader) drain(buf []byte) []byte {
	for len(buf) > 0 {
		msg, n, err := Decode(buf)
		if err == nil {
			r.dispatch(msg)
			buf = buf[n:]
			continue
		}

		pe, ok := err.(*ParseError)
		if !ok {
			buf = buf[1:]
			continue
		}

		switch pe.Kind {
		case ParseIncomplete:
			return buf
		case ParseTruncated:
			buf = pe.Remainder
		case ParseInvalid, ParseUnknownMessageType:
			buf = r.resync(buf)
		}
	}
	return buf
}

// resync advances past one unrecognized byte, then scans up to resyncWindow
// bytes ahead for any registered frame prefix so a corrupted or unknown
// frame doesn't get re-attempted byte-by-byte across the whole buffer.
func (r *reader) resync(buf []byte) []byte {
	buf = buf[1:]
	limit := len(buf)
	if limit > resyncWindow {
		limit = resyncWindow
	}
	for i := 0; i < limit; i++ {
		if _, _, err := Decode(buf[i:]); err == nil {
			return buf[i:]
		}
		if pe, ok := err.(*ParseError); ok && pe.Kind != ParseUnknownMessageType {
			return buf[i:]
		}
	}
	if limit < len(buf) {
		return buf[limit:]
	}
	return buf[len(buf):]
}

func (r *reader) stop() {
	r.port.Close()
	<-r.done
}
