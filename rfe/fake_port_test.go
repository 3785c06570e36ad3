package rfe

import (
	"bytes"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"
)

// fakePort is an in-memory Port used by tests that exercise the reader loop
// and facades without real hardware: writes go to a buffer the test can
// inspect, and reads are fed from a queue of byte chunks the test pushes in.
type fakePort struct {
	mu      sync.Mutex
	written bytes.Buffer
	chunks  chan []byte
	closed  bool
}

func newFakePort() *fakePort {
	return &fakePort{chunks: make(chan []byte, 256)}
}

func (p *fakePort) push(b []byte) { p.chunks <- b }

func (p *fakePort) Read(b []byte) (int, error) {
	chunk, ok := <-p.chunks
	if !ok {
		return 0, io.EOF
	}
	n := copy(b, chunk)
	if n < len(chunk) {
		p.chunks <- chunk[n:]
	}
	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.Write(b)
}

func (p *fakePort) writtenBytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.written.Bytes()...)
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.chunks)
	}
	return nil
}

func (p *fakePort) SetMode(mode *serial.Mode) error          { return nil }
func (p *fakePort) SetReadTimeout(_ time.Duration) error { return nil }

type fakePortProvider struct {
	ports map[string]*fakePort
}

func newFakePortProvider(ports map[string]*fakePort) *fakePortProvider {
	return &fakePortProvider{ports: ports}
}

func (f *fakePortProvider) ListPorts() ([]PortInfo, error) {
	var out []PortInfo
	for name := range f.ports {
		out = append(out, PortInfo{Name: name})
	}
	return out, nil
}

func (f *fakePortProvider) Open(name string, _ int) (Port, error) {
	p, ok := f.ports[name]
	if !ok {
		return nil, errInvalidInput("no such fake port %q", name)
	}
	return p, nil
}
