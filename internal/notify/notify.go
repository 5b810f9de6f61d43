// AngelaMos | 2026
// notify.go

package notify

import (
	"fmt"
	"io"
	"sync"
)

type Kind string

const (
	Info       Kind = "info"
	Success    Kind = "success"
	Validation Kind = "validation"
	Network    Kind = "network"
	Error      Kind = "error"
	Session    Kind = "session"
	Payment    Kind = "payment"
)

type Notice struct {
	Kind    Kind
	Message string
}

type Notifier interface {
	Notify(n Notice)
}

type Func func(Notice)

func (f Func) Notify(n Notice) {
	f(n)
}

// Writer prints notices one per line, as the terminal client shows them.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (p *Writer) Notify(n Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "[%s] %s\n", n.Kind, n.Message) //nolint:errcheck // terminal output
}

// Recorder keeps every notice; tests assert on it.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}

type Discard struct{}

func (Discard) Notify(Notice) {}
