package channels

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kestrel-lang/kestrel/internal/kernel/adapters"
)

// StreamChannels drives the Channels contract over a plain byte stream:
// one line of ctrl_command per Read, fed to an internal buffered queue by a
// background goroutine so RecvCommand can stay non-blocking like every
// other inbound channel (spec.md §5 "it never blocks on channel reads").
type StreamChannels struct {
	out io.Writer

	mu      sync.Mutex
	lines   []string
	closed  bool
	code    chan adapters.CodeSubmission
	startup chan adapters.StartupSnapshot
	bp      chan map[string][]int
}

// NewStreamChannels starts reading in from a background goroutine and
// writes prompts/echo to out.
func NewStreamChannels(in io.Reader, out io.Writer) *StreamChannels {
	s := &StreamChannels{
		out:     out,
		code:    make(chan adapters.CodeSubmission, 8),
		startup: make(chan adapters.StartupSnapshot, 1),
		bp:      make(chan map[string][]int, 8),
	}
	go s.pump(in)
	return s
}

func (s *StreamChannels) pump(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s.mu.Lock()
		s.lines = append(s.lines, scanner.Text())
		s.mu.Unlock()
	}
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *StreamChannels) RecvCommand() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return "", false
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, true
}

func (s *StreamChannels) RecvCode() (adapters.CodeSubmission, bool) {
	select {
	case c := <-s.code:
		return c, true
	default:
		return adapters.CodeSubmission{}, false
	}
}

func (s *StreamChannels) RecvStartup() (adapters.StartupSnapshot, bool) {
	select {
	case snap := <-s.startup:
		return snap, true
	default:
		return adapters.StartupSnapshot{}, false
	}
}

func (s *StreamChannels) RecvBreakpoints() (map[string][]int, bool) {
	select {
	case bp := <-s.bp:
		return bp, true
	default:
		return nil, false
	}
}

func (s *StreamChannels) PushCode(c adapters.CodeSubmission)     { s.code <- c }
func (s *StreamChannels) PushStartup(sn adapters.StartupSnapshot) { s.startup <- sn }
func (s *StreamChannels) PushBreakpoints(bp map[string][]int)    { s.bp <- bp }

func (s *StreamChannels) SendPrompt(prompt string) { fmt.Fprint(s.out, prompt) }

func (s *StreamChannels) SendEcho(text string) { fmt.Fprintln(s.out, text) }

func (s *StreamChannels) SendStatus(status adapters.Status) {
	fmt.Fprintf(s.out, "[%s]\n", strings.ToLower(status.String()))
}

func (s *StreamChannels) SendStartupReply(reply adapters.StartupReply) {}

func (s *StreamChannels) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed && len(s.lines) == 0
}

var _ adapters.Channels = (*StreamChannels)(nil)
