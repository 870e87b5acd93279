// Package channels implements the Channels capability (spec.md C9, §6)
// over real process I/O: TTYChannels drives ctrl_command from an
// interactive terminal with history exactly as the teacher's old REPL did,
// and StreamChannels drives the same contract over a plain pipe for
// non-interactive or scripted use.
package channels

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"github.com/kestrel-lang/kestrel/internal/kernel/adapters"
)

const (
	historyEnvVar   = "KESTREL_HISTORY_FILE"
	historyFileName = ".kestrel_history"
)

// IsTerminal reports whether fd backs an interactive terminal, the test
// cmd/kestrel uses to choose between TTYChannels and StreamChannels.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TTYChannels drives ctrl_command from a real terminal via chzyer/readline,
// persisting history the same way the teacher's internal/repl did. The
// code/startup/breakpoint channels are plain Go channels fed by whoever
// bridges the IDE-side protocol; cmd/kestrel itself feeds none of them.
type TTYChannels struct {
	rl *readline.Instance

	mu          sync.Mutex
	historyPath string
	noHistory   bool

	code        chan adapters.CodeSubmission
	startup     chan adapters.StartupSnapshot
	breakpoints chan map[string][]int

	out    io.Writer
	closed bool
}

// TTYOptions configures a TTYChannels adapter.
type TTYOptions struct {
	Prompt      string
	HistoryFile string
	NoHistory   bool
	Out         io.Writer
}

// NewTTYChannels builds a Channels adapter reading interactively from the
// terminal, matching the teacher's NewREPLWithOptions readline setup.
func NewTTYChannels(opts TTYOptions) (*TTYChannels, error) {
	historyPath := opts.HistoryFile
	if historyPath == "" && !opts.NoHistory {
		historyPath = resolveHistoryPath(true)
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = ">>> "
	}

	rlConfig := &readline.Config{
		Prompt:                 prompt,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
	}
	if !opts.NoHistory && historyPath != "" {
		rlConfig.HistoryFile = historyPath
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &TTYChannels{
		rl:          rl,
		historyPath: historyPath,
		noHistory:   opts.NoHistory,
		code:        make(chan adapters.CodeSubmission, 8),
		startup:     make(chan adapters.StartupSnapshot, 1),
		breakpoints: make(chan map[string][]int, 8),
		out:         out,
	}, nil
}

// RecvCommand reads one line interactively. Unlike the other Recv* methods
// it necessarily blocks on terminal input — readline has no non-blocking
// mode — but that is the single documented suspension point for a TTY
// front end (spec.md §5 "GuiHost's own wait-for-event" analogue: here, the
// terminal itself is the event source).
func (t *TTYChannels) RecvCommand() (string, bool) {
	line, err := t.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", false
		}
		t.mu.Lock()
		t.closed = true
		t.mu.Unlock()
		return "", false
	}
	trimmed := strings.TrimRight(line, "\r\n")
	t.recordHistory(trimmed)
	return trimmed, true
}

func (t *TTYChannels) RecvCode() (adapters.CodeSubmission, bool) {
	select {
	case c := <-t.code:
		return c, true
	default:
		return adapters.CodeSubmission{}, false
	}
}

func (t *TTYChannels) RecvStartup() (adapters.StartupSnapshot, bool) {
	select {
	case s := <-t.startup:
		return s, true
	default:
		return adapters.StartupSnapshot{}, false
	}
}

func (t *TTYChannels) RecvBreakpoints() (map[string][]int, bool) {
	select {
	case bp := <-t.breakpoints:
		return bp, true
	default:
		return nil, false
	}
}

// PushCode / PushStartup / PushBreakpoints feed the non-terminal channels;
// an IDE-protocol bridge (not a human typing) is the expected caller.
func (t *TTYChannels) PushCode(c adapters.CodeSubmission)        { t.code <- c }
func (t *TTYChannels) PushStartup(s adapters.StartupSnapshot)    { t.startup <- s }
func (t *TTYChannels) PushBreakpoints(bp map[string][]int)       { t.breakpoints <- bp }

func (t *TTYChannels) SendPrompt(prompt string) { t.rl.SetPrompt(prompt) }

func (t *TTYChannels) SendEcho(text string) { fmt.Fprintln(t.out, text) }

func (t *TTYChannels) SendStatus(status adapters.Status) {
	// Status transitions have no dedicated terminal rendering; the prompt
	// change carries the same information for a human at a TTY.
}

func (t *TTYChannels) SendStartupReply(reply adapters.StartupReply) {}

func (t *TTYChannels) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Close releases the underlying readline instance.
func (t *TTYChannels) Close() error { return t.rl.Close() }

func (t *TTYChannels) recordHistory(entry string) {
	if t.noHistory || strings.TrimSpace(entry) == "" {
		return
	}
	_ = t.rl.SaveHistory(entry)
}

func resolveHistoryPath(allowDefault bool) string {
	if override := strings.TrimSpace(os.Getenv(historyEnvVar)); override != "" {
		return filepath.Clean(override)
	}
	if !allowDefault {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

var _ adapters.Channels = (*TTYChannels)(nil)
