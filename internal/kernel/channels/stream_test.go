package channels

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/kestrel-lang/kestrel/internal/kernel/adapters"
)

func TestStreamChannelsRecvCommand(t *testing.T) {
	in := strings.NewReader("1 + 1\nquit\n")
	var out bytes.Buffer
	s := NewStreamChannels(in, &out)

	deadline := time.Now().Add(time.Second)
	var got string
	var ok bool
	for time.Now().Before(deadline) {
		got, ok = s.RecvCommand()
		if ok {
			break
		}
	}
	if !ok || got != "1 + 1" {
		t.Fatalf("RecvCommand() = (%q, %v)", got, ok)
	}
}

func TestStreamChannelsSendStatusWritesLowercase(t *testing.T) {
	var out bytes.Buffer
	s := NewStreamChannels(strings.NewReader(""), &out)
	s.SendStatus(adapters.Busy)
	if !strings.Contains(out.String(), "[busy]") {
		t.Fatalf("expected lowercase status, got %q", out.String())
	}
}

func TestStreamChannelsClosedAfterEOF(t *testing.T) {
	var out bytes.Buffer
	s := NewStreamChannels(strings.NewReader(""), &out)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && !s.Closed() {
		time.Sleep(time.Millisecond)
	}
	if !s.Closed() {
		t.Fatal("expected Closed() to become true after EOF")
	}
}

func TestStreamChannelsCodeQueue(t *testing.T) {
	s := NewStreamChannels(strings.NewReader(""), &bytes.Buffer{})
	s.PushCode(adapters.CodeSubmission{Source: "x: 1", Filename: "ex.k"})
	got, ok := s.RecvCode()
	if !ok || got.Source != "x: 1" {
		t.Fatalf("RecvCode() = (%+v, %v)", got, ok)
	}
}
