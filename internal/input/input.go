// Package input reads terminal bytes without blocking the frame loop. The
// backdrop has exactly one interaction: quitting.
package input

import (
	"bufio"
	"io"
)

// Stream delivers input bytes from a reader via a buffered channel.
type Stream struct {
	ch chan byte
}

// StartStream spawns a goroutine that reads from r until EOF and feeds the
// stream. The channel is closed when the reader ends (e.g. the SSH session
// dropped).
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	br := bufio.NewReader(r)
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// QuitRequested drains all pending bytes and reports whether any of them
// asks to stop: q, Q, Escape or Ctrl-C. A closed stream (reader gone) also
// counts as a quit.
func (s *Stream) QuitRequested() bool {
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				return true
			}
			switch b {
			case 'q', 'Q', 0x1b, 0x03:
				return true
			}
		default:
			return false
		}
	}
}
