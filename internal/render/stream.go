package render

import (
	"context"
	"log"
	"sync"

	"gocv.io/x/gocv"
)

// Stream keeps the most recent annotated frame as JPEG for HTTP clients.
// Publishing never blocks on readers; slow readers skip frames.
type Stream struct {
	mu     sync.Mutex
	jpeg   []byte
	seq    uint64
	notify chan struct{}
}

// NewStream creates an empty stream.
func NewStream() *Stream {
	return &Stream{notify: make(chan struct{})}
}

// Show encodes frame and publishes it.
func (s *Stream) Show(frame *gocv.Mat) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		log.Printf("encode stream frame: %v", err)
		return
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	s.Publish(data)
}

// Publish replaces the current frame and wakes waiting readers.
func (s *Stream) Publish(jpeg []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jpeg = jpeg
	s.seq++
	close(s.notify)
	s.notify = make(chan struct{})
}

// Latest returns the current frame and its sequence number. The sequence
// is 0 before the first publish.
func (s *Stream) Latest() ([]byte, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jpeg, s.seq
}

// Next blocks until a frame newer than after is available or ctx is done.
func (s *Stream) Next(ctx context.Context, after uint64) ([]byte, uint64, error) {
	for {
		s.mu.Lock()
		if s.seq > after {
			jpeg, seq := s.jpeg, s.seq
			s.mu.Unlock()
			return jpeg, seq, nil
		}
		ch := s.notify
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, after, ctx.Err()
		case <-ch:
		}
	}
}
