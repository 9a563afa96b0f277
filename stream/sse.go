package stream

import (
	"bufio"
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rivulet-ai/rivulet/pkg/slogx"
	"github.com/tidwall/gjson"
)

// DefaultReadTimeout bounds inter-chunk silence on a live stream. When the
// transport produces nothing for this long the sequence halts.
const DefaultReadTimeout = 30 * time.Second

const doneSentinel = "[DONE]"

// Stream adapts a live SSE-framed byte feed into the lazy chunk sequence the
// rest of the package consumes. It owns the underlying response body: Close
// (or abandoning Chunks early, which calls it) releases the transport.
//
// Frames look like "data: {...}\n\n", terminated by a final "data: [DONE]"
// event. The sentinel is discarded, and an event body that is not valid JSON
// is silently dropped; partial or malformed frames must not abort a stream.
type Stream struct {
	body    io.ReadCloser
	cancel  func()
	timeout time.Duration
	log     *slog.Logger

	events chan Chunk
	quit   chan struct{}
	once   sync.Once
}

// StreamOption configures a Stream at construction.
type StreamOption func(*Stream)

// WithReadTimeout overrides the inter-chunk liveness bound.
func WithReadTimeout(d time.Duration) StreamOption {
	return func(s *Stream) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithStreamLogger sets the logger used for dropped-frame diagnostics.
func WithStreamLogger(log *slog.Logger) StreamOption {
	return func(s *Stream) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStream starts decoding body as a server-sent-event feed. cancel, when
// non-nil, is invoked on Close to abort the underlying request; it is how
// the adapter guarantees no leaked connection when a consumer walks away
// before the natural end of the stream.
func NewStream(body io.ReadCloser, cancel func(), options ...StreamOption) *Stream {
	s := &Stream{
		body:    body,
		cancel:  cancel,
		timeout: DefaultReadTimeout,
		log:     slog.Default(),
		events:  make(chan Chunk),
		quit:    make(chan struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	go s.read()
	return s
}

func (s *Stream) read() {
	defer close(s.events)
	rd := bufio.NewReader(s.body)
	for {
		data, err := readEvent(rd)
		if err != nil {
			return
		}
		if data == "" {
			continue
		}
		if data == doneSentinel {
			return
		}
		if !gjson.Valid(data) {
			s.log.Debug("dropping undecodable stream event", slogx.ByteString("event", []byte(data)))
			continue
		}
		select {
		case s.events <- ParseChunk([]byte(data)):
		case <-s.quit:
			return
		}
	}
}

// readEvent reads one SSE event and returns the joined data payload. Lines
// other than data fields (comments, event names, retry hints) are ignored.
func readEvent(rd *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		line, err := rd.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if b.Len() > 0 {
				return b.String(), nil
			}
			if err != nil {
				return "", err
			}
			continue
		}
		if data, ok := strings.CutPrefix(line, "data:"); ok {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(strings.TrimPrefix(data, " "))
		}
		if err != nil {
			if b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}
	}
}

// Chunks returns the pull-based lazy sequence of decoded chunks. Consuming
// it drives blocking reads on the transport; breaking out of the loop early
// closes the stream. The sequence ends on the done sentinel, on connection
// close, or after the inter-chunk read timeout elapses with no data.
func (s *Stream) Chunks() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		defer s.Close()
		timer := time.NewTimer(s.timeout)
		defer timer.Stop()
		for {
			select {
			case c, ok := <-s.events:
				if !ok {
					return
				}
				if !yield(c) {
					return
				}
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(s.timeout)
			case <-timer.C:
				s.log.Warn("stream stalled, halting", slog.Duration("timeout", s.timeout))
				return
			}
		}
	}
}

// Forward drains the stream in push mode, delivering every chunk to sink in
// wire order. Content and ordering are identical to what Chunks yields. It
// returns when the stream ends or ctx is cancelled; ctx cancellation is the
// only error case.
func (s *Stream) Forward(ctx context.Context, sink Sink) error {
	if sink == nil {
		return errors.New("sink is required")
	}
	for c := range s.Chunks() {
		if err := ctx.Err(); err != nil {
			s.Close()
			return err
		}
		sink.OnChunk(c)
	}
	return ctx.Err()
}

// Close releases the underlying transport. It is safe to call multiple
// times and after the stream has ended naturally.
func (s *Stream) Close() error {
	s.once.Do(func() {
		close(s.quit)
		if s.cancel != nil {
			s.cancel()
		}
		if s.body != nil {
			s.body.Close()
		}
	})
	return nil
}
