package attention

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/alokX01/focusflow/internal/apperr"
)

var errNoStreamPath = &apperr.Error{
	Message: "no attention stream configured",
}

var errStreamOpen = &apperr.Error{
	Message: "unable to open attention stream",
}

// streamSnapshot is the wire format the sensor bridge writes, one JSON
// object per line.
type streamSnapshot struct {
	FaceDetected    bool    `json:"faceDetected"`
	LookingAtScreen bool    `json:"isLookingAtScreen"`
	Confidence      float64 `json:"confidence"`
	// Timestamp is milliseconds since the Unix epoch. Zero means the
	// bridge omitted it, in which case receipt time is used.
	Timestamp int64 `json:"timestamp"`
}

// StreamSource is a Source fed by a JSON-lines stream, typically a named
// pipe written by the external gaze-detector process. Lines that fail to
// parse are dropped: the engine already treats missing data as absence.
type StreamSource struct {
	mu     sync.Mutex
	path   string
	rc     io.ReadCloser
	subs   map[int]func(Snapshot)
	nextID int
}

// NewStreamSource returns an inactive source reading from path.
func NewStreamSource(path string) *StreamSource {
	return &StreamSource{
		path: path,
		subs: make(map[int]func(Snapshot)),
	}
}

// Activate opens the stream and starts delivering snapshots to
// subscribers. It fails when the path is unset or cannot be opened,
// which callers treat as "sensor unavailable".
func (s *StreamSource) Activate(_ ActivateOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rc != nil {
		return nil
	}

	if s.path == "" {
		return errNoStreamPath
	}

	f, err := os.Open(s.path)
	if err != nil {
		return errStreamOpen.Wrap(err)
	}

	s.rc = f

	go s.read(f)

	return nil
}

// Subscribe registers a snapshot callback and returns its cancel
// function. Callbacks are invoked from the reader goroutine.
func (s *StreamSource) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Deactivate closes the stream. The reader goroutine exits once the
// close is observed; it does not block the caller, so Deactivate is
// safe to invoke from a snapshot consumer.
func (s *StreamSource) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rc == nil {
		return
	}

	_ = s.rc.Close()
	s.rc = nil
}

func (s *StreamSource) read(r io.Reader) {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		var raw streamSnapshot

		if err := json.Unmarshal(scanner.Bytes(), &raw); err != nil {
			continue
		}

		snap := Snapshot{
			FaceDetected:    raw.FaceDetected,
			LookingAtScreen: raw.LookingAtScreen,
			Confidence:      raw.Confidence,
			Time:            time.Now(),
		}
		if raw.Timestamp > 0 {
			snap.Time = time.UnixMilli(raw.Timestamp)
		}

		s.deliver(snap)
	}
}

func (s *StreamSource) deliver(snap Snapshot) {
	s.mu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))

	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
