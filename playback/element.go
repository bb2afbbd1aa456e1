package playback

// EventKind identifies a playback element notification.
type EventKind int

const (
	// EventTimeUpdate carries the current playhead position.
	EventTimeUpdate EventKind = iota

	// EventLoadedMetadata fires once the element knows the media duration.
	EventLoadedMetadata

	// EventPlay fires when playback starts or resumes.
	EventPlay

	// EventPause fires when playback pauses.
	EventPause

	// EventEnded fires on natural end of media.
	EventEnded

	// EventError carries a non-fatal playback error.
	EventError
)

// Event is a single notification from a playback element.
type Event struct {
	Kind     EventKind
	Position float64
	Duration float64
	Err      error
}

// Element is a playable media surface: mpv over IPC in this client, or a fake
// in tests. Observe delivers events until the returned stop function runs.
type Element interface {
	// Load points the element at a stream URL and begins buffering.
	Load(url string) error

	Play() error
	Pause() error

	// Seek moves the playhead to an absolute position in seconds.
	Seek(seconds float64) error

	// Position returns the current playhead in seconds, when known.
	Position() (float64, bool)

	// Duration returns the media duration in seconds, when known.
	Duration() (float64, bool)

	Paused() bool

	// Observe registers an event handler and returns a function that
	// unregisters it. Handlers run on the element's event goroutine.
	Observe(func(Event)) (stop func())

	Close() error
}
