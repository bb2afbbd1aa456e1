package player

import (
	"errors"
	"sync"

	"github.com/finetic-cli/finetic/playback"
)

// Element adapts a running mpv instance to the playback controller's event
// model. Property-change notifications from the IPC event listener become
// controller events; metadata readiness is announced once, before any
// play/pause transition, so the controller observes the lifecycle in order.
type Element struct {
	mpv   *MPV
	title string

	mu       sync.Mutex
	listener *EventListener
	handlers map[uint64]func(playback.Event)
	nextID   uint64

	position float64
	posKnown bool
	duration float64
	paused   bool
	metaSent bool
	ended    bool
	closed   bool
}

// NewElement wraps an mpv instance. title is shown in the player window.
func NewElement(mpv *MPV, title string) *Element {
	return &Element{
		mpv:      mpv,
		title:    title,
		handlers: map[uint64]func(playback.Event){},
	}
}

// Load starts mpv on the given stream URL and begins observing its state.
func (e *Element) Load(url string) error {
	if err := e.mpv.Play(url, e.title, nil); err != nil {
		return err
	}

	listener := NewEventListener(e.mpv.Socket(), e.onProperty)
	if err := listener.Start(); err != nil {
		return err
	}

	e.mu.Lock()
	e.listener = listener
	e.mu.Unlock()

	go func() {
		<-e.mpv.Wait()
		e.processExited()
	}()
	return nil
}

// processExited surfaces an mpv process death that was neither a natural end
// of media nor a requested shutdown as a playback error.
func (e *Element) processExited() {
	e.mu.Lock()
	abnormal := !e.ended && !e.closed
	e.mu.Unlock()

	if abnormal {
		e.emit(playback.Event{Kind: playback.EventError, Err: errors.New("mpv exited before playback finished")})
	}
}

func (e *Element) onProperty(name string, data interface{}) {
	switch name {
	case "time-pos":
		seconds, ok := data.(float64)
		if !ok {
			return
		}
		e.mu.Lock()
		e.position = seconds
		e.posKnown = true
		ready := e.metaSent
		e.mu.Unlock()
		if ready {
			e.emit(playback.Event{Kind: playback.EventTimeUpdate, Position: seconds})
		}

	case "duration":
		seconds, ok := data.(float64)
		if !ok || seconds <= 0 {
			return
		}
		e.mu.Lock()
		e.duration = seconds
		first := !e.metaSent
		e.metaSent = true
		paused := e.paused
		e.mu.Unlock()
		if first {
			e.emit(playback.Event{Kind: playback.EventLoadedMetadata, Duration: seconds})
			if !paused {
				e.emit(playback.Event{Kind: playback.EventPlay})
			}
		}

	case "pause":
		paused, ok := data.(bool)
		if !ok {
			return
		}
		e.mu.Lock()
		e.paused = paused
		ready := e.metaSent
		e.mu.Unlock()
		if !ready {
			// Transitions before metadata are deferred; the loaded-metadata
			// path announces the initial play state.
			return
		}
		if paused {
			e.emit(playback.Event{Kind: playback.EventPause})
		} else {
			e.emit(playback.Event{Kind: playback.EventPlay})
		}

	case "eof-reached":
		reached, ok := data.(bool)
		if ok && reached {
			e.mu.Lock()
			e.ended = true
			e.mu.Unlock()
			e.emit(playback.Event{Kind: playback.EventEnded})
		}
	}
}

func (e *Element) emit(event playback.Event) {
	e.mu.Lock()
	handlers := make([]func(playback.Event), 0, len(e.handlers))
	for _, fn := range e.handlers {
		handlers = append(handlers, fn)
	}
	e.mu.Unlock()

	for _, fn := range handlers {
		fn(event)
	}
}

func (e *Element) Play() error {
	return e.mpv.Resume()
}

func (e *Element) Pause() error {
	return e.mpv.Pause()
}

func (e *Element) Seek(seconds float64) error {
	return e.mpv.Seek(seconds)
}

// Position returns the last observed playhead, falling back to a direct IPC
// query before the first property notification arrives.
func (e *Element) Position() (float64, bool) {
	e.mu.Lock()
	position, known := e.position, e.posKnown
	e.mu.Unlock()
	if known {
		return position, true
	}

	position, err := e.mpv.GetTimePos()
	return position, err == nil
}

func (e *Element) Duration() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration, e.duration > 0
}

func (e *Element) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Observe registers an event handler; the returned function removes it.
func (e *Element) Observe(fn func(playback.Event)) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.handlers[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.handlers, id)
		e.mu.Unlock()
	}
}

// Close stops the event listener and shuts down mpv.
func (e *Element) Close() error {
	e.mu.Lock()
	listener := e.listener
	e.listener = nil
	e.closed = true
	e.mu.Unlock()

	if listener != nil {
		listener.Stop()
	}
	return e.mpv.Close()
}

// Wait returns a channel closed when the underlying mpv process exits.
func (e *Element) Wait() <-chan struct{} {
	return e.mpv.Wait()
}
