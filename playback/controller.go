package playback

import (
	"errors"
	"fmt"
	"sync"

	"github.com/finetic-cli/finetic/jellyfin"
	"github.com/finetic-cli/finetic/log"
	"github.com/samber/mo"
)

// State is the controller's position in the session lifecycle.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateReady
	StatePlaying
	StatePaused
	StateEnded
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Selection identifies what to play and how.
type Selection struct {
	ItemID string

	// SourceID is the preferred media source version. When absent from the
	// item's fresh source list the controller falls back to the first source.
	SourceID string

	// ResumeTicks positions the playhead before playback starts. Zero means
	// play from the beginning.
	ResumeTicks int64

	// MaxBitrate caps the stream bitrate in bits per second; zero leaves the
	// decision to the server.
	MaxBitrate int

	// Silent sessions skip all reporter network calls.
	Silent bool
}

// API is the remote surface the controller consumes. *jellyfin.Client
// satisfies it.
type API interface {
	SessionAPI
	Item(itemID string) (*jellyfin.Item, error)
	StreamURL(itemID, mediaSourceID string, maxBitrate int) (string, error)
	SubtitleEvents(itemID, mediaSourceID string, streamIndex int) ([]jellyfin.TrackEvent, error)
	MediaSegments(itemID string) ([]jellyfin.MediaSegment, error)
}

// Track is a selectable subtitle descriptor with its activation flag.
// At most one track is active at a time; none active is a distinct, valid
// state from no tracks available.
type Track struct {
	jellyfin.SubtitleTrack
	Active bool
}

// Status is a point-in-time snapshot of the controller for rendering.
type Status struct {
	State    State
	Item     *jellyfin.Item
	Source   *jellyfin.MediaSource
	Position float64
	Duration float64

	Cue        mo.Option[Cue]
	OfferSkip  bool
	SkipTarget mo.Option[float64]
	Chapters   []Chapter
	Tracks     []Track

	// FellBack records that the preferred source id was absent and the first
	// available source was used instead.
	FellBack bool

	Err error
}

// Controller is the playback session state machine. It owns the session,
// drives the element, and coordinates the reporter, segment index, cue index
// and resource manager. All async completions are guarded against the
// session epoch so late results from a replaced selection never leak in.
type Controller struct {
	api     API
	element Element

	mu        sync.Mutex
	epoch     uint64
	state     State
	selection Selection
	item      *jellyfin.Item
	source    *jellyfin.MediaSource
	streamURL string
	fellBack  bool

	segments Segments
	cues     Cues
	chapters []Chapter
	tracks   []Track
	cueEpoch uint64

	position float64
	duration float64
	lastErr  error

	reporter  *Reporter
	resources *Resources

	subscribers map[uint64]func(Status)
	nextSubID   uint64
}

// NewController wires a controller to a remote API and a playback element.
func NewController(api API, element Element) *Controller {
	return &Controller{
		api:         api,
		element:     element,
		reporter:    NewReporter(api),
		resources:   &Resources{},
		subscribers: map[uint64]func(Status){},
	}
}

// Subscribe registers a status observer invoked after every state change.
// The returned function removes it.
func (c *Controller) Subscribe(fn func(Status)) (stop func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// notifyLocked snapshots status and schedules subscriber callbacks.
// Callers hold c.mu.
func (c *Controller) notifyLocked() {
	status := c.statusLocked()
	for _, fn := range c.subscribers {
		go fn(status)
	}
}

func (c *Controller) statusLocked() Status {
	return Status{
		State:      c.state,
		Item:       c.item,
		Source:     c.source,
		Position:   c.position,
		Duration:   c.duration,
		Cue:        c.cues.ActiveCue(c.position),
		OfferSkip:  c.segments.ShouldOfferSkip(c.position),
		SkipTarget: c.segments.SkipTarget(c.position),
		Chapters:   c.chapters,
		Tracks:     c.tracks,
		FellBack:   c.fellBack,
		Err:        c.lastErr,
	}
}

// Status returns a snapshot of the controller.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Select starts a new playback session. Any prior session is fully torn down
// first so two sessions never report against the same reporter state. Loading
// proceeds asynchronously; subscribers observe the transition to ready.
func (c *Controller) Select(selection Selection) {
	c.mu.Lock()
	if c.state != StateEmpty {
		c.teardownLocked()
	}

	c.epoch++
	epoch := c.epoch
	c.state = StateLoading
	c.selection = selection
	c.notifyLocked()
	c.mu.Unlock()

	go c.load(epoch, selection)
}

// load resolves the item, source and stream URL, starts the element, and
// kicks off the independent segment fetch. Runs off the caller's goroutine;
// every write back is epoch-guarded.
func (c *Controller) load(epoch uint64, selection Selection) {
	item, err := c.api.Item(selection.ItemID)
	if err != nil {
		c.failLoad(epoch, fmt.Errorf("fetch item %s: %w", selection.ItemID, err))
		return
	}

	if len(item.MediaSources) == 0 {
		c.failLoad(epoch, fmt.Errorf("item %s has no media sources", selection.ItemID))
		return
	}

	source := &item.MediaSources[0]
	fellBack := false
	if selection.SourceID != "" {
		found := false
		for i := range item.MediaSources {
			if item.MediaSources[i].ID == selection.SourceID {
				source = &item.MediaSources[i]
				found = true
				break
			}
		}
		if !found {
			fellBack = true
			log.Warnf("Media source %s not present on item %s, falling back to %s", selection.SourceID, item.ID, source.ID)
		}
	}

	streamURL, err := c.api.StreamURL(item.ID, source.ID, selection.MaxBitrate)
	if err != nil {
		c.failLoad(epoch, err)
		return
	}

	// The element effects stay inside the guarded section so a superseding
	// selection can never interleave between the epoch check and the load.
	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	c.item = item
	c.source = source
	c.streamURL = streamURL
	c.fellBack = fellBack
	for _, track := range jellyfin.SubtitleTracks(source) {
		c.tracks = append(c.tracks, Track{SubtitleTrack: track})
	}

	stopObserve := c.element.Observe(func(event Event) {
		c.handleEvent(epoch, event)
	})
	c.resources.Register(stopObserve)
	loadErr := c.element.Load(streamURL)
	c.mu.Unlock()

	go c.loadSegments(epoch, item.ID)

	if loadErr != nil {
		c.failLoad(epoch, fmt.Errorf("load stream: %w", loadErr))
	}
}

// loadSegments fetches intro/outro markers independently of the stream start.
// A failure degrades the skip affordance only.
func (c *Controller) loadSegments(epoch uint64, itemID string) {
	items, err := c.api.MediaSegments(itemID)
	if err != nil {
		log.Errorf("Media segment fetch failed: %s", err)
		return
	}

	segments := SegmentsFromWire(items)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	c.segments = segments
	c.notifyLocked()
}

// failLoad records a load failure and returns the controller to empty.
// Authentication failures stay distinguishable through errors.Is on Status.Err.
func (c *Controller) failLoad(epoch uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	if errors.Is(err, jellyfin.ErrUnauthorized) {
		log.Errorf("Session invalid: %s", err)
	} else {
		log.Errorf("Load failed: %s", err)
	}
	c.teardownLocked()
	c.lastErr = err
	c.notifyLocked()
}

func (c *Controller) handleEvent(epoch uint64, event Event) {
	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return
	}

	switch event.Kind {
	case EventTimeUpdate:
		c.position = event.Position
		c.notifyLocked()
		c.mu.Unlock()

	case EventLoadedMetadata:
		c.duration = event.Duration
		if c.item != nil {
			c.chapters = SynthesizeChapters(c.item.Chapters, c.duration)
		}
		resume := c.selection.ResumeTicks
		if c.state == StateLoading {
			c.state = StateReady
		}
		c.notifyLocked()
		c.mu.Unlock()

		// Position the playhead before the first frame renders.
		if resume > 0 {
			if err := c.element.Seek(TicksToSeconds(resume)); err != nil {
				log.Errorf("Resume seek failed: %s", err)
			}
		}

	case EventPlay:
		firstPlay := c.state == StateReady
		c.state = StatePlaying
		selection := c.selection
		var sourceID string
		if c.source != nil {
			sourceID = c.source.ID
		}
		c.notifyLocked()
		c.mu.Unlock()

		if firstPlay {
			stopBeat := c.reporter.Start(selection.ItemID, sourceID, selection.Silent, c.positionTicks, c.isPaused)
			c.resources.Register(stopBeat)
		}

	case EventPause:
		if c.state == StatePlaying {
			c.state = StatePaused
		}
		c.notifyLocked()
		c.mu.Unlock()

		if ticks, ok := c.positionTicks(); ok {
			c.reporter.PauseNotify(ticks)
		}

	case EventEnded:
		c.state = StateEnded
		c.notifyLocked()
		c.mu.Unlock()

		c.Close()

	case EventError:
		log.Errorf("Playback element error: %s", event.Err)
		c.lastErr = event.Err
		c.notifyLocked()
		c.mu.Unlock()

	default:
		c.mu.Unlock()
	}
}

// isPaused reports the pause state for timer-driven heartbeats.
func (c *Controller) isPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StatePaused
}

// positionTicks reports the element's playhead in ticks, for the reporter.
func (c *Controller) positionTicks() (int64, bool) {
	seconds, ok := c.element.Position()
	if !ok {
		c.mu.Lock()
		seconds, ok = c.position, c.position > 0
		c.mu.Unlock()
		if !ok {
			return 0, false
		}
	}
	return SecondsToTicks(seconds), true
}

// SelectTrack activates one subtitle track by stream index, or deactivates
// all tracks when given none. Activation triggers the lazy cue fetch; a fetch
// still in flight for a superseded choice is discarded on arrival. Track
// selection never touches the main state machine.
func (c *Controller) SelectTrack(index mo.Option[int]) {
	c.mu.Lock()
	c.cueEpoch++
	cueEpoch := c.cueEpoch
	epoch := c.epoch
	c.cues = nil

	chosen, hasChoice := index.Get()
	for i := range c.tracks {
		c.tracks[i].Active = hasChoice && c.tracks[i].Index == chosen
	}

	var itemID, sourceID string
	if c.item != nil {
		itemID = c.item.ID
	}
	if c.source != nil {
		sourceID = c.source.ID
	}
	c.notifyLocked()
	c.mu.Unlock()

	if !hasChoice || itemID == "" {
		return
	}

	go func() {
		events, err := c.api.SubtitleEvents(itemID, sourceID, chosen)
		if err != nil {
			log.Errorf("Subtitle fetch for track %d failed: %s", chosen, err)
			return
		}
		cues := CuesFromEvents(events)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.epoch != epoch || c.cueEpoch != cueEpoch {
			return
		}
		c.cues = cues
		c.notifyLocked()
	}()
}

// ActiveCue returns the subtitle cue visible at the current position.
func (c *Controller) ActiveCue() mo.Option[Cue] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cues.ActiveCue(c.position)
}

// SkipIntro seeks past the active segment when the affordance is offered.
// Outside a skippable interval it is a no-op.
func (c *Controller) SkipIntro() {
	c.mu.Lock()
	target, ok := c.segments.SkipTarget(c.position).Get()
	c.mu.Unlock()
	if !ok {
		return
	}

	if err := c.element.Seek(target); err != nil {
		log.Errorf("Skip seek failed: %s", err)
	}
}

// Play resumes or starts playback on the element.
func (c *Controller) Play() error {
	return c.element.Play()
}

// Pause pauses playback on the element.
func (c *Controller) Pause() error {
	return c.element.Pause()
}

// Seek moves the playhead to an absolute position in seconds.
func (c *Controller) Seek(seconds float64) error {
	return c.element.Seek(seconds)
}

// Close tears the session down from any state: one final stop report with the
// best-known position, resource release, and a reset to empty. Safe to call
// repeatedly and effective while loads are still in flight.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.state == StateEmpty {
		c.mu.Unlock()
		return
	}
	c.state = StateClosing
	c.notifyLocked()
	c.teardownLocked()
	c.notifyLocked()
	c.mu.Unlock()
}

// teardownLocked stops the session and clears all session-scoped data.
// Callers hold c.mu; the epoch bump invalidates every in-flight completion.
func (c *Controller) teardownLocked() {
	c.epoch++

	ticks := SecondsToTicks(c.position)
	c.mu.Unlock()
	c.reporter.Stop(ticks)
	c.resources.ReleaseAll()
	c.mu.Lock()

	c.state = StateEmpty
	c.selection = Selection{}
	c.item = nil
	c.source = nil
	c.streamURL = ""
	c.fellBack = false
	c.segments = Segments{}
	c.cues = nil
	c.chapters = nil
	c.tracks = nil
	c.position = 0
	c.duration = 0
	c.lastErr = nil
}
