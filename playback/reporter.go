package playback

import (
	"sync"
	"time"

	"github.com/finetic-cli/finetic/log"
	"github.com/google/uuid"
)

// HeartbeatInterval is the wall-clock spacing between progress reports.
const HeartbeatInterval = 10 * time.Second

// SessionAPI is the remote session surface the reporter talks to.
// *jellyfin.Client satisfies it.
type SessionAPI interface {
	ReportPlaybackStart(itemID, mediaSourceID, playSessionID string) error
	ReportPlaybackProgress(itemID, mediaSourceID, playSessionID string, positionTicks int64, paused bool) error
	ReportPlaybackStopped(itemID, mediaSourceID, playSessionID string, positionTicks int64) error
}

// Reporter drives the session lifecycle against the server: one start, timed
// progress heartbeats while started, one stop. Every call is best-effort;
// network failures are logged and swallowed so playback never blocks on the
// reporter.
type Reporter struct {
	api      SessionAPI
	interval time.Duration

	mu         sync.Mutex
	started    bool
	itemID     string
	sourceID   string
	sessionID  string
	silent     bool
	cancelBeat func()
}

// NewReporter returns an idle reporter bound to the given session API.
func NewReporter(api SessionAPI) *Reporter {
	return &Reporter{api: api, interval: HeartbeatInterval}
}

// Start begins a session for the given item and source, generating a fresh
// correlation id and arming the heartbeat ticker. A second Start while the
// session is running is a no-op, so duplicate play events are harmless.
// Silent sessions skip all network calls but still transition state.
//
// position supplies the current playhead in ticks for heartbeats; its second
// return reports whether a position is currently known. paused supplies the
// current pause state so timer-driven heartbeats carry it too. The returned
// function cancels the heartbeat ticker and is safe to call more than once.
func (r *Reporter) Start(itemID, sourceID string, silent bool, position func() (int64, bool), paused func() bool) (stopBeat func()) {
	r.mu.Lock()
	if r.started {
		cancel := r.cancelBeat
		r.mu.Unlock()
		return cancel
	}

	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(stop)
		})
	}

	r.started = true
	r.itemID = itemID
	r.sourceID = sourceID
	r.sessionID = uuid.NewString()
	r.silent = silent
	r.cancelBeat = cancel
	r.mu.Unlock()

	if !silent {
		if err := r.api.ReportPlaybackStart(itemID, sourceID, r.sessionID); err != nil {
			log.Errorf("Playback start report failed: %s", err)
		}
	}

	go r.heartbeatLoop(stop, position, paused)
	return cancel
}

func (r *Reporter) heartbeatLoop(stop <-chan struct{}, position func() (int64, bool), paused func() bool) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ticks, ok := position()
			if !ok {
				continue
			}
			r.Heartbeat(ticks, paused())
		}
	}
}

// Heartbeat reports the current position and pause state. Issued only while
// started; failures are swallowed and the next interval supersedes them.
func (r *Reporter) Heartbeat(positionTicks int64, paused bool) {
	r.mu.Lock()
	if !r.started || r.silent {
		r.mu.Unlock()
		return
	}
	itemID, sourceID, sessionID := r.itemID, r.sourceID, r.sessionID
	r.mu.Unlock()

	if err := r.api.ReportPlaybackProgress(itemID, sourceID, sessionID, positionTicks, paused); err != nil {
		log.Errorf("Playback progress report failed: %s", err)
	}
}

// PauseNotify pushes an immediate paused heartbeat so the server's resume
// position stays fresh on an abrupt stop.
func (r *Reporter) PauseNotify(positionTicks int64) {
	r.Heartbeat(positionTicks, true)
}

// Stop ends the session with the final position and cancels the heartbeat.
// Exactly one stop report goes out per session even when end-of-media and an
// explicit close race each other. After Stop the reporter is idle again.
func (r *Reporter) Stop(positionTicks int64) {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	itemID, sourceID, sessionID := r.itemID, r.sourceID, r.sessionID
	silent := r.silent
	cancel := r.cancelBeat
	r.cancelBeat = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if !silent {
		if err := r.api.ReportPlaybackStopped(itemID, sourceID, sessionID, positionTicks); err != nil {
			log.Errorf("Playback stop report failed: %s", err)
		}
	}
}

// Started reports whether a session is currently running.
func (r *Reporter) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// SessionID returns the correlation id of the current or most recent session.
func (r *Reporter) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}
