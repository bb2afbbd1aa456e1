package playback

import (
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type reportCall struct {
	kind     string
	ticks    int64
	paused   bool
	session  string
	itemID   string
	sourceID string
}

type fakeSessionAPI struct {
	mu    sync.Mutex
	calls []reportCall
	err   error
}

func (f *fakeSessionAPI) record(call reportCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeSessionAPI) ReportPlaybackStart(itemID, sourceID, sessionID string) error {
	return f.record(reportCall{kind: "start", itemID: itemID, sourceID: sourceID, session: sessionID})
}

func (f *fakeSessionAPI) ReportPlaybackProgress(itemID, sourceID, sessionID string, ticks int64, paused bool) error {
	return f.record(reportCall{kind: "progress", itemID: itemID, sourceID: sourceID, session: sessionID, ticks: ticks, paused: paused})
}

func (f *fakeSessionAPI) ReportPlaybackStopped(itemID, sourceID, sessionID string, ticks int64) error {
	return f.record(reportCall{kind: "stop", itemID: itemID, sourceID: sourceID, session: sessionID, ticks: ticks})
}

func (f *fakeSessionAPI) snapshot() []reportCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]reportCall(nil), f.calls...)
}

func (f *fakeSessionAPI) count(kind string) int {
	n := 0
	for _, call := range f.snapshot() {
		if call.kind == kind {
			n++
		}
	}
	return n
}

func noPosition() (int64, bool) { return 0, false }

func notPaused() bool { return false }

func TestReporterStart(t *testing.T) {
	Convey("Reporter start", t, func() {
		api := &fakeSessionAPI{}
		reporter := NewReporter(api)

		stop := reporter.Start("item", "source", false, noPosition, notPaused)
		defer stop()

		So(reporter.Started(), ShouldBeTrue)
		So(api.count("start"), ShouldEqual, 1)
		So(api.snapshot()[0].session, ShouldEqual, reporter.SessionID())
		So(reporter.SessionID(), ShouldNotBeEmpty)

		Convey("Duplicate start is a no-op", func() {
			first := reporter.SessionID()
			again := reporter.Start("item", "source", false, noPosition, notPaused)
			defer again()

			So(api.count("start"), ShouldEqual, 1)
			So(reporter.SessionID(), ShouldEqual, first)
		})
	})
}

func TestReporterHeartbeat(t *testing.T) {
	Convey("Reporter heartbeat", t, func() {
		api := &fakeSessionAPI{}
		reporter := NewReporter(api)

		Convey("Dropped while idle", func() {
			reporter.Heartbeat(100, false)
			So(api.count("progress"), ShouldEqual, 0)
		})

		Convey("Carries position and pause state while started", func() {
			stop := reporter.Start("item", "source", false, noPosition, notPaused)
			defer stop()

			reporter.Heartbeat(1230000000, false)
			reporter.PauseNotify(1240000000)

			calls := api.snapshot()
			So(len(calls), ShouldEqual, 3)
			So(calls[1].ticks, ShouldEqual, int64(1230000000))
			So(calls[1].paused, ShouldBeFalse)
			So(calls[2].ticks, ShouldEqual, int64(1240000000))
			So(calls[2].paused, ShouldBeTrue)
		})

		Convey("Timer heartbeats carry the pause state", func() {
			reporter.interval = 10 * time.Millisecond
			position := func() (int64, bool) { return 420000000, true }
			paused := func() bool { return true }

			stop := reporter.Start("item", "source", false, position, paused)
			defer stop()

			deadline := time.Now().Add(2 * time.Second)
			for api.count("progress") == 0 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}

			calls := api.snapshot()
			So(len(calls), ShouldBeGreaterThanOrEqualTo, 2)
			So(calls[1].kind, ShouldEqual, "progress")
			So(calls[1].ticks, ShouldEqual, int64(420000000))
			So(calls[1].paused, ShouldBeTrue)
		})

		Convey("Failure is swallowed", func() {
			api.err = errors.New("network down")
			stop := reporter.Start("item", "source", false, noPosition, notPaused)
			defer stop()

			reporter.Heartbeat(100, false)
			So(api.count("progress"), ShouldEqual, 1)
			So(reporter.Started(), ShouldBeTrue)
		})
	})
}

func TestReporterStop(t *testing.T) {
	Convey("Reporter stop", t, func() {
		api := &fakeSessionAPI{}
		reporter := NewReporter(api)
		stop := reporter.Start("item", "source", false, noPosition, notPaused)
		defer stop()

		Convey("Carries the final position", func() {
			reporter.Stop(4560000000)

			So(reporter.Started(), ShouldBeFalse)
			So(api.count("stop"), ShouldEqual, 1)

			calls := api.snapshot()
			So(calls[len(calls)-1].ticks, ShouldEqual, int64(4560000000))
		})

		Convey("Runs exactly once per session", func() {
			reporter.Stop(100)
			reporter.Stop(200)

			So(api.count("stop"), ShouldEqual, 1)
		})

		Convey("Concurrent end and close race to a single stop", func() {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					reporter.Stop(300)
				}()
			}
			wg.Wait()

			So(api.count("stop"), ShouldEqual, 1)
		})

		Convey("A new session can start afterwards", func() {
			reporter.Stop(100)
			first := reporter.SessionID()

			again := reporter.Start("item", "source", false, noPosition, notPaused)
			defer again()

			So(reporter.Started(), ShouldBeTrue)
			So(reporter.SessionID(), ShouldNotEqual, first)
			So(api.count("start"), ShouldEqual, 2)
		})
	})
}

func TestReporterSilent(t *testing.T) {
	Convey("Silent session", t, func() {
		api := &fakeSessionAPI{}
		reporter := NewReporter(api)

		stop := reporter.Start("item", "source", true, noPosition, notPaused)
		defer stop()

		So(reporter.Started(), ShouldBeTrue)

		reporter.Heartbeat(100, false)
		reporter.Stop(200)

		So(api.snapshot(), ShouldBeEmpty)
		So(reporter.Started(), ShouldBeFalse)
	})
}
