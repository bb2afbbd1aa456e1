// Package playback implements the supervised playback session: time conversion,
// segment and subtitle cue indexing, server session reporting, resource lifecycle
// tracking, and the controller state machine that ties them to a playable element.
package playback

import "math"

// TicksPerSecond is the resolution of the server's native time unit: one tick is 100 nanoseconds.
const TicksPerSecond = 10_000_000

// TicksToSeconds converts a server tick position to wall-clock seconds.
func TicksToSeconds(ticks int64) float64 {
	return float64(ticks) / TicksPerSecond
}

// SecondsToTicks converts wall-clock seconds to server ticks, truncating toward zero.
// Round-tripping through both conversions may lose sub-tick precision.
func SecondsToTicks(seconds float64) int64 {
	return int64(math.Floor(seconds * TicksPerSecond))
}
