// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 14

// Streaming - these keys govern stream URL resolution and transport behavior.
const (
	StreamMaxBitrate = "stream.max_bitrate"
)

// Media Playback - these keys maintain the state and configuration for the playback session.
const (
	PlayerDefault              = "player.default"
	PlayerAutoSkipIntro        = "player.auto_skip_intro"
	PlayerCompletionPercentage = "player.completion_percentage"
)

// History Tracking - these keys configure the persistence of media consumption state.
const (
	HistorySaveOnWatch = "history.save_on_watch"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchLimit                = "search.limit"
)

// Subtitles - these keys configure subtitle track selection behavior.
const (
	SubtitlesPreferredLanguage = "subtitles.preferred_language"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-interactive application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
