package icon

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Search
	Play
	Clock
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "X",
		kaomoji: "(┛ಠ_ಠ)┛彡┻━┻",
		squares: "🟥",
	},
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(￣▽￣)ノ",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(￢_￢)",
		squares: "🟨",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(つ✧ω✧)つ",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "♪(´▽｀)",
		squares: "🟪",
	},
	Clock: {
		emoji:   "🕒",
		nerd:    "",
		plain:   "@",
		kaomoji: "(￣o￣)zzz",
		squares: "🟫",
	},
}
