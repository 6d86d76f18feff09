package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPending  = "⏳"
	IconApplying = "▶"
	IconApplied  = "✓"
	IconFailed   = "❌"
	IconRemove   = "×"
)

// Text fragments
const (
	SteamIDPlaceholder = "17-digit identifier or vanity name"
	LabelPlaceholder   = "nickname"
	PrefixPlaceholder  = "prefix prepended to every nickname (enables cleanup)"
)

// Layout sizing
const (
	SteamIDFieldWidth float32 = 190
	StatusLabelWidth  float32 = 110

	RowMinWidth  float32 = 420
	RowMinHeight float32 = 40

	WindowWidth  float32 = 760
	WindowHeight float32 = 560

	ImportDialogWidth    float32 = 520
	ImportDialogHeight   float32 = 380
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 420

	ActivityLogHeight float32 = 130
)

// Error display
const (
	MaxInlineErrorLength = 60
)
