// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Configuration keys are grouped by dotted prefix; the prefix maps onto
// sections of the TOML configuration file and onto CUTPLAY_* environment
// variables.
const (
	PlayerBackend            = "player.backend"
	PlayerVolume             = "player.volume"
	PlayerRememberPosition   = "player.remember_position"
	PlayerCutsEnabled        = "player.cuts_enabled"
	PlayerStartAtSavedTime   = "player.start_at_saved_time"
	PlayerCompletionPercent  = "player.completion_percentage"
	PositionsLifetimeHours   = "positions.lifetime_hours"
	IconsVariant             = "icons.variant"
	LogsWrite                = "logs.write"
	LogsLevel                = "logs.level"
	LogsJson                 = "logs.json"
	CliColored               = "cli.colored"
	CliVersionCheck          = "cli.version_check"
	InspectShowTimecodes     = "inspect.show_timecodes"
	InspectTagRelevanceLimit = "inspect.tag_limit"
)
