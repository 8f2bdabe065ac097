package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "tracker"
	Version            = "v0.2.0"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tracker/tracker.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultTimezone resolves to the system timezone
	DefaultTimezone = "Local"

	// PinnedSectionLabel heads the leading section of the filtered view
	PinnedSectionLabel = "Pinned"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tracker-"
	BackupFileSuffix = ".db"
)

// Session States
const (
	StateBrowsing SessionState = iota
	StateSearching
)

// Palette is the default set of display colors offered when creating a
// tracker. Any #RRGGBB value is accepted by the stores; this list only seeds
// the interactive form.
var Palette = []string{
	"#FD4C49", "#FF881E", "#007BFA", "#6E44FE", "#33CF69", "#E66DD4",
	"#F9D4D4", "#34A7FE", "#46E69D", "#35347C", "#FF674D", "#FF99CC",
	"#F6C48B", "#7994F5", "#832CF1", "#AD56DA", "#8D72E3", "#2FD058",
}
