package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// OutputFormat names a chart back end
type OutputFormat string

const (
	AppName            = "tlview"
	PluginName         = "Timeline Viewer"
	PluginDescription  = "Visualize the timeline of a plan from a temporal planner's output"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tlview/tlview.db"
	ConnectionEnvVar   = "TLVIEW_DB_CONNECTION"
	KeyringConfigValue = "keyring"
	Version            = "v0.3.0"

	// DefaultPlannerText is what the text box holds before anything is pasted
	DefaultPlannerText = ";; PASTE TEMPORAL PLANNER OUTPUT HERE!\n\n" +
		"0.000: (here is) [1.000]\n" +
		"1.000: (an example) [2.000]\n" +
		"2.000: (of a timeline) [1.500]"

	// Google Charts collaborator
	ChartsLoaderURL     = "https://www.gstatic.com/charts/loader.js"
	ChartsLoaderVersion = "current"
	ChartsPackage       = "timeline"

	// Watch constants
	WatchLockfileName = "tlview-watch.lock"
	WatchDebounce     = 50 * time.Millisecond

	// Output formats
	FormatTerminal OutputFormat = "terminal"
	FormatHTML     OutputFormat = "html"
	FormatJSON     OutputFormat = "json"
)

// Session States. The first TabCount states are the top-level tabs, in order.
const (
	StateTimeline SessionState = iota
	StateActivities
	StateSettings
	StateEditSettings
)

// TabCount is the number of top-level tabs (Timeline, Activities, Settings)
const TabCount = 3
