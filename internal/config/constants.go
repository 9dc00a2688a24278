package config

// AnyTypeName is the name of the dynamic marker type. A value of this type is
// assignable to every target; it is not special when it appears as a target.
const AnyTypeName = "any"

// ScenarioFileExtensions are the recognized scenario file extensions.
var ScenarioFileExtensions = []string{".yaml", ".yml"}

// IsTestMode indicates if the program is running under tests.
// Rendering code uses it to drop volatile data (run ids, timestamps).
var IsTestMode = false

// Version is reported by the version command.
// Can be set at build time using: -ldflags "-X github.com/funvibe/overload/internal/config.Version=v1.2.3"
var Version = "dev"

// Environment variables consulted by the CLI.
const (
	NoColorEnv = "NO_COLOR"       // https://no-color.org/
	ColorEnv   = "OVERLOAD_COLOR" // auto | always | never
	HistoryEnv = "OVERLOAD_DB"    // default history database path
)

// Scenario expectation keywords.
const (
	ExpectFail  = "fail"
	ExpectTrue  = "true"
	ExpectFalse = "false"
)
