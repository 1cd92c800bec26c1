package logging

// These constants identify the services that log. Each is used as the value of the "module" field of a sub-logger.
const (
	// COMPILATION_SERVICE identifies the compilation package, which reads the host build graph
	COMPILATION_SERVICE = "compilation"
	// GENERATION_SERVICE identifies the generation package, which renders and writes artifacts
	GENERATION_SERVICE = "generation"
	// WATCHER_SERVICE identifies the watcher package
	WATCHER_SERVICE = "watcher"
	// PREFS_SERVICE identifies the preference store
	PREFS_SERVICE = "prefs"
	// CLI_SERVICE identifies the cmd package
	CLI_SERVICE = "cli"
)

// DefaultLogFileName is the name of the rotating log file created inside a configured log directory.
const DefaultLogFileName = "idesync.log"
