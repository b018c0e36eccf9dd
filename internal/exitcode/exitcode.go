package exitcode

const (
	Success         = 0
	UsageError      = 1
	ConfigError     = 2
	GenerationError = 3
	WriteError      = 4
	DBConnError     = 5
	LoadError       = 6
)
