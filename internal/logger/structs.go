package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool
	UseConsoleWriter bool // human readable output instead of json lines
}

// LogFile implements a rolling file based logger.
// Every level gets its own file, all files share the rotation limits.
type LogFile struct {
	Enabled bool
	Path    string

	AccessLog string `mapstructure:"access"`
	ErrorLog  string `mapstructure:"error"`
	InfoLog   string `mapstructure:"info"`
	TraceLog  string `mapstructure:"trace"`
	WarnLog   string `mapstructure:"warn"`

	MaxSize    int // megabytes before rotation
	MaxBackups int
	MaxAge     int // days
}

// Log implements the logger config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error.
	LogEnv   string

	// EnableAccessLogToConsole writes the http access log to stdout.
	// Does not overrule flag Console.Enabled!
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log /checkalive calls

	AppName     string
	ServiceName string

	// Console used mainly for docker and dev.
	Console Console

	// File keeps rolling logs on disk.
	File LogFile
}
