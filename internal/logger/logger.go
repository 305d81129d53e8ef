package logger

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Options controls where and how much the logger writes.
// Path empty means console only.
type Options struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New builds a logger for opts. Callers own the returned value and should
// Sync it before exit.
func New(opts Options) *Logger {
	return newZapLogger(opts)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return newNopLogger()
}
