// Package stdlogger adapts the global zerolog logger to printf style interfaces,
// e.g. the gorm logger writer.
package stdlogger

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger writes printf style messages to zerolog.
type Logger struct {
	component string
	level     zerolog.Level // level used by Printf
}

// New logger with Printf mapped to info.
func New() *Logger {
	return &Logger{level: zerolog.InfoLevel}
}

// NewWithComponent tags every message with component and maps Printf to level.
func NewWithComponent(component string, level zerolog.Level) *Logger {
	return &Logger{component: component, level: level}
}

func (l *Logger) write(level zerolog.Level, format string, args ...any) {
	event := log.WithLevel(level)
	if l.component != "" {
		event = event.Str("component", l.component)
	}

	event.Msg(fmt.Sprintf(format, args...))
}

// Printf implements the gorm logger.Writer interface.
func (l *Logger) Printf(format string, args ...any) {
	l.write(l.level, format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.write(zerolog.DebugLevel, format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.write(zerolog.InfoLevel, format, args...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, args ...any) {
	l.write(zerolog.WarnLevel, format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.write(zerolog.ErrorLevel, format, args...)
}
