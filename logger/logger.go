// Package logger provides prefixed, level-tagged component loggers.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/gookit/color"
)

var ErrNilWriter = errors.New("logger writer is nil")

// Logger is the logging surface every component depends on.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
	Debug(string)
}

var _ Logger = &ColorLogger{}

// Level tags rendered in front of every message.
var (
	infoTag    = color.Style{color.FgGreen, color.OpBold}
	warningTag = color.Style{color.FgYellow, color.OpBold}
	errorTag   = color.Style{color.FgRed, color.OpBold}
	debugTag   = color.Style{color.FgGray}
)

// ColorLogger writes "[PREFIX] [LEVEL] message" lines, with the prefix and
// level coloured when the output supports it.
type ColorLogger struct {
	prefix string
	style  color.Style
	out    *log.Logger
	debug  atomic.Bool
}

// New creates a logger for a component named prefix.
func New(prefix string, style color.Style, w io.Writer) (*ColorLogger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	return &ColorLogger{
		prefix: prefix,
		style:  style,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Discard returns a logger that drops everything.
func Discard() *ColorLogger {
	l, _ := New("", nil, io.Discard)
	return l
}

// SetDebug toggles Debug output.
func (l *ColorLogger) SetDebug(enabled bool) {
	l.debug.Store(enabled)
}

// Info implements Logger.
func (l *ColorLogger) Info(msg string) {
	l.print(infoTag, "INFO", msg)
}

// Warning implements Logger.
func (l *ColorLogger) Warning(msg string) {
	l.print(warningTag, "WARNING", msg)
}

// Error implements Logger.
func (l *ColorLogger) Error(msg string) {
	l.print(errorTag, "ERROR", msg)
}

// Debug implements Logger. Messages are dropped unless SetDebug(true).
func (l *ColorLogger) Debug(msg string) {
	if !l.debug.Load() {
		return
	}
	l.print(debugTag, "DEBUG", msg)
}

func (l *ColorLogger) print(tag color.Style, level, msg string) {
	prefix := fmt.Sprintf("[%s]", l.prefix)
	if len(l.style) > 0 {
		prefix = l.style.Sprint(prefix)
	}
	l.out.Printf("%s %s %s", prefix, tag.Sprintf("[%s]", level), msg)
}
