package gekkofx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Level orders log severity. The zero value is LevelInfo.
type Level int

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l-LevelDebug]
}

func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i) + LevelDebug, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// DefaultLogger drops lines below its level. Debug and info go to one
// writer, warnings and errors to the other.
type DefaultLogger struct {
	mu     sync.Mutex
	level  Level
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, level Level) *DefaultLogger {
	return NewWriterLogger(os.Stdout, os.Stderr, prefix, level)
}

func NewWriterLogger(out, errOut io.Writer, prefix string, level Level) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		level:  level,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

func (l *DefaultLogger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *DefaultLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *DefaultLogger) logf(level Level, format string, args ...any) {
	if level < l.Level() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = fmt.Sprintf("[%s] %s: %s", l.prefix, level, msg)
	} else {
		msg = fmt.Sprintf("%s: %s", level, msg)
	}
	if level >= LevelWarn {
		l.err.Print(msg)
	} else {
		l.out.Print(msg)
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// LoggingModule installs a DefaultLogger resource.
type LoggingModule struct {
	Prefix string
	Level  Level
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	app.addResources(NewDefaultLogger(m.Prefix, m.Level))
}

type discardLogger struct{}

func (discardLogger) Debugf(string, ...any) {}
func (discardLogger) Infof(string, ...any)  {}
func (discardLogger) Warnf(string, ...any)  {}
func (discardLogger) Errorf(string, ...any) {}

func NewNopLogger() Logger { return discardLogger{} }

// Logger is the installed DefaultLogger, or a logger that drops everything.
func (app *App) Logger() Logger {
	if app == nil {
		return discardLogger{}
	}
	if l := Resource[DefaultLogger](app); l != nil {
		return l
	}
	return discardLogger{}
}
