package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging/colors"
	"github.com/rs/zerolog"
)

// GlobalLogger is the root Logger. It is disabled until the CLI attaches writers to it. Each package creates its own
// sub-logger from it so that log lines can be filtered by the package that emitted them.
var GlobalLogger = NewLogger(zerolog.Disabled)

// LogFormat describes the format a writer receives log lines in.
type LogFormat string

const (
	// STRUCTURED describes JSON log lines
	STRUCTURED LogFormat = "structured"
	// UNSTRUCTURED describes human-readable console log lines
	UNSTRUCTURED LogFormat = "unstructured"
)

// StructuredLogInfo is a key-value mapping which is attached to a log line as structured data.
type StructuredLogInfo map[string]any

// loggerCore holds the writers and underlying zerolog loggers shared by a root Logger and all of its sub-loggers.
// Writers added to the root after a sub-logger was created are therefore visible to that sub-logger as well.
type loggerCore struct {
	// lock guards every field of the core
	lock sync.RWMutex

	// level describes the minimum level that is logged
	level zerolog.Level

	// structuredLogger writes JSON lines to structuredWriters
	structuredLogger  zerolog.Logger
	structuredWriters []io.Writer

	// unstructuredLogger writes plain console lines to unstructuredWriters
	unstructuredLogger  zerolog.Logger
	unstructuredWriters []io.Writer

	// unstructuredColorLogger writes colorized console lines to unstructuredColorWriters
	unstructuredColorLogger  zerolog.Logger
	unstructuredColorWriters []io.Writer
}

// Logger logs events to any number of structured and unstructured writers.
type Logger struct {
	// core is shared between a root logger and its sub-loggers
	core *loggerCore

	// fields holds the key-value context pairs attached by NewSubLogger, flattened as key, value, key, value...
	fields []string
}

// NewLogger creates a Logger with the given level and no writers. Use AddWriter to route output somewhere.
func NewLogger(level zerolog.Level) *Logger {
	core := &loggerCore{level: level}
	core.rebuild()
	return &Logger{core: core}
}

// NewSubLogger creates a Logger that shares this logger's writers and adds a key-value pair to every line it logs.
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	fields := make([]string, 0, len(l.fields)+2)
	fields = append(fields, l.fields...)
	fields = append(fields, key, value)
	return &Logger{core: l.core, fields: fields}
}

// AddWriter routes log output to the given writer in the given format. Colorization only applies to the
// UNSTRUCTURED format. Adding a writer that is already registered for the same format is a no-op.
func (l *Logger) AddWriter(writer io.Writer, format LogFormat, colored bool) {
	l.core.lock.Lock()
	defer l.core.lock.Unlock()

	writers := l.core.writerList(format, colored)
	for _, w := range *writers {
		if w == writer {
			return
		}
	}
	*writers = append(*writers, writer)
	l.core.rebuild()
}

// RemoveWriter stops routing log output to the given writer. Removing a writer that is not registered is a no-op.
func (l *Logger) RemoveWriter(writer io.Writer, format LogFormat, colored bool) {
	l.core.lock.Lock()
	defer l.core.lock.Unlock()

	writers := l.core.writerList(format, colored)
	for i, w := range *writers {
		if w == writer {
			*writers = append((*writers)[:i], (*writers)[i+1:]...)
			break
		}
	}
	l.core.rebuild()
}

// Level returns the log level of the Logger.
func (l *Logger) Level() zerolog.Level {
	l.core.lock.RLock()
	defer l.core.lock.RUnlock()
	return l.core.level
}

// SetLevel updates the log level of the Logger and every sub-logger sharing its writers.
func (l *Logger) SetLevel(level zerolog.Level) {
	l.core.lock.Lock()
	defer l.core.lock.Unlock()
	l.core.level = level
	l.core.rebuild()
}

// Trace logs a trace event.
func (l *Logger) Trace(args ...any) {
	l.log(zerolog.TraceLevel, args...)
}

// Debug logs a debug event.
func (l *Logger) Debug(args ...any) {
	l.log(zerolog.DebugLevel, args...)
}

// Info logs an info event.
func (l *Logger) Info(args ...any) {
	l.log(zerolog.InfoLevel, args...)
}

// Warn logs a warning event.
func (l *Logger) Warn(args ...any) {
	l.log(zerolog.WarnLevel, args...)
}

// Error logs an error event.
func (l *Logger) Error(args ...any) {
	l.log(zerolog.ErrorLevel, args...)
}

// Panic logs a panic event to every writer and then panics with the message.
func (l *Logger) Panic(args ...any) {
	_, msg, _, _ := buildMsgs(args...)
	l.log(zerolog.PanicLevel, args...)
	panic(msg)
}

// log builds the console and plain messages from args and sends them to each underlying logger.
func (l *Logger) log(level zerolog.Level, args ...any) {
	consoleMsg, plainMsg, err, info := buildMsgs(args...)

	// Snapshot the loggers under the read lock so writers can be added concurrently
	l.core.lock.RLock()
	debug := l.core.level <= zerolog.DebugLevel
	targets := []struct {
		logger zerolog.Logger
		msg    string
	}{
		{l.core.structuredLogger, plainMsg},
		{l.core.unstructuredLogger, plainMsg},
		{l.core.unstructuredColorLogger, consoleMsg},
	}
	l.core.lock.RUnlock()

	for _, target := range targets {
		logger := target.logger
		if len(l.fields) > 0 {
			ctx := logger.With()
			for i := 0; i+1 < len(l.fields); i += 2 {
				ctx = ctx.Str(l.fields[i], l.fields[i+1])
			}
			logger = ctx.Logger()
		}

		// WithLevel never panics or exits, which lets Panic reach every writer before panicking itself
		event := logger.WithLevel(level)
		if event == nil {
			continue
		}
		if err != nil {
			event = event.Err(err)
			if debug || level == zerolog.PanicLevel {
				event = event.Stack()
			}
		}
		if info != nil {
			event = event.Any("info", info)
		}
		event.Msg(target.msg)
	}
}

// writerList returns a pointer to the writer list for the given format and coloring. The caller must hold the lock.
func (c *loggerCore) writerList(format LogFormat, colored bool) *[]io.Writer {
	if format == STRUCTURED {
		return &c.structuredWriters
	}
	if colored {
		return &c.unstructuredColorWriters
	}
	return &c.unstructuredWriters
}

// rebuild recreates the underlying zerolog loggers from the current writers and level. The caller must hold the
// lock.
func (c *loggerCore) rebuild() {
	c.structuredLogger = zerolog.Nop()
	if len(c.structuredWriters) > 0 {
		c.structuredLogger = zerolog.New(zerolog.MultiLevelWriter(c.structuredWriters...)).Level(c.level).With().Timestamp().Logger()
	}

	c.unstructuredLogger = zerolog.Nop()
	if len(c.unstructuredWriters) > 0 {
		consoleWriters := make([]io.Writer, len(c.unstructuredWriters))
		for i, w := range c.unstructuredWriters {
			consoleWriters[i] = setupDefaultFormatting(zerolog.ConsoleWriter{Out: w, NoColor: true}, c.level, false)
		}
		c.unstructuredLogger = zerolog.New(zerolog.MultiLevelWriter(consoleWriters...)).Level(c.level)
	}

	c.unstructuredColorLogger = zerolog.Nop()
	if len(c.unstructuredColorWriters) > 0 {
		consoleWriters := make([]io.Writer, len(c.unstructuredColorWriters))
		for i, w := range c.unstructuredColorWriters {
			consoleWriters[i] = setupDefaultFormatting(zerolog.ConsoleWriter{Out: w}, c.level, true)
		}
		c.unstructuredColorLogger = zerolog.New(zerolog.MultiLevelWriter(consoleWriters...)).Level(c.level)
	}
}

// buildMsgs turns a variadic argument list into a colorized console message and a plain message. Color functions
// switch the color context of the arguments after them, an error argument and a StructuredLogInfo argument are
// returned separately so they can be attached to the event.
func buildMsgs(args ...any) (string, string, error, StructuredLogInfo) {
	if len(args) == 0 {
		return "", "", nil, nil
	}

	colorCtx := colors.Reset
	consoleOutput := make([]string, 0, len(args))
	plainOutput := make([]string, 0, len(args))
	var info StructuredLogInfo
	var err error

	for _, arg := range args {
		switch t := arg.(type) {
		case colors.ColorFunc:
			colorCtx = t
		case StructuredLogInfo:
			// Only one structured log info is kept per message
			info = t
		case error:
			// Only one error is kept per message
			err = t
		default:
			consoleOutput = append(consoleOutput, colorCtx(t))
			plainOutput = append(plainOutput, fmt.Sprintf("%v", t))
		}
	}

	return strings.Join(consoleOutput, ""), strings.Join(plainOutput, ""), err, info
}

// setupDefaultFormatting applies the console formatting used for terminal output: no timestamps, a glyph or short
// name for the level, and the module field hidden unless debugging.
func setupDefaultFormatting(writer zerolog.ConsoleWriter, level zerolog.Level, colored bool) zerolog.ConsoleWriter {
	writer.FormatTimestamp = func(i any) string {
		return ""
	}

	paint := func(f colors.ColorFunc, s string) string {
		if !colored {
			return s
		}
		return f(s)
	}

	writer.FormatLevel = func(i any) string {
		levelStr, _ := i.(string)
		parsed, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			return levelStr
		}

		switch parsed {
		case zerolog.TraceLevel:
			return paint(colors.CyanBold, zerolog.LevelTraceValue)
		case zerolog.DebugLevel:
			return paint(colors.BlueBold, zerolog.LevelDebugValue)
		case zerolog.InfoLevel:
			return paint(colors.GreenBold, colors.LEFT_ARROW)
		case zerolog.WarnLevel:
			return paint(colors.YellowBold, zerolog.LevelWarnValue)
		case zerolog.ErrorLevel:
			return paint(colors.RedBold, zerolog.LevelErrorValue)
		case zerolog.FatalLevel:
			return paint(colors.RedBold, zerolog.LevelFatalValue)
		case zerolog.PanicLevel:
			return paint(colors.RedBold, zerolog.LevelPanicValue)
		default:
			return levelStr
		}
	}

	if level > zerolog.DebugLevel {
		writer.FieldsExclude = []string{"module"}
	}

	return writer
}
