package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

type sink struct {
	w     io.Writer
	color bool
}

type ColoredLogger struct {
	verbose bool
	mu      sync.RWMutex
	sinks   map[LogLevel][]sink
	now     func() time.Time
}

var globalLogger *ColoredLogger

func init() {
	globalLogger = newColoredLogger()
	SetWriterForAll(os.Stdout)
}

func newColoredLogger() *ColoredLogger {
	return &ColoredLogger{
		sinks: make(map[LogLevel][]sink),
		now:   time.Now,
	}
}

// isTerminal reports whether w is a character device. Only terminals get ANSI colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func SetVerbose(verbose bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.verbose = verbose
}

func SetWriter(level LogLevel, writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.sinks[level] = []sink{{w: writer, color: isTerminal(writer)}}
}

func SetWriterForAll(writer io.Writer) {
	for level := DEBUG; level <= ERROR; level++ {
		SetWriter(level, writer)
	}
}

// AddWriter tees a level to an extra writer, e.g. the --logfile.
func AddWriter(level LogLevel, writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.sinks[level] = append(globalLogger.sinks[level], sink{w: writer, color: isTerminal(writer)})
}

func AddWriterForAll(writer io.Writer) {
	for level := DEBUG; level <= ERROR; level++ {
		AddWriter(level, writer)
	}
}

func (cl *ColoredLogger) getColor(level LogLevel) string {
	switch level {
	case DEBUG:
		return ColorGray
	case INFO:
		return ColorBlue
	case WARN:
		return ColorYellow
	case ERROR:
		return ColorRed
	default:
		return ColorReset
	}
}

func (cl *ColoredLogger) formatMessage(level LogLevel, message string, color bool) string {
	timestamp := cl.now().Format("06-01-02 15:04:05")

	if !color {
		return fmt.Sprintf("[%s] %-5s %s", timestamp, level.String(), message)
	}

	return fmt.Sprintf(
		"%s[%s]%s %s%-5s%s %s",
		ColorGray, timestamp, ColorReset,
		cl.getColor(level), level.String(), ColorReset,
		message,
	)
}

func (cl *ColoredLogger) log(level LogLevel, format string, args ...interface{}) {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	if level == DEBUG && !cl.verbose {
		return
	}

	message := fmt.Sprintf(format, args...)
	for _, s := range cl.sinks[level] {
		fmt.Fprintln(s.w, cl.formatMessage(level, message, s.color))
	}
}

func Debug(format string, args ...interface{}) {
	globalLogger.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.log(ERROR, format, args...)
}

func GetLogFromLevel(level LogLevel) func(format string, args ...interface{}) {
	return func(format string, args ...interface{}) {
		globalLogger.log(level, format, args...)
	}
}
