package logger

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Logger is a subsystem logger. All messages are tagged with the subsystem
// tag and filtered by the logger's current level before being handed to the
// backend's write goroutine.
type Logger struct {
	lvl       Level // atomic
	tag       string
	b         *Backend
	writeChan chan<- logEntry
}

type logEntry struct {
	log   []byte
	level Level
}

var (
	backendLog = NewBackend()

	subsystemsMutex sync.Mutex
	subsystems      = make(map[string]*Logger)
)

// RegisterSubSystem registers a new subsystem logger under the given tag and
// returns it. Registering the same tag twice returns the already-registered
// logger, so per-package `var log = logger.RegisterSubSystem(...)` statements
// stay cheap and idempotent.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemsMutex.Lock()
	defer subsystemsMutex.Unlock()
	logger, ok := subsystems[subsystem]
	if !ok {
		logger = backendLog.Logger(subsystem)
		subsystems[subsystem] = logger
	}
	return logger
}

// InitLogStdout attaches stdout to the logging backend at the given level and
// starts the backend. It is used by short-lived utilities that don't log to
// files.
func InitLogStdout(logLevel Level) {
	err := backendLog.AddLogWriter(os.Stdout, logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the loggerfor level %s: %s", logLevel, err)
		os.Exit(1)
	}
	err = backendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}

// InitLog attaches log file and error log file to the backend log and starts
// the backend.
func InitLog(logFile, errLogFile string) {
	err := backendLog.AddLogFile(logFile, LevelTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, LevelTrace, err)
		os.Exit(1)
	}
	err = backendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", errLogFile, LevelWarn, err)
		os.Exit(1)
	}
	err = backendLog.AddLogWriter(os.Stdout, LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the loggerfor level %s: %s", LevelInfo, err)
		os.Exit(1)
	}
	err = backendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}

// SetLogLevels sets the log level for all registered subsystems. Invalid
// level names are rejected.
func SetLogLevels(logLevel string) error {
	lvl, ok := LevelFromString(logLevel)
	if !ok {
		return errors.Errorf("invalid log level %s", logLevel)
	}

	subsystemsMutex.Lock()
	defer subsystemsMutex.Unlock()
	for _, logger := range subsystems {
		logger.SetLevel(lvl)
	}
	return nil
}

// SetLogLevel sets the log level for the given subsystem only.
func SetLogLevel(subsystemTag string, logLevel string) error {
	lvl, ok := LevelFromString(logLevel)
	if !ok {
		return errors.Errorf("invalid log level %s", logLevel)
	}

	subsystemsMutex.Lock()
	defer subsystemsMutex.Unlock()
	logger, ok := subsystems[subsystemTag]
	if !ok {
		return errors.Errorf("unknown subsystem %s", subsystemTag)
	}
	logger.SetLevel(lvl)
	return nil
}

// Close shuts the logging backend down and flushes all pending entries.
func Close() {
	backendLog.Close()
}

// print outputs a log message to the writeChan associated with the logger
// after creating a prefix for the given level and tag according to the
// formatHeader function and formatting the provided arguments using the
// default formatting rules.
func (l *Logger) print(lvl Level, args ...interface{}) {
	if lvl < l.Level() {
		return
	}

	bytebuf := make([]byte, 0, normalLogSize)
	bytebuf = formatHeader(bytebuf, l.b.flag, lvl, l.tag)
	bytebuf = append(bytebuf, fmt.Sprint(args...)...)
	bytebuf = append(bytebuf, '\n')

	l.writeChan <- logEntry{bytebuf, lvl}
}

// printf outputs a log message to the writeChan associated with the logger
// after creating a prefix for the given level and tag according to the
// formatHeader function and formatting the provided arguments according to
// the given format specifier.
func (l *Logger) printf(lvl Level, format string, args ...interface{}) {
	if lvl < l.Level() {
		return
	}

	bytebuf := make([]byte, 0, normalLogSize)
	bytebuf = formatHeader(bytebuf, l.b.flag, lvl, l.tag)
	bytebuf = append(bytebuf, fmt.Sprintf(format, args...)...)
	bytebuf = append(bytebuf, '\n')

	l.writeChan <- logEntry{bytebuf, lvl}
}

// formatHeader writes the log header into buf: a timestamp, the level tag,
// the subsystem tag, and optionally the callsite, e.g.
// 2026-01-02 15:04:05.000 [INF] CNSS: ...
func formatHeader(buf []byte, flag uint32, lvl Level, tag string) []byte {
	t := time.Now()
	buf = append(buf, t.Format("2006-01-02 15:04:05.000")...)
	buf = append(buf, " ["...)
	buf = append(buf, lvl.String()...)
	buf = append(buf, "] "...)
	buf = append(buf, tag...)

	if flag&(LogFlagLongFile|LogFlagShortFile) != 0 {
		file, line := callsite(flag)
		buf = append(buf, ' ')
		buf = append(buf, file...)
		buf = append(buf, ':')
		buf = append(buf, fmt.Sprintf("%d", line)...)
	}

	buf = append(buf, ": "...)
	return buf
}

// callsite returns the file name and line of the callsite of the log message.
// The number of stack frames to skip is fixed because print/printf are always
// called through one of the exported level methods.
func callsite(flag uint32) (string, int) {
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return "???", 0
	}
	if flag&LogFlagShortFile != 0 {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if os.IsPathSeparator(file[i]) {
				short = file[i+1:]
				break
			}
		}
		file = short
	}
	return file, line
}

// Trace formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	l.print(LevelTrace, args...)
}

// Tracef formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.printf(LevelTrace, format, args...)
}

// Debug formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	l.print(LevelDebug, args...)
}

// Debugf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, format, args...)
}

// Info formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	l.print(LevelInfo, args...)
}

// Infof formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, format, args...)
}

// Warn formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	l.print(LevelWarn, args...)
}

// Warnf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.printf(LevelWarn, format, args...)
}

// Error formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelError.
func (l *Logger) Error(args ...interface{}) {
	l.print(LevelError, args...)
}

// Errorf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, format, args...)
}

// Critical formats message using the default formats for its operands,
// prepends the prefix as necessary, and writes to log with LevelCritical.
func (l *Logger) Critical(args ...interface{}) {
	l.print(LevelCritical, args...)
}

// Criticalf formats message according to format specifier, prepends the
// prefix as necessary, and writes to log with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.printf(LevelCritical, format, args...)
}

// Level returns the current logging level
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(logLevel Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(logLevel))
}

// Backend returns the backend this logger writes to.
func (l *Logger) Backend() *Backend {
	return l.b
}

const normalLogSize = 512

// SupportedLevels returns the names of all levels SetLogLevels accepts, for
// use in help output.
func SupportedLevels() []string {
	return strings.Split("trace debug info warn error critical off", " ")
}
