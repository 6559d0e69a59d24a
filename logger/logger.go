/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Logging
 */

package logger

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Defaults for file logs
const (
	DefaultMaxFileSize    = 256 * 1024
	DefaultMaxBackupFiles = 5
)

var (
	logMessagePool = sync.Pool{New: func() interface{} { return &LogMessage{} }}
	logBufferPool  = sync.Pool{New: func() interface{} { return &bytes.Buffer{} }}
)

// LogLevel is a bitmask of log levels
type LogLevel int

// Log levels
const (
	LogError LogLevel = 1 << iota
	LogInfo
	LogDebug
	LogTraceIPP
	LogTraceHTTP

	LogTraceAll = LogTraceIPP | LogTraceHTTP
	LogAll      = LogError | LogInfo | LogDebug | LogTraceAll
)

// logLevelNames maps level names, as used in configuration
// files, to levels. Each level implies less verbose ones
var logLevelNames = map[string]LogLevel{
	"error":      LogError,
	"info":       LogError | LogInfo,
	"debug":      LogError | LogInfo | LogDebug,
	"trace-ipp":  LogError | LogInfo | LogDebug | LogTraceIPP,
	"trace-http": LogError | LogInfo | LogDebug | LogTraceHTTP,
	"all":        LogAll,
	"trace-all":  LogAll,
}

// ParseLevels parses comma-separated list of level names,
// like "debug,trace-ipp"
func ParseLevels(s string) (LogLevel, error) {
	var mask LogLevel

	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		level, ok := logLevelNames[name]
		if !ok {
			return 0, fmt.Errorf("invalid log level %q", name)
		}

		mask |= level
	}

	return mask, nil
}

// Logger implements logging facilities
//
// A nil *Logger is valid and discards everything
type Logger struct {
	lock       sync.Mutex   // Write lock
	levels     LogLevel     // Enabled levels
	path       string       // Path to log file, "" if none
	out        io.Writer    // Output stream
	file       *os.File     // Output file, for file logs
	maxSize    int64        // Rotate file when it grows above
	maxBackups int          // Count of gzip'ed backups
	console    bool         // Console logger, no time prefix
	color      bool         // Colorize output
	time       bytes.Buffer // Time prefix buffer
	cc         *Logger      // Optional copy of the log
}

// NewConsoleLogger creates a logger that writes to stdout.
// On terminal, output is colorized
func NewConsoleLogger(levels LogLevel) *Logger {
	return &Logger{
		levels:  levels,
		out:     os.Stdout,
		console: true,
		color:   logIsAtty(os.Stdout),
	}
}

// NewFileLogger creates a logger that writes to the file.
// The file is opened on demand and rotated when it grows
// above maxSize bytes, keeping maxBackups gzip'ed copies
func NewFileLogger(path string, levels LogLevel,
	maxSize int64, maxBackups int) *Logger {

	return &Logger{
		levels:     levels,
		path:       path,
		maxSize:    maxSize,
		maxBackups: maxBackups,
	}
}

// NewWriterLogger creates a logger that writes into
// io.Writer, without time prefix
func NewWriterLogger(out io.Writer, levels LogLevel) *Logger {
	return &Logger{
		levels:  levels,
		out:     out,
		console: true,
	}
}

// Cc instructs the logger to send a copy of every message
// to another logger, filtered by that logger's levels
func (l *Logger) Cc(to *Logger) *Logger {
	if l != nil {
		l.cc = to
	}
	return l
}

// Levels returns enabled levels
func (l *Logger) Levels() LogLevel {
	if l == nil {
		return 0
	}

	levels := l.levels
	if l.cc != nil {
		levels |= l.cc.Levels()
	}

	return levels
}

// Enabled reports if any of the specified levels is enabled
func (l *Logger) Enabled(level LogLevel) bool {
	return l.Levels()&level != 0
}

// Close the logger
func (l *Logger) Close() {
	if l == nil {
		return
	}

	l.lock.Lock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	l.lock.Unlock()
}

// Begin new log message
func (l *Logger) Begin() *LogMessage {
	msg := logMessagePool.Get().(*LogMessage)
	msg.logger = l
	return msg
}

// Debug writes a LogDebug message
func (l *Logger) Debug(prefix byte, format string, args ...interface{}) {
	l.Begin().Debug(prefix, format, args...).Commit()
}

// Info writes a LogInfo message
func (l *Logger) Info(prefix byte, format string, args ...interface{}) {
	l.Begin().Info(prefix, format, args...).Commit()
}

// Error writes a LogError message
func (l *Logger) Error(prefix byte, format string, args ...interface{}) {
	l.Begin().Error(prefix, format, args...).Commit()
}

// Dump writes HEX dump at the specified level
func (l *Logger) Dump(level LogLevel, data []byte) {
	l.Begin().Dump(level, data).Commit()
}

// send writes lines of the message, filtered by levels
func (l *Logger) send(lines []logLine) {
	if l.cc != nil {
		l.cc.send(lines)
	}

	if !l.anyEnabled(lines) {
		return
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if l.out == nil && l.path != "" {
		l.open()
	}

	if l.out == nil {
		return
	}

	if l.file != nil {
		l.rotate()
	}

	l.fmtTime()
	for _, line := range lines {
		if l.levels&line.level == 0 {
			continue
		}

		l.out.Write(l.time.Bytes())
		if l.color {
			logColorConsoleWrite(l.out, line.level, line.buf.Bytes())
		} else {
			l.out.Write(line.buf.Bytes())
		}
	}
}

// anyEnabled reports if any of lines passes the level filter
func (l *Logger) anyEnabled(lines []logLine) bool {
	for _, line := range lines {
		if l.levels&line.level != 0 {
			return true
		}
	}
	return false
}

// open opens the log file. Called under the lock
func (l *Logger) open() {
	os.MkdirAll(filepath.Dir(l.path), 0755)

	file, err := os.OpenFile(l.path,
		os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err == nil {
		l.file = file
		l.out = file
	}
}

// fmtTime formats a time prefix
func (l *Logger) fmtTime() {
	l.time.Reset()
	if l.console {
		return
	}

	l.time.WriteString(time.Now().Format("02-01-2006 15:04:05"))
	l.time.WriteString(": ")
}

// rotate handles log rotation. Called under the lock
//
// The current file is gzip'ed into path.0.gz, older
// backups shift by one, the oldest one is removed
func (l *Logger) rotate() {
	stat, err := l.file.Stat()
	if err != nil || stat.Size() <= l.maxSize {
		return
	}

	backup := func(i int) string {
		return fmt.Sprintf("%s.%d.gz", l.path, i)
	}

	if l.maxBackups > 0 {
		os.Remove(backup(l.maxBackups - 1))
		for i := l.maxBackups - 1; i > 0; i-- {
			os.Rename(backup(i-1), backup(i))
		}

		if logGzip(l.path, backup(0)) != nil {
			return
		}
	}

	l.file.Truncate(0)
}

// logGzip compresses ipath into opath
func logGzip(ipath, opath string) error {
	ifile, err := os.Open(ipath)
	if err != nil {
		return err
	}

	defer ifile.Close()

	ofile, err := os.OpenFile(opath, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return err
	}

	w := gzip.NewWriter(ofile)
	_, err = io.Copy(w, ifile)
	err2 := w.Close()
	err3 := ofile.Close()

	switch {
	case err == nil && err2 != nil:
		err = err2
	case err == nil && err3 != nil:
		err = err3
	}

	if err != nil {
		os.Remove(opath)
	}

	return err
}

// logBufAlloc allocates a buffer
func logBufAlloc() *bytes.Buffer {
	return logBufferPool.Get().(*bytes.Buffer)
}

// logBufFree returns buffer to the pool
func logBufFree(buf *bytes.Buffer) {
	if buf.Cap() <= 256 {
		buf.Reset()
		logBufferPool.Put(buf)
	}
}
