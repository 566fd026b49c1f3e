package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// The format used by terminal sinks.
var streamFormat = logging.MustStringFormatter(
	`%{color}%{time:2006-01-02 15:04:05.000} | %{module} | %{level}%{color:reset} | %{message}`,
)

// The format used by file sinks; identical to the stream format minus the
// color escapes.
var fileFormat = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05.000} | %{module} | %{level} | %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// The current verbosity, re-applied whenever the sinks change.
var currentLevel = Notice

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// A Sink is an output destination for log records.
type Sink struct {
	io.Writer

	// Plain sinks are written without color escapes.
	Plain bool
}

// Stream returns a colored sink for a terminal stream.
func Stream(w io.Writer) Sink {
	return Sink{Writer: w}
}

// File returns an uncolored sink for a log file.
func File(w io.Writer) Sink {
	return Sink{Writer: w, Plain: true}
}

// Override the backend output sink.
func SetSink(sink io.Writer) {
	SetSinks(Stream(sink))
}

// Replace the output sinks. Every record is written to all sinks.
func SetSinks(sinks ...Sink) {
	backends := make([]logging.Backend, 0, len(sinks))
	for _, sink := range sinks {
		format := streamFormat
		if sink.Plain {
			format = fileFormat
		}
		backend := logging.NewLogBackend(sink, "", 0)
		backends = append(backends, logging.NewBackendFormatter(backend, format))
	}

	leveledBackend = logging.MultiLogger(backends...)
	logging.SetBackend(leveledBackend)
	SetLevel(currentLevel)
}

// Set logger verbosity.
func SetLevel(level Level) {
	var loggerLevel logging.Level

	switch level {
	case Debug:
		loggerLevel = logging.DEBUG
	case Info:
		loggerLevel = logging.INFO
	case Notice:
		loggerLevel = logging.NOTICE
	case Warning:
		loggerLevel = logging.WARNING
	case Error:
		loggerLevel = logging.ERROR
	}

	currentLevel = level
	leveledBackend.SetLevel(loggerLevel, "")
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
