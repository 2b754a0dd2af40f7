package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	log     = newLogger(os.Stdout, zerolog.InfoLevel)
	logFile *os.File
)

const (
	INFO = iota
	DEBUG
)

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		NoColor:    out != os.Stdout,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// InitLogger sends output to both stdout and the given file.
// An empty filename keeps stdout only.
func InitLogger(filename string, level int) error {
	lvl := zerolog.InfoLevel
	if level == DEBUG {
		lvl = zerolog.DebugLevel
	}

	if filename == "" {
		log = newLogger(os.Stdout, lvl)
		return nil
	}

	var err error
	logFile, err = os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	log = newLogger(io.MultiWriter(os.Stdout, logFile), lvl)
	return nil
}

// SetOutput redirects logging, mostly for tests.
func SetOutput(w io.Writer) {
	log = newLogger(w, log.GetLevel())
}

func Close() {
	if logFile != nil {
		logFile.Close()
	}
}

func Logger() *zerolog.Logger { return &log }

func Debugf(format string, v ...interface{}) {
	log.Debug().Msgf(format, v...)
}

func Info(msg string) {
	log.Info().Msg(msg)
}

func Infof(format string, v ...interface{}) {
	log.Info().Msgf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	log.Warn().Msgf(format, v...)
}

func Error(msg string) {
	log.Error().Msg(msg)
}

func Errorf(format string, v ...interface{}) {
	log.Error().Msgf(format, v...)
}
