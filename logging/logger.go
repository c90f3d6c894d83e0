package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rpupo63/project-aoi-backend/config"
)

// Setup configures the global zerolog logger and returns the closer for the log file,
// if one was opened.
func Setup(s config.Settings) io.Closer {
	level, err := zerolog.ParseLevel(strings.ToLower(s.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	if strings.EqualFold(s.LogFormat, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	var closer io.Closer = nopCloser{}
	if s.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   s.LogFile,
			MaxSize:    s.LogFileMaxSizeMB, // megabytes
			MaxBackups: s.LogFileMaxBackups,
			MaxAge:     s.LogFileMaxAgeDays, // days
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, file)
		closer = file
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("service", "project-aoi-backend").Logger()

	log.Info().
		Str("logLevel", level.String()).
		Str("format", s.LogFormat).
		Str("file", s.LogFile).
		Msg("logger initialized")

	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
