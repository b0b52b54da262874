package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// TimeFormat is the timestamp written at the start of every log line.
const TimeFormat = "2006-01-02 15:04:05"

// LevelEnvVar overrides the minimum level (debug, info, warn, error).
const LevelEnvVar = "LOG_LEVEL"

type Config struct {
	// File is appended to; an empty path or an unopenable file leaves
	// only Console.
	File string

	// Console defaults to os.Stderr.
	Console io.Writer

	// Level defaults to $LOG_LEVEL, then info.
	Level string

	// Server is attached to every line.
	Server string
}

// ZeroLogger implements Logger on top of zerolog.
type ZeroLogger struct {
	zl zerolog.Logger
}

// New builds a logger writing human-readable lines to the console and the
// log file. The returned close func releases the file.
func New(cfg Config) (*ZeroLogger, func() error) {
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{consoleWriter(console)}
	closer := func() error { return nil }

	if cfg.File != "" {
		if f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			writers = append(writers, consoleWriter(bestEffort{f}))
			closer = f.Close
		}
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
	if cfg.Server != "" {
		zl = zl.With().Str("server", cfg.Server).Logger()
	}

	return &ZeroLogger{zl: zl}, closer
}

func (l *ZeroLogger) Debug(msg string, args ...any) { emit(l.zl.Debug(), msg, args) }
func (l *ZeroLogger) Info(msg string, args ...any)  { emit(l.zl.Info(), msg, args) }
func (l *ZeroLogger) Warn(msg string, args ...any)  { emit(l.zl.Warn(), msg, args) }
func (l *ZeroLogger) Error(msg string, args ...any) { emit(l.zl.Error(), msg, args) }

func emit(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	if len(args) > 0 {
		e = e.Fields(args)
	}
	e.Msg(msg)
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: TimeFormat,
	}
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		level = os.Getenv(LevelEnvVar)
	}
	if level == "" {
		return zerolog.InfoLevel
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// bestEffort swallows write errors so a full disk or revoked file never
// breaks a backup run.
type bestEffort struct {
	w io.Writer
}

func (b bestEffort) Write(p []byte) (int, error) {
	_, _ = b.w.Write(p)
	return len(p), nil
}
