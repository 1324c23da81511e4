package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug        bool   `split_words:"true" default:"false"`
	PrettyFormat bool   `split_words:"true" default:"false"`
	File         string `split_words:"true"`
}

var DefaultConfig = &Config{
	Debug:        false,
	PrettyFormat: false,
}

var (
	outputMu sync.Mutex
	// output is the log file opened by Init, if any.
	output *os.File
)

// swapOutput records f as the open log file and closes the previous one.
func swapOutput(f *os.File) {
	outputMu.Lock()
	prev := output
	output = f
	outputMu.Unlock()

	if prev != nil && prev != f {
		_ = prev.Close()
	}
}

func safe(opts ...Config) *Config {
	if len(opts) == 0 {
		return DefaultConfig
	}
	return &opts[0]
}

// Init configures the global logger. Output goes to stderr, or is appended to
// File when set.
func Init(opts ...Config) error {
	conf := safe(opts...)

	path := strings.TrimSpace(conf.File)
	if path == "" {
		InitWithWriter(os.Stderr, *conf)
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		InitWithWriter(os.Stderr, *conf)
		return fmt.Errorf("open log file: %w", err)
	}
	configure(f, *conf)
	swapOutput(f)
	return nil
}

// InitWithWriter configures the global logger to write to w. A log file
// opened by an earlier Init is closed.
func InitWithWriter(w io.Writer, conf Config) {
	configure(w, conf)
	swapOutput(nil)
}

func configure(w io.Writer, conf Config) {
	if conf.PrettyFormat {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}

	if conf.Debug {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	log.Logger = log.Logger.With().Caller().Stack().Logger()
}

// Discard silences the global logger and closes any open log file.
func Discard() {
	log.Logger = zerolog.Nop()
	swapOutput(nil)
}
