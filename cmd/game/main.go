package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/asteroids-classic/internal/audio"
	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/loop"
	"github.com/tomz197/asteroids-classic/internal/scores"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Stderr shares the game terminal, so logs go to a file or nowhere.
	logger := log.New(io.Discard)
	if path := config.GetEnv("ASTEROIDS_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "game"})
		logger.SetLevel(log.DebugLevel)
	}

	player := audio.New(audio.Options{
		Enabled: config.GetEnvBool("ASTEROIDS_AUDIO", true),
		Logger:  logger,
	})
	defer player.Close()

	var recorder loop.Recorder
	if path := config.GetEnv("ASTEROIDS_DB", ""); path != "" {
		store, err := scores.Open(path)
		if err != nil {
			return fmt.Errorf("open score store: %w", err)
		}
		defer store.Close()

		rec := scores.NewRecorder(store, 16, logger)
		defer rec.Close()
		name := config.GetEnv("USER", "player")
		recorder = loop.RecorderFunc(func(r loop.Result) {
			rec.Submit(scores.Entry{Player: name, Score: r.Score, Level: r.Level, Duration: r.Duration})
		})
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, loop.RunOptions{
		Seed:     int64(config.GetEnvInt("ASTEROIDS_SEED", 0)),
		Cues:     player,
		Recorder: recorder,
		Logger:   logger,
	})
}
