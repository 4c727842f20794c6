package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"fruitmerge/internal/audio"
	"fruitmerge/internal/game"
	"fruitmerge/internal/render"
	"fruitmerge/internal/term"
)

type options struct {
	mode    string
	ticks   uint64
	hz      int
	seed    uint64
	envFile string
	debug   bool
	mute    bool
	logDir  string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("fruitmerge", flag.ContinueOnError)
	fs.StringVar(&o.mode, "mode", "window", "frontend: window, term or headless")
	fs.Uint64Var(&o.ticks, "ticks", 0, "headless: stop after this many frames (0 runs until interrupted)")
	fs.IntVar(&o.hz, "hz", 60, "headless and term: frames per second")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed (0 keeps FRUITMERGE_SEED or the clock)")
	fs.StringVar(&o.envFile, "env", ".env", "dotenv file to load before the environment")
	fs.BoolVar(&o.debug, "debug", false, "write logs to the log directory")
	fs.BoolVar(&o.mute, "mute", false, "start with sound muted")
	fs.StringVar(&o.logDir, "logdir", "logs", "directory for -debug logs")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	switch o.mode {
	case "window", "term", "headless":
	default:
		return o, fmt.Errorf("unknown mode %q", o.mode)
	}
	return o, nil
}

// loadConfig applies flag overrides on top of the environment.
func loadConfig(o options) (game.Config, error) {
	cfg, err := game.LoadConfig(o.envFile)
	if err != nil {
		return cfg, err
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.mute {
		cfg.Mute = true
	}
	return cfg, cfg.Validate()
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "fruitmerge: %v\n", err)
		os.Exit(2)
	}

	closer, err := setupLogging(o.debug, o.logDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fruitmerge: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	cfg, err := loadConfig(o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fruitmerge: %v\n", err)
		os.Exit(1)
	}
	log.Printf("starting mode=%s seed=%d broadphase=%s", o.mode, cfg.Seed, cfg.Broadphase)

	switch o.mode {
	case "headless":
		err = runHeadless(cfg, o)
	case "term":
		err = runTerm(cfg, o)
	default:
		err = render.RunDesktop(cfg)
	}
	if err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "fruitmerge: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
}

func runHeadless(cfg game.Config, o options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := game.NewLoop(cfg, game.NewPhysicsWorld(cfg), game.NewMemoryScene(), nil, nil)
	err := game.RunHeadless(ctx, loop, game.HeadlessConfig{Hz: o.hz, Ticks: o.ticks, Out: os.Stdout})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runTerm(cfg game.Config, o options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	// Restore the terminal before any crash output reaches it.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "fruitmerge crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	sound, aerr := audio.Init(cfg.Mute)
	if aerr != nil {
		log.Printf("audio init failed (continuing without sound): %v", aerr)
		sound = nil
	}
	return term.Run(ctx, screen, cfg, term.Options{FPS: o.hz, Sound: sound})
}
