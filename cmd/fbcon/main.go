// Command fbcon drives the global console from concurrent goroutines on a host terminal,
// a tcell screen, or (cgo builds with -tags flanterm) the flanterm framebuffer engine.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fbcon/bell"
	"github.com/lixenwraith/fbcon/config"
	"github.com/lixenwraith/fbcon/kfmt"
	"github.com/lixenwraith/fbcon/registry"
	"github.com/lixenwraith/fbcon/service"
	"github.com/lixenwraith/fbcon/terminal"
)

var (
	configPath = flag.String("config", "", "TOML configuration file")
	engineFlag = flag.String("engine", "", "Engine: host, screen, flanterm (overrides config)")
	workers    = flag.Int("workers", 4, "Concurrent printing goroutines")
	lines      = flag.Int("lines", 10, "Lines printed by each worker")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/fbcon.log")
)

func main() {
	// Panic Recovery: restore the terminal before the stack trace is printed
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)

			fmt.Fprintf(os.Stderr, "\n\x1b[31mFBCON CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "fbcon: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *engineFlag != "" {
		cfg.Engine = *engineFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if *workers < 1 || *lines < 0 {
		return errors.New("need at least one worker and a non-negative line count")
	}

	// Nothing is installed yet: this print is discarded, not queued
	kfmt.Println("unreachable")

	hub := service.NewHub()
	var bellSvc *bell.Service
	if cfg.Bell.Enabled {
		bellSvc = bell.NewService(cfg.BellConfig())
		if err := hub.Register(bellSvc); err != nil {
			return err
		}
	}
	consoleSvc := newConsoleService(&registry.Default, bellSvc)
	if err := hub.Register(consoleSvc); err != nil {
		return err
	}

	if err := hub.InitAll(cfg, cfg.BellConfig()); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	log.Printf("services started: %v", hub.Order())

	runDemo(&registry.Default, *workers, *lines)

	if consoleSvc.screen != nil {
		kfmt.Print("press any key to exit")
		waitForKey(consoleSvc.screen)
	}

	return hub.StopAll()
}

// waitForKey blocks until a key event arrives or the screen is finalized
func waitForKey(s tcell.Screen) {
	for {
		switch s.PollEvent().(type) {
		case *tcell.EventKey, nil:
			return
		}
	}
}
