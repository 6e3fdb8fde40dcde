package main

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fbcon/bell"
	"github.com/lixenwraith/fbcon/config"
	"github.com/lixenwraith/fbcon/console"
	"github.com/lixenwraith/fbcon/registry"
	"github.com/lixenwraith/fbcon/terminal"
	"github.com/lixenwraith/fbcon/terminal/flanterm"
	"github.com/lixenwraith/fbcon/terminal/screen"
)

var (
	errNoConfig            = errors.New("console: no *config.Config in init args")
	errFlantermUnavailable = errors.New("console: flanterm engine not built (needs cgo and -tags flanterm)")
)

// consoleService builds the configured engine, wraps it in a context and installs it into reg
type consoleService struct {
	reg  *registry.Registry
	bell *bell.Service // nil when the bell is disabled

	cfg     *config.Config
	init    terminal.Initializer
	screen  tcell.Screen // set for the screen engine; the demo polls it for a key
	newScrn func() (tcell.Screen, error)

	stopOnce sync.Once
}

func newConsoleService(reg *registry.Registry, b *bell.Service) *consoleService {
	return &consoleService{
		reg:     reg,
		bell:    b,
		newScrn: tcell.NewScreen,
	}
}

// Name implements service.Service
func (s *consoleService) Name() string {
	return "console"
}

// Dependencies implements service.Service
func (s *consoleService) Dependencies() []string {
	if s.bell != nil {
		return []string{"bell"}
	}
	return nil
}

// Init implements service.Service
// Requires a *config.Config among args; selects the engine initializer
func (s *consoleService) Init(args ...any) error {
	for _, arg := range args {
		if cfg, ok := arg.(*config.Config); ok {
			s.cfg = cfg
			break
		}
	}
	if s.cfg == nil {
		return errNoConfig
	}

	switch s.cfg.Engine {
	case config.EngineHost:
		s.init = terminal.NewHost(nil, s.ring)
	case config.EngineScreen:
		scr, err := s.newScrn()
		if err != nil {
			return fmt.Errorf("console: tcell screen: %w", err)
		}
		s.screen = scr
		s.init = screen.New(scr)
	case config.EngineFlanterm:
		if !flanterm.Available() {
			return errFlantermUnavailable
		}
		s.init = flanterm.Init
	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidEngine, s.cfg.Engine)
	}
	return nil
}

// Start implements service.Service
// Creates the context and hands it to the registry
func (s *consoleService) Start() error {
	fb := s.cfg.Framebuffer()
	if s.cfg.Engine == config.EngineFlanterm {
		pixels, err := allocPixels(fb.Pitch * fb.Height)
		if err != nil {
			return err
		}
		fb.Pixels = pixels
	}
	opts, err := s.cfg.Options()
	if err != nil {
		return err
	}

	ctx, err := console.New(s.init, fb, opts)
	if err != nil {
		return err
	}
	ctx.SetAutoflush(s.cfg.Autoflush)

	cols, rows := ctx.Dimensions()
	log.Printf("console: %s engine, %dx%d cells, autoflush=%v", s.cfg.Engine, cols, rows, s.cfg.Autoflush)

	return s.reg.Install(ctx)
}

// Stop implements service.Service; idempotent
// Runs at process exit: the context is reset, flushed and closed inside the registry lock, so
// the engine is torn down through its own Deinit (a tcell screen is finalized, the host TTY gets
// its attributes and cursor back) and the registry reverts to uninitialized. Prints after Stop
// are discarded.
func (s *consoleService) Stop() error {
	s.stopOnce.Do(func() {
		s.reg.Do(func(c *console.Context) {
			c.ResetFormat()
			c.Flush()
			c.Close()
		})
	})
	return nil
}

func (s *consoleService) ring() {
	if s.bell != nil {
		s.bell.Ring()
	}
}
