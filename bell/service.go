package bell

import (
	"log"
	"sync/atomic"
)

// Service wraps Bell in the service lifecycle
// Handles graceful degradation when no audio backend is available
type Service struct {
	bell     *Bell
	cfg      Config
	disabled atomic.Bool
}

// NewService creates a bell service with cfg
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "bell"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// The first Config among args overrides the constructor value; other args are ignored
func (s *Service) Init(args ...any) error {
	for _, arg := range args {
		if cfg, ok := arg.(Config); ok {
			s.cfg = cfg
			break
		}
	}
	s.bell = New(s.cfg)
	return nil
}

// Start implements service.Service
// Opens the audio device; sets disabled on failure (no error returned)
func (s *Service) Start() error {
	if s.bell == nil {
		s.disabled.Store(true)
		return nil
	}
	if err := s.bell.Initialize(); err != nil {
		log.Printf("bell: audio unavailable, BEL is silent: %v", err)
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements service.Service; idempotent
func (s *Service) Stop() error {
	if s.bell != nil {
		s.bell.Cleanup()
	}
	return nil
}

// Disabled reports whether Start failed to acquire the audio device
func (s *Service) Disabled() bool {
	return s.disabled.Load()
}

// Ring forwards to the underlying bell; usable as the host engine's BEL hook
func (s *Service) Ring() {
	if s.bell != nil && !s.disabled.Load() {
		s.bell.Ring()
	}
}
