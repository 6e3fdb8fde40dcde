package service

import (
	"errors"
	"slices"
	"testing"
)

type fakeService struct {
	name    string
	deps    []string
	log     *[]string
	initErr error
	failOn  string
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}

func (f *fakeService) Start() error {
	if f.failOn == "start" {
		return errors.New("boom")
	}
	*f.log = append(*f.log, "start:"+f.name)
	return nil
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

func TestHubDependencyOrder(t *testing.T) {
	var log []string
	h := NewHub()
	for _, svc := range []*fakeService{
		{name: "console", deps: []string{"bell", "engine"}, log: &log},
		{name: "engine", log: &log},
		{name: "bell", log: &log},
	} {
		if err := h.Register(svc); err != nil {
			t.Fatalf("Register(%s): %v", svc.name, err)
		}
	}

	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := h.StopAll(); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{
		"init:bell", "init:engine", "init:console",
		"start:bell", "start:engine", "start:console",
		"stop:console", "stop:engine", "stop:bell",
	}
	if !slices.Equal(log, want) {
		t.Errorf("lifecycle = %v, want %v", log, want)
	}
	if got := h.Order(); !slices.Equal(got, []string{"bell", "engine", "console"}) {
		t.Errorf("Order() = %v", got)
	}
}

func TestHubErrors(t *testing.T) {
	var log []string

	h := NewHub()
	h.Register(&fakeService{name: "a", log: &log})
	if err := h.Register(&fakeService{name: "a", log: &log}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate Register = %v, want ErrDuplicate", err)
	}

	h = NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"missing"}, log: &log})
	if err := h.InitAll(); !errors.Is(err, ErrMissingDep) {
		t.Errorf("missing dep InitAll = %v, want ErrMissingDep", err)
	}

	h = NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})
	if err := h.InitAll(); !errors.Is(err, ErrCircularDeps) {
		t.Errorf("cycle InitAll = %v, want ErrCircularDeps", err)
	}
}

func TestHubRollback(t *testing.T) {
	t.Run("init", func(t *testing.T) {
		var log []string
		h := NewHub()
		h.Register(&fakeService{name: "a", log: &log})
		h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log, initErr: errors.New("nope")})

		if err := h.InitAll(); err == nil {
			t.Fatal("InitAll succeeded, want error")
		}
		want := []string{"init:a", "init:b", "stop:a"}
		if !slices.Equal(log, want) {
			t.Errorf("log = %v, want %v", log, want)
		}
	})

	t.Run("start", func(t *testing.T) {
		var log []string
		h := NewHub()
		h.Register(&fakeService{name: "a", log: &log})
		h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log, failOn: "start"})

		if err := h.InitAll(); err != nil {
			t.Fatalf("InitAll: %v", err)
		}
		if err := h.StartAll(); err == nil {
			t.Fatal("StartAll succeeded, want error")
		}
		want := []string{"init:a", "init:b", "start:a", "stop:a"}
		if !slices.Equal(log, want) {
			t.Errorf("log = %v, want %v", log, want)
		}

		// Nothing left started after rollback
		log = log[:0]
		if err := h.StopAll(); err != nil {
			t.Fatalf("StopAll: %v", err)
		}
		if len(log) != 0 {
			t.Errorf("StopAll after rollback = %v, want nothing", log)
		}
	})
}

func TestLookup(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "a", log: &log})

	if svc, ok := Lookup[*fakeService](h, "a"); !ok || svc.name != "a" {
		t.Errorf("Lookup(a) = %v, %v", svc, ok)
	}
	if _, ok := Lookup[*fakeService](h, "missing"); ok {
		t.Error("Lookup(missing) succeeded")
	}
	if _, ok := Lookup[interface{ Ring() }](h, "a"); ok {
		t.Error("Lookup with wrong type succeeded")
	}
}

// A console that cannot start leaves nothing running, including the bell it depends on
func TestHubStartFailureStopsDependencies(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "console", deps: []string{"bell"}, log: &log, failOn: "start"})
	h.Register(&fakeService{name: "bell", log: &log})

	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	err := h.StartAll()
	if err == nil {
		t.Fatal("StartAll succeeded, want console failure")
	}

	want := []string{"init:bell", "init:console", "start:bell", "stop:bell"}
	if !slices.Equal(log, want) {
		t.Errorf("lifecycle = %v, want %v", log, want)
	}
	if err := h.StopAll(); err != nil {
		t.Errorf("StopAll after failed start: %v", err)
	}
	if len(log) != len(want) {
		t.Errorf("StopAll stopped already rolled back services: %v", log[len(want):])
	}
}
