package kfmt

import (
	"log"
	"sync"
	"testing"

	"github.com/lixenwraith/fbcon/console"
	"github.com/lixenwraith/fbcon/registry"
	"github.com/lixenwraith/fbcon/terminal"
	"github.com/lixenwraith/fbcon/terminal/termtest"
)

func install(t *testing.T, r *registry.Registry, eng *termtest.Engine) {
	t.Helper()
	ctx, err := console.New(termtest.Initializer(eng), terminal.RGB888(nil, 640, 400), nil)
	if err != nil {
		t.Fatalf("console.New: %v", err)
	}
	if err := r.Install(ctx); err != nil {
		t.Fatalf("Install: %v", err)
	}
}

// Output before installation is dropped silently rather than reported, by design
func TestPrint_BeforeInstallIsSilentNoop(t *testing.T) {
	var r registry.Registry

	defer func() {
		if p := recover(); p != nil {
			t.Fatalf("print before install panicked: %v", p)
		}
	}()

	for i := 0; i < 10; i++ {
		Fprint(&r, "early ", i)
		Fprintf(&r, "boot stage %d\n", i)
		Fprintln(&r, "line", i)
	}
	if n, err := RegistryWriter(&r).Write([]byte("xyz")); n != 3 || err != nil {
		t.Fatalf("writer before install = %d, %v", n, err)
	}

	// Installing afterwards must not replay anything
	eng := termtest.New(80, 25)
	install(t, &r, eng)
	if out := eng.Output(); out != "" {
		t.Fatalf("pre-install output reached the engine: %q", out)
	}
}

func TestPrintf_OneWritePerCall(t *testing.T) {
	var r registry.Registry
	eng := termtest.New(80, 25)
	install(t, &r, eng)

	Fprintf(&r, "mem: %d KiB free\n", 640)
	Fprintln(&r, "smp", "online")
	Fprint(&r, "a", 1, 2, "b")

	writes := eng.Writes()
	want := []string{"mem: 640 KiB free\n", "smp online\n", "a1 2b"}
	if len(writes) != len(want) {
		t.Fatalf("writes = %q", writes)
	}
	for i := range want {
		if string(writes[i]) != want[i] {
			t.Errorf("write %d = %q, want %q", i, writes[i], want[i])
		}
	}
}

func TestPrintf_ConcurrentCallsDoNotInterleave(t *testing.T) {
	var r registry.Registry
	eng := termtest.New(80, 25)
	install(t, &r, eng)

	const workers, lines = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < lines; i++ {
				Fprintf(&r, "[cpu%d] tick %03d\n", w, i)
			}
		}(w)
	}
	wg.Wait()

	if eng.Overlaps() != 0 {
		t.Fatalf("%d overlapping engine calls", eng.Overlaps())
	}
	writes := eng.Writes()
	if len(writes) != workers*lines {
		t.Fatalf("writes = %d, want %d", len(writes), workers*lines)
	}
	for _, w := range writes {
		if len(w) != len("[cpu0] tick 000\n") || w[0] != '[' || w[len(w)-1] != '\n' {
			t.Fatalf("torn write %q", w)
		}
	}
}

func TestRegistryWriter_AsLogOutput(t *testing.T) {
	var r registry.Registry
	eng := termtest.New(80, 25)
	install(t, &r, eng)

	logger := log.New(RegistryWriter(&r), "kern: ", 0)
	logger.Printf("irq %d unmasked", 9)

	if out := eng.Output(); out != "kern: irq 9 unmasked\n" {
		t.Fatalf("log output %q", out)
	}
}

// Default-backed functions: the first phase runs before anything in this binary installs
func TestDefault_PrintLifecycle(t *testing.T) {
	Printf("dropped %d\n", 1)
	Print("dropped")
	Println("dropped")
	Writer().Write([]byte("dropped"))

	eng := termtest.New(80, 25)
	install(t, &registry.Default, eng)

	Printf("kept %d\n", 2)
	if out := eng.Output(); out != "kept 2\n" {
		t.Fatalf("default output %q", out)
	}
}
