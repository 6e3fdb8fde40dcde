package main

import (
	"log"
	"sync"

	"github.com/lixenwraith/fbcon/console"
	"github.com/lixenwraith/fbcon/kfmt"
	"github.com/lixenwraith/fbcon/registry"
)

// workerColors avoids black so every line stays readable on the default background
var workerColors = [...]uint8{1, 2, 3, 4, 5, 6, 9, 10, 11, 12, 13, 14}

// runDemo prints a banner, then has workers print lines concurrently. Each colored line is
// emitted inside one critical section so lines from different workers never interleave.
func runDemo(reg *registry.Registry, workers, lines int) {
	reg.Do(func(c *console.Context) {
		c.Clear()
		cols, rows := c.Dimensions()
		c.SetColor(15, 4)
		c.Printf("fbcon: %d workers x %d lines on a %dx%d console", workers, lines, cols, rows)
		c.ResetFormat()
		c.Println()
	})

	var wg sync.WaitGroup
	for id := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			color := workerColors[id%len(workerColors)]
			for i := range lines {
				reg.Do(func(c *console.Context) {
					c.SetColor(color)
					c.Printf("[worker %2d] line %3d", id, i)
					c.ResetFormat()
					c.Println()
				})
			}
		}()
	}
	wg.Wait()

	// Plain prints take the same lock per call
	kfmt.Fprintln(reg, "done")
	kfmt.Fprint(reg, "\a")
	reg.Do(func(c *console.Context) { c.Flush() })

	log.Printf("demo: %d workers finished %d lines each", workers, lines)
}
