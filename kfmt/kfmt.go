// Package kfmt is the formatted print surface for application code.
//
// Every call routes through registry.Default. Before a console is installed, output is dropped:
// nothing is queued, retried or reported, since there is no backing store and possibly no
// channel to report on. Each call reaches the engine as one write, under the registry lock, so
// concurrent prints never interleave.
package kfmt

import (
	"fmt"
	"io"

	"github.com/lixenwraith/fbcon/console"
	"github.com/lixenwraith/fbcon/registry"
)

// Print formats using the default formats and writes to the installed console
func Print(a ...any) {
	Fprint(&registry.Default, a...)
}

// Printf formats according to format and writes to the installed console
func Printf(format string, a ...any) {
	Fprintf(&registry.Default, format, a...)
}

// Println formats using the default formats, appends a newline and writes to the installed console
func Println(a ...any) {
	Fprintln(&registry.Default, a...)
}

// Fprint is Print against an explicit registry
func Fprint(r *registry.Registry, a ...any) {
	r.Do(func(c *console.Context) { fmt.Fprint(c, a...) })
}

// Fprintf is Printf against an explicit registry
func Fprintf(r *registry.Registry, format string, a ...any) {
	r.Do(func(c *console.Context) { fmt.Fprintf(c, format, a...) })
}

// Fprintln is Println against an explicit registry
func Fprintln(r *registry.Registry, a ...any) {
	r.Do(func(c *console.Context) { fmt.Fprintln(c, a...) })
}

// Writer returns an io.Writer onto registry.Default, e.g. for log.New
func Writer() io.Writer {
	return RegistryWriter(&registry.Default)
}

// RegistryWriter returns an io.Writer onto r. Each Write is one locked engine write; it reports
// len(p), nil whether or not a console is installed.
func RegistryWriter(r *registry.Registry) io.Writer {
	return registryWriter{r: r}
}

type registryWriter struct {
	r *registry.Registry
}

func (w registryWriter) Write(p []byte) (int, error) {
	w.r.Do(func(c *console.Context) { c.WriteBytes(p) })
	return len(p), nil
}
