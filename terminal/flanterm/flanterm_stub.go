//go:build !(cgo && flanterm)

package flanterm

import "github.com/lixenwraith/fbcon/terminal"

// Init always fails in builds without the flanterm library
func Init(terminal.Framebuffer, *terminal.Options) terminal.Engine {
	return nil
}

// Available reports whether this build links flanterm
func Available() bool { return false }
