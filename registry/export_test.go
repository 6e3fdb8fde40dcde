package registry

// resetDefault returns Default to its uninitialized state, tearing down any installed handle.
// Tests only; production code has no global teardown.
func resetDefault() {
	Default.mu.Lock()
	defer Default.mu.Unlock()
	Default.ctx.Close()
	Default.ctx = nil
	Default.initialized = false
}
