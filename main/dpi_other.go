//go:build !windows

package main

// DPI scaling is handled by the capture backend on non-Windows systems.
func applyDPIAwareness() {}
