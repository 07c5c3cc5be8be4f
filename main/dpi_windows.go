//go:build windows

package main

import (
	"log"

	"golang.org/x/sys/windows"
)

// applyDPIAwareness opts the process into per-monitor DPI awareness so
// pointer coordinates arrive in physical pixels on scaled displays. Falls
// back to the legacy call on older systems.
func applyDPIAwareness() {
	user32 := windows.NewLazySystemDLL("user32.dll")
	setCtx := user32.NewProc("SetProcessDpiAwarenessContext")
	if setCtx.Find() == nil {
		// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2
		const perMonitorV2 = ^uintptr(3) // (DPI_AWARENESS_CONTEXT)-4
		if r, _, _ := setCtx.Call(perMonitorV2); r != 0 {
			return
		}
	}
	setAware := user32.NewProc("SetProcessDPIAware")
	if setAware.Find() == nil {
		if r, _, _ := setAware.Call(); r == 0 {
			log.Printf("SetProcessDPIAware failed")
		}
	}
}
