// Package tray provides the only visible surface of the program: a status
// icon with a version line and an Exit item.
package tray

import (
	"github.com/getlantern/systray"
)

// Run starts the tray and blocks until Quit is called or Exit is clicked.
// onExit runs after the tray has torn down. Must be called from the main
// goroutine on platforms that require it.
func Run(version string, onExit func()) {
	systray.Run(func() { onReady(version) }, onExit)
}

// Quit asks the tray loop to exit, which unblocks Run.
func Quit() {
	systray.Quit()
}

func onReady(version string) {
	systray.SetIcon(iconSVG)
	systray.SetTitle("SnapClip")
	systray.SetTooltip("SnapClip - Alt+Shift+A to capture")

	mVersion := systray.AddMenuItem("SnapClip "+version, "")
	mVersion.Disable()
	systray.AddSeparator()
	mExit := systray.AddMenuItem("Exit", "Quit SnapClip")

	go func() {
		<-mExit.ClickedCh
		systray.Quit()
	}()
}
