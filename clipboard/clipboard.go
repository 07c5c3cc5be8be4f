package clipboard

import (
	"errors"
	"sync"

	"golang.design/x/clipboard"
)

var writeMu sync.Mutex

// write is the library call; replaced in tests.
var write = clipboard.Write

// Init acquires access to the system clipboard. Called once at startup;
// failure is fatal since publishing captures is the tool's only output.
func Init() error {
	return clipboard.Init()
}

// WriteImage publishes an encoded PNG as the sole clipboard content.
// The write is mutex-guarded to prevent corruption under parallel writes,
// and nothing is written unless a complete image is in hand - a failed
// capture never touches the clipboard.
func WriteImage(png []byte) error {
	if len(png) == 0 {
		return errors.New("refusing to write empty image to clipboard")
	}
	writeMu.Lock()
	defer writeMu.Unlock()
	// The library reports a failed write (clipboard unopenable or owned
	// by another process) with a nil channel.
	if ch := write(clipboard.FmtImage, png); ch == nil {
		return errors.New("clipboard write failed")
	}
	return nil
}
