//go:build windows

package hotkey

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"snapclip/events"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
	procGetCurrentThreadId = kernel32.NewProc("GetCurrentThreadId")
)

const (
	modAlt      = 0x0001
	modControl  = 0x0002
	modShift    = 0x0004
	modWin      = 0x0008
	modNoRepeat = 0x4000

	wmHotkey = 0x0312
	wmQuit   = 0x0012

	hotkeyID = 1
)

type point struct {
	X int32
	Y int32
}

type pumpMsg struct {
	Hwnd    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

func (c chordSpec) winModifiers() uintptr {
	// MOD_NOREPEAT: holding the chord down fires once, not on auto-repeat.
	mods := uintptr(modNoRepeat)
	if c.ctrl {
		mods |= modControl
	}
	if c.alt {
		mods |= modAlt
	}
	if c.shift {
		mods |= modShift
	}
	if c.win {
		mods |= modWin
	}
	return mods
}

type winBinding struct {
	thread uint32
	done   chan struct{}
	once   sync.Once
}

func (b *winBinding) Close() {
	b.once.Do(func() {
		procPostThreadMessageW.Call(uintptr(b.thread), wmQuit, 0, 0)
		<-b.done
	})
}

type regResult struct {
	tid uint32
	err error
}

// registerPlatform registers the chord against the pump thread's message
// queue (no window needed) and pumps WM_HOTKEY from a locked OS thread.
func registerPlatform(post func(events.Event)) (Binding, error) {
	spec, err := parseChord(Chord)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	vk, _ := virtualKey(spec.key)

	ready := make(chan regResult, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)

		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		tid, _, _ := procGetCurrentThreadId.Call()

		r, _, errno := procRegisterHotKey.Call(0, hotkeyID, spec.winModifiers(), uintptr(vk))
		if r == 0 {
			ready <- regResult{err: fmt.Errorf("%w: RegisterHotKey(%s): %v", ErrUnavailable, Chord, errno)}
			return
		}
		defer procUnregisterHotKey.Call(0, hotkeyID)

		ready <- regResult{tid: uint32(tid)}

		var msg pumpMsg
		for {
			ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
			if int32(ret) <= 0 {
				return
			}
			if msg.Message == wmHotkey && msg.WParam == hotkeyID {
				post(events.Activate{})
			}
		}
	}()

	res := <-ready
	if res.err != nil {
		return nil, res.err
	}
	log.Printf("hotkey: registered %s", Chord)
	return &winBinding{thread: res.tid, done: done}, nil
}
