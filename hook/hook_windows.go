//go:build windows

package hook

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"snapclip/events"
	"snapclip/geometry"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetCurrentThreadId  = kernel32.NewProc("GetCurrentThreadId")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	wmKeyDown     = 0x0100
	wmSysKeyDown  = 0x0104
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmQuit        = 0x0012

	vkEscape = 0x1B
	hcAction = 0
)

type point struct {
	X int32
	Y int32
}

// MSLLHOOKSTRUCT
type mouseHookInfo struct {
	Pt        point
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// KBDLLHOOKSTRUCT
type keyHookInfo struct {
	VkCode    uint32
	ScanCode  uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type pumpMsg struct {
	Hwnd    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

// The hook procedures are registered once per process (NewCallback slots
// cannot be released) and forward through forwardTo, which is non-nil only
// while a chain is installed.
var (
	procOnce     sync.Once
	mouseProcPtr uintptr
	keyProcPtr   uintptr
	forwardMu    sync.Mutex
	forwardTo    func(events.Event)
)

func setForward(post func(events.Event)) {
	forwardMu.Lock()
	forwardTo = post
	forwardMu.Unlock()
}

func forward(ev events.Event) {
	forwardMu.Lock()
	post := forwardTo
	forwardMu.Unlock()
	if post != nil {
		post(ev)
	}
}

// mouseProc runs on the hook thread inside the OS input delivery path. It
// only reads coordinates and posts the mapped event; everything else is
// deferred to the dispatcher.
func mouseProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) == hcAction && lParam != 0 {
		info := (*mouseHookInfo)(unsafe.Pointer(lParam))
		at := geometry.Point{X: int(info.Pt.X), Y: int(info.Pt.Y)}
		switch wParam {
		case wmLButtonDown:
			forward(events.PointerDown{At: at})
		case wmMouseMove:
			forward(events.PointerMove{At: at})
		case wmLButtonUp:
			forward(events.PointerUp{At: at})
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return ret
}

func keyProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) == hcAction && lParam != 0 {
		if wParam == wmKeyDown || wParam == wmSysKeyDown {
			info := (*keyHookInfo)(unsafe.Pointer(lParam))
			if info.VkCode == vkEscape {
				forward(events.CancelKey{})
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return ret
}

type winManager struct {
	mu     sync.Mutex
	active uint64
	nextID uint64
	thread uint32
	done   chan struct{}
}

func newPlatformManager() Manager { return &winManager{} }

type startResult struct {
	tid uint32
	err error
}

func (m *winManager) Start(post func(events.Event)) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != 0 {
		return Handle{}, fmt.Errorf("%w: hook chain already installed", ErrInstallFailed)
	}
	// A previous chain may still be tearing down its pump thread.
	if m.done != nil {
		<-m.done
		m.done = nil
	}

	procOnce.Do(func() {
		mouseProcPtr = windows.NewCallback(mouseProc)
		keyProcPtr = windows.NewCallback(keyProc)
	})

	ready := make(chan startResult, 1)
	done := make(chan struct{})
	go pumpThread(ready, done)

	res := <-ready
	if res.err != nil {
		return Handle{}, res.err
	}

	setForward(post)
	m.nextID++
	m.active = m.nextID
	m.thread = res.tid
	m.done = done
	return Handle{id: m.active}, nil
}

func (m *winManager) Stop(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !h.Installed() || h.id != m.active {
		return
	}
	// Cut forwarding first so no event outlives the session, then ask the
	// pump thread to unhook and exit.
	setForward(nil)
	procPostThreadMessageW.Call(uintptr(m.thread), wmQuit, 0, 0)
	m.active = 0
	m.thread = 0
}

// pumpThread installs the two low-level hooks on a dedicated locked OS
// thread and pumps messages so the OS can deliver hook callbacks. Both
// hooks are removed on every exit path before the thread ends.
func pumpThread(ready chan<- startResult, done chan<- struct{}) {
	defer close(done)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tid, _, _ := procGetCurrentThreadId.Call()

	mouseHook, _, errMouse := procSetWindowsHookExW.Call(whMouseLL, mouseProcPtr, 0, 0)
	if mouseHook == 0 {
		ready <- startResult{err: fmt.Errorf("%w: SetWindowsHookEx(WH_MOUSE_LL): %v", ErrInstallFailed, errMouse)}
		return
	}
	keyHook, _, errKey := procSetWindowsHookExW.Call(whKeyboardLL, keyProcPtr, 0, 0)
	if keyHook == 0 {
		procUnhookWindowsHookEx.Call(mouseHook)
		ready <- startResult{err: fmt.Errorf("%w: SetWindowsHookEx(WH_KEYBOARD_LL): %v", ErrInstallFailed, errKey)}
		return
	}

	ready <- startResult{tid: uint32(tid)}

	var msg pumpMsg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
	}

	if r, _, _ := procUnhookWindowsHookEx.Call(mouseHook); r == 0 {
		log.Printf("hook: UnhookWindowsHookEx(mouse) failed")
	}
	if r, _, _ := procUnhookWindowsHookEx.Call(keyHook); r == 0 {
		log.Printf("hook: UnhookWindowsHookEx(keyboard) failed")
	}
}
