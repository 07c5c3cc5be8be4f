package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"snapclip/clipboard"
	"snapclip/config"
	"snapclip/eventloop"
	"snapclip/hotkey"
	"snapclip/logutil"
	"snapclip/screenshot"
	"snapclip/tray"
)

const version = "1.0.0"

// Bound port doubles as the single-instance lock; a second copy fails the
// bind and exits quietly.
const instancePort = 53789

func main() {
	// The tray loop must own the main OS thread.
	runtime.LockOSThread()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logutil.Setup(cfg.EnableFileLogging)

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", instancePort))
	if err != nil {
		log.Printf("Another instance is already running, exiting")
		return
	}
	defer ln.Close()

	applyDPIAwareness()

	if err := clipboard.Init(); err != nil {
		log.Printf("Failed to initialize clipboard: %v", err)
		os.Exit(1)
	}

	if bounds, err := screenshot.VirtualBounds(); err == nil {
		log.Printf("Virtual screen: %v", bounds)
	} else {
		log.Printf("Could not determine virtual screen bounds: %v", err)
	}

	loop := eventloop.New(time.Duration(cfg.CaptureDeadlineSec)*time.Second, cfg.MinSelectionPx)
	if err := loop.StartHotkey(); err != nil {
		if errors.Is(err, hotkey.ErrUnavailable) {
			fmt.Fprintf(os.Stderr, "snapclip: hotkey %s is unavailable (already registered by another program?)\n", hotkey.Chord)
		} else {
			fmt.Fprintf(os.Stderr, "snapclip: %v\n", err)
		}
		os.Exit(1)
	}
	log.Printf("SnapClip %s ready, capture chord %s", version, hotkey.Chord)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("Shutting down due to signal...")
		cancel()
	}()

	if cfg.Autotest {
		go func() {
			time.Sleep(2 * time.Second)
			log.Printf("Autotest mode: exiting")
			cancel()
		}()
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Event loop stopped: %v", err)
		}
		tray.Quit()
	}()

	tray.Run(version, func() {
		log.Printf("Exit requested from tray")
		cancel()
	})

	<-loopDone
	log.Printf("SnapClip exited")
}
