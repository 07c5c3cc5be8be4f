package clipboard

import (
	"testing"

	"golang.design/x/clipboard"
)

func TestWriteImageRejectsEmpty(t *testing.T) {
	// Must fail before touching the clipboard at all, so no Init needed.
	if err := WriteImage(nil); err == nil {
		t.Fatal("WriteImage(nil) succeeded, want error")
	}
	if err := WriteImage([]byte{}); err == nil {
		t.Fatal("WriteImage(empty) succeeded, want error")
	}
}

func TestWriteImageReportsFailedWrite(t *testing.T) {
	orig := write
	t.Cleanup(func() { write = orig })

	// A nil channel is how the library reports that the clipboard could
	// not be opened or written.
	write = func(f clipboard.Format, buf []byte) <-chan struct{} { return nil }
	if err := WriteImage([]byte("png")); err == nil {
		t.Fatal("WriteImage succeeded on failed clipboard write, want error")
	}
}

func TestWriteImageSucceeds(t *testing.T) {
	orig := write
	t.Cleanup(func() { write = orig })

	var gotFormat clipboard.Format
	var gotData []byte
	write = func(f clipboard.Format, buf []byte) <-chan struct{} {
		gotFormat = f
		gotData = buf
		return make(chan struct{})
	}
	if err := WriteImage([]byte("png")); err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}
	if gotFormat != clipboard.FmtImage {
		t.Errorf("format = %v, want FmtImage", gotFormat)
	}
	if string(gotData) != "png" {
		t.Errorf("data = %q, want png", gotData)
	}
}
