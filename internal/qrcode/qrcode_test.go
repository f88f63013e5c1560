package qrcode

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qr", "page.png")

	got, err := WriteURL("http://192.168.1.10:7860", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Errorf("expected path %q, got %q", path, got)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 256 || bounds.Dy() != 256 {
		t.Errorf("expected 256x256 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestWriteURL_AddsScheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")

	if _, err := WriteURL("192.168.1.10:7860", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
