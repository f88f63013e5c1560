// Package qrcode renders the server URL as a QR code image so a phone can
// open the command page by scanning it.
package qrcode

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// WriteURL encodes url as a QR code PNG at path and returns the final path.
// The parent directory is created if needed.
func WriteURL(url, path string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}

	code, err := qr.Encode(url, qr.L, qr.Auto)
	if err != nil {
		return "", err
	}

	scaled, err := barcode.Scale(code, 256, 256)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, scaled); err != nil {
		return "", err
	}

	return path, nil
}
