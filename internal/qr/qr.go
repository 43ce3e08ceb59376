// Package qr renders text as PNG QR codes.
//
// Render is the only encoder; FileWriter and the HTTP handler are thin
// adapters over it, so both report failures the same way.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEncoding wraps any failure of the underlying QR encoder.
	ErrEncoding = errors.New("qr: encoding failed")
	// ErrPayloadTooLarge is returned when the text exceeds Config.MaxBytes.
	ErrPayloadTooLarge = errors.New("qr: payload too large")
)

// Config controls symbol sizing and raster output.
type Config struct {
	// Version is the minimum symbol version (1 = 21x21 modules). Longer
	// payloads grow the symbol automatically.
	Version    int
	Level      qrcode.RecoveryLevel
	BoxSize    int // pixels per module
	Border     int // quiet zone, in modules
	Foreground color.Color
	Background color.Color
	// MaxBytes caps the payload length; 0 disables the cap.
	MaxBytes int
}

// DefaultConfig is version 1 with auto-fit, low error correction, 10px modules,
// a 4-module border, black on white.
func DefaultConfig() Config {
	return Config{
		Version:    1,
		Level:      qrcode.Low,
		BoxSize:    10,
		Border:     4,
		Foreground: color.Black,
		Background: color.White,
		MaxBytes:   1024,
	}
}

// Render encodes text and returns the PNG bytes. Every call encodes from scratch.
func Render(text string, cfg Config) ([]byte, error) {
	if cfg.MaxBytes > 0 && len(text) > cfg.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(text), cfg.MaxBytes)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrEncoding)
	}

	code, err := qrcode.New(text, cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if code.VersionNumber < cfg.Version {
		code, err = qrcode.NewWithForcedVersion(text, cfg.Version, cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
		}
	}
	code.DisableBorder = true

	img := rasterize(code.Bitmap(), cfg)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: png: %v", ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

// rasterize paints each dark module as a BoxSize square, offset by the border.
func rasterize(modules [][]bool, cfg Config) *image.Paletted {
	box := cfg.BoxSize
	if box <= 0 {
		box = 1
	}
	border := cfg.Border
	if border < 0 {
		border = 0
	}
	fg, bg := cfg.Foreground, cfg.Background
	if fg == nil {
		fg = color.Black
	}
	if bg == nil {
		bg = color.White
	}

	side := (len(modules) + 2*border) * box
	img := image.NewPaletted(image.Rect(0, 0, side, side), color.Palette{bg, fg})
	// Index 0 (background) is the zero value, so only dark modules are written.
	for y, row := range modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0, y0 := (x+border)*box, (y+border)*box
			for py := y0; py < y0+box; py++ {
				for px := x0; px < x0+box; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}
	return img
}
