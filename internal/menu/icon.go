package menu

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

const defaultIconSize = 32

// LoadIcon reads a tray icon from path. An empty path yields nil so the
// built-in icon is used.
func LoadIcon(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tray icon: %w", err)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil && !isICO(data) {
		return nil, fmt.Errorf("decode tray icon %s: %w", path, err)
	}
	return data, nil
}

// defaultIcon draws a rounded square with three menu bars.
func defaultIcon() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, defaultIconSize, defaultIconSize))
	fg := color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	for y := 2; y < defaultIconSize-2; y++ {
		for x := 2; x < defaultIconSize-2; x++ {
			corner := (x < 4 || x > defaultIconSize-5) && (y < 4 || y > defaultIconSize-5)
			if corner {
				continue
			}
			border := x < 4 || x > defaultIconSize-5 || y < 4 || y > defaultIconSize-5
			bar := x >= 8 && x < defaultIconSize-8 && (y == 10 || y == 11 || y == 15 || y == 16 || y == 20 || y == 21)
			if border || bar {
				img.SetNRGBA(x, y, fg)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// normalizedIcon converts data into the format the host tray accepts,
// falling back to the built-in icon when it cannot.
func normalizedIcon(data []byte) []byte {
	if len(data) == 0 {
		return defaultIcon()
	}
	normalized := platformNormalizeIcon(data)
	if len(normalized) == 0 {
		return platformNormalizeIcon(defaultIcon())
	}
	return normalized
}

func isICO(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0x01 && data[3] == 0x00
}
