//go:build windows

package menu

import (
	"bytes"
	"encoding/binary"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/example/appmenu/internal/logging"
)

// icoHeader is an ICONDIR followed by a single ICONDIRENTRY.
type icoHeader struct {
	Reserved   uint16
	Kind       uint16
	Count      uint16
	Width      uint8
	Height     uint8
	Colors     uint8
	Reserved2  uint8
	Planes     uint16
	BitCount   uint16
	BytesInRes uint32
	Offset     uint32
}

// platformNormalizeIcon wraps any decodable image in an ico container, which
// is the only format the Windows notification area loads.
func platformNormalizeIcon(data []byte) []byte {
	if isICO(data) {
		return data
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logging.Debugf("tray icon is not a decodable image: %v", err)
		return nil
	}

	pngData := data
	if format != "png" {
		buf := new(bytes.Buffer)
		if err := png.Encode(buf, img); err != nil {
			logging.Debugf("tray icon png conversion failed: %v", err)
			return nil
		}
		pngData = buf.Bytes()
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil
	}

	header := icoHeader{
		Kind:       1,
		Count:      1,
		Width:      icoDimension(bounds.Dx()),
		Height:     icoDimension(bounds.Dy()),
		Planes:     1,
		BitCount:   32,
		BytesInRes: uint32(len(pngData)),
		Offset:     uint32(binary.Size(icoHeader{})),
	}
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil
	}
	buf.Write(pngData)
	logging.Debugf("tray icon %dx%d wrapped as ico (source %s)", bounds.Dx(), bounds.Dy(), format)
	return buf.Bytes()
}

// icoDimension encodes 256 and larger as zero.
func icoDimension(v int) uint8 {
	if v <= 0 || v >= 256 {
		return 0
	}
	return uint8(v)
}
