package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// EncodeWebP decodes a jpeg/png/webp payload, downscales when larger than
// maxW×maxH (aspect kept) and re-encodes lossy WebP.
func EncodeWebP(raw []byte, filename string, maxW, maxH int) ([]byte, error) {
	img, err := decodeImage(raw, filename)
	if err != nil {
		return nil, err
	}

	if maxW > 0 || maxH > 0 {
		b := img.Bounds()
		if (maxW > 0 && b.Dx() > maxW) || (maxH > 0 && b.Dy() > maxH) {
			img = imaging.Fit(img, maxW, maxH, imaging.CatmullRom)
		}
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeImage sniffs the MIME type and falls back to the file extension.
func decodeImage(raw []byte, filename string) (image.Image, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := raw
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(raw))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(raw))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(raw))
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(raw))
	case ".png":
		return png.Decode(bytes.NewReader(raw))
	case ".webp":
		return webp.Decode(bytes.NewReader(raw))
	}
	return nil, fmt.Errorf("unsupported image format: %s", ct)
}
