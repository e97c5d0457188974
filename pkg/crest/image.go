package crest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"

	"github.com/richard-senior/leaguestats/pkg/transport"
)

// Image describes a fetched crest. Width and Height are zero when they cannot be read.
type Image struct {
	URL    string `json:"url"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Inspect downloads the image at u and reads its format and size from the content.
func Inspect(u string) (Image, error) {
	doc, err := transport.Get(u, "image/*")
	if err != nil {
		return Image{}, err
	}
	format, w, h, err := Sniff(doc.Body)
	if err != nil {
		return Image{}, fmt.Errorf("%s: %w", u, err)
	}
	return Image{URL: u, Format: format, Width: w, Height: h}, nil
}

// Sniff identifies png, gif, jpg, webp and svg content by signature.
func Sniff(b []byte) (string, int, int, error) {
	switch {
	case len(b) >= 24 && bytes.HasPrefix(b, []byte("\x89PNG")):
		return "png", int(binary.BigEndian.Uint32(b[16:20])), int(binary.BigEndian.Uint32(b[20:24])), nil
	case len(b) >= 10 && bytes.HasPrefix(b, []byte("GIF8")):
		return "gif", int(binary.LittleEndian.Uint16(b[6:8])), int(binary.LittleEndian.Uint16(b[8:10])), nil
	case len(b) >= 3 && bytes.HasPrefix(b, []byte{0xFF, 0xD8, 0xFF}):
		w, h := jpegSize(b)
		return "jpg", w, h, nil
	case len(b) >= 16 && bytes.HasPrefix(b, []byte("RIFF")) && string(b[8:12]) == "WEBP":
		w, h := webpSize(b)
		return "webp", w, h, nil
	case bytes.Contains(b, []byte("<svg")):
		w, h := svgSize(b)
		return "svg", w, h, nil
	}
	return "", 0, 0, fmt.Errorf("not a recognised image")
}

// jpegSize walks the segments up to the first SOF0-SOF2 marker.
func jpegSize(b []byte) (int, int) {
	i := 2
	for i+9 < len(b) {
		if b[i] != 0xFF {
			i++
			continue
		}
		marker := b[i+1]
		if marker >= 0xC0 && marker <= 0xC2 {
			return int(binary.BigEndian.Uint16(b[i+7 : i+9])), int(binary.BigEndian.Uint16(b[i+5 : i+7]))
		}
		i += 2 + int(binary.BigEndian.Uint16(b[i+2:i+4]))
	}
	return 0, 0
}

func webpSize(b []byte) (int, int) {
	switch string(b[12:16]) {
	case "VP8 ":
		if len(b) >= 30 {
			return int(binary.LittleEndian.Uint16(b[26:28]) & 0x3FFF), int(binary.LittleEndian.Uint16(b[28:30]) & 0x3FFF)
		}
	case "VP8L":
		if len(b) >= 25 {
			bits := binary.LittleEndian.Uint32(b[21:25])
			return int(bits&0x3FFF) + 1, int((bits>>14)&0x3FFF) + 1
		}
	}
	return 0, 0
}

var (
	svgWidth   = regexp.MustCompile(`<svg[^>]*\swidth\s*=\s*["']([0-9.]+)(?:px)?["']`)
	svgHeight  = regexp.MustCompile(`<svg[^>]*\sheight\s*=\s*["']([0-9.]+)(?:px)?["']`)
	svgViewBox = regexp.MustCompile(`viewBox\s*=\s*["'][-0-9.]+[\s,]+[-0-9.]+[\s,]+([0-9.]+)[\s,]+([0-9.]+)["']`)
)

// svgSize reads pixel width and height attributes, falling back to the viewBox.
func svgSize(b []byte) (int, int) {
	w, h := attr(svgWidth, b), attr(svgHeight, b)
	if w == 0 || h == 0 {
		if m := svgViewBox.FindSubmatch(b); m != nil {
			if w == 0 {
				w = atoi(m[1])
			}
			if h == 0 {
				h = atoi(m[2])
			}
		}
	}
	return w, h
}

func attr(re *regexp.Regexp, b []byte) int {
	if m := re.FindSubmatch(b); m != nil {
		return atoi(m[1])
	}
	return 0
}

func atoi(b []byte) int {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0
	}
	return int(f)
}
