package tui

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"pictriage/internal/imgproc"
	"pictriage/internal/scan"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

// renderPreview draws path as half-block cells, two pixels per terminal row,
// downscaled to fit maxW x maxH cells. RAW files have no in-process decoder
// and get a placeholder, same as any file that fails to decode mid-session.
func renderPreview(path string, rotation, maxW, maxH int) string {
	if maxW < 4 || maxH < 2 {
		return ""
	}

	if scan.IsRaw(path) {
		return fmt.Sprintf("RAW file detected: %s\nPreview not available", filepath.Base(path))
	}

	img, err := imgproc.Decode(path)
	if err != nil {
		return fmt.Sprintf("Error loading image: %v", err)
	}
	if rotation != 0 {
		img = imgproc.Rotate(img, rotation)
	}

	img = resize.Thumbnail(uint(maxW), uint(maxH*2), img, resize.Bilinear)
	return renderHalfBlocks(img)
}

// renderHalfBlocks maps vertical pixel pairs onto "▀" cells, the top pixel
// as foreground and the bottom as background.
func renderHalfBlocks(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(cellColor(img, x, y))
			if y+1 < b.Max.Y {
				style = style.Background(cellColor(img, x, y+1))
			}
			sb.WriteString(style.Render("▀"))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func cellColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}
