package images

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Thumbnail renders img into w×h terminal cells. Each cell shows two
// vertically stacked pixels using an upper half block with a foreground and a
// background color.
func Thumbnail(img image.Image, w, h int) string {
	if img == nil || w <= 0 || h <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := dst.NRGBAAt(x, 2*y)
			bottom := dst.NRGBAAt(x, 2*y+1)
			fmt.Fprintf(&out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		out.WriteString("\x1b[0m")
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
