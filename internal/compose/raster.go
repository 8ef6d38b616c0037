package compose

import (
	"image"
	"image/color"
)

// Composite draws one output frame: it crops/scales the decoded source
// frame through xform and overlays the vector cursor silhouette as a
// filled circle with a contrasting ring, anchored at its tip, hotspot
// at the top-left of the shape's bounding box. This is a simplified
// stand-in for the real 72:110 SVG cursor asset; CursorSVGAspect
// records the real asset's aspect so a real renderer swap-in has
// something to conform to; the shape drawn here is not itself that
// asset.
func Composite(src []byte, srcW, srcH int, xform Transform, cursorPlacement CursorPlacement, outW, outH int) []byte {
	srcImg := &image.RGBA{Pix: src, Stride: srcW * 4, Rect: image.Rect(0, 0, srcW, srcH)}
	out := image.NewRGBA(image.Rect(0, 0, outW, outH))

	for oy := 0; oy < outH; oy++ {
		for ox := 0; ox < outW; ox++ {
			// Invert the frame transform: source pixel = (frame pixel -
			// translate) / (scale*frameSize).
			nx := (float64(ox) - xform.TranslateX) / (xform.Scale * float64(outW))
			ny := (float64(oy) - xform.TranslateY) / (xform.Scale * float64(outH))
			if nx < 0 || nx >= 1 || ny < 0 || ny >= 1 {
				continue
			}
			sx := int(nx * float64(srcW))
			sy := int(ny * float64(srcH))
			if sx < 0 || sx >= srcW || sy < 0 || sy >= srcH {
				continue
			}
			out.Set(ox, oy, srcImg.At(sx, sy))
		}
	}

	drawCursor(out, cursorPlacement)
	return out.Pix
}

func drawCursor(img *image.RGBA, c CursorPlacement) {
	if c.SizePx <= 0 {
		return
	}
	h := c.SizePx
	w := h * CursorSVGAspect
	radius := w / 2
	// Hotspot sits at the tip (top-left of the bounding box), not the
	// shape's own center, matching the SVG contract.
	centerX := c.X + radius
	centerY := c.Y + radius

	bounds := img.Bounds()
	for dy := -radius; dy <= h-radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			dist2 := dx*dx + dy*dy
			if dist2 > radius*radius {
				continue
			}
			px := int(centerX + dx)
			py := int(centerY + dy)
			if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
				continue
			}
			fill := color.RGBA{0, 0, 0, 255}
			if dist2 > (radius-1.5)*(radius-1.5) {
				fill = color.RGBA{255, 255, 255, 255}
			}
			img.Set(px, py, fill)
		}
	}
}
