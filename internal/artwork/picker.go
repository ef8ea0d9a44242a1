package artwork

import (
	"image"
	"image/color"
	"strings"

	"github.com/muesli/termenv"
	"github.com/nfnt/resize"
)

// halfBlock paints the top pixel of a cell in the foreground color and the
// bottom pixel in the background color.
const halfBlock = "▀"

// Picker turns images into terminal cells using the color profile detected
// at startup. Each cell carries two vertically stacked pixels.
type Picker struct {
	profile termenv.Profile
	filter  resize.InterpolationFunction

	// last render, reused while the image and area are unchanged
	cached struct {
		img        image.Image
		cols, rows int
		out        string
	}
}

// NewPicker returns a picker for profile, or nil when the profile has no
// colors and images cannot be shown.
func NewPicker(profile termenv.Profile) *Picker {
	if profile == termenv.Ascii {
		return nil
	}
	return &Picker{
		profile: profile,
		filter:  resize.Lanczos3,
	}
}

// DetectPicker queries the terminal's color support.
func DetectPicker() *Picker {
	return NewPicker(termenv.EnvColorProfile())
}

// Profile returns the color profile the picker encodes for.
func (p *Picker) Profile() termenv.Profile {
	return p.profile
}

// Render scales img to fit within cols by rows cells, keeping its aspect
// ratio, and returns the cell rows joined by newlines. The result is cached
// until the image or the area changes.
func (p *Picker) Render(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	c := &p.cached
	if c.img == img && c.cols == cols && c.rows == rows {
		return c.out
	}

	scaled := resize.Thumbnail(uint(cols), uint(rows*2), img, p.filter)
	out := p.encode(scaled)

	c.img, c.cols, c.rows, c.out = img, cols, rows, out
	return out
}

func (p *Picker) encode(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			cell := p.profile.String(halfBlock).Foreground(p.color(img.At(x, y)))
			if y+1 < b.Max.Y {
				cell = cell.Background(p.color(img.At(x, y+1)))
			}
			sb.WriteString(cell.String())
		}
	}
	return sb.String()
}

func (p *Picker) color(c color.Color) termenv.Color {
	// Composite over black so transparent pixels stay dark.
	r, g, b, _ := c.RGBA()
	return p.profile.FromColor(color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff})
}
