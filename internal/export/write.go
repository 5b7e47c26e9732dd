package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/decision-labs/contour/internal/contour"
)

var ErrNoFrames = errors.New("export: no frames")

// Format is an output encoding chosen by file extension.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatGIF Format = "gif"
)

// FormatFor picks the encoding from a path's extension.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "gif":
		return FormatGIF, nil
	default:
		return "", fmt.Errorf("export: unsupported format %q", ext)
	}
}

// WritePNG encodes one rasterized frame.
func WritePNG(w io.Writer, f contour.Frame, bg color.Color) error {
	return png.Encode(w, Rasterize(f, bg))
}

// WriteGIF encodes frames as a looping animation. delay is in hundredths of a second.
func WriteGIF(w io.Writer, frames []contour.Frame, bg color.Color, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if bg == nil {
		bg = DefaultBackground
	}
	pal := Palette(frames[0], bg)

	anim := &gif.GIF{
		Image: make([]*image.Paletted, len(frames)),
		Delay: make([]int, len(frames)),
	}
	parallelFor(len(frames), 1, func(start, end int) {
		for i := start; i < end; i++ {
			src := Rasterize(frames[i], bg)
			dst := image.NewPaletted(src.Bounds(), pal)
			draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})
			anim.Image[i] = dst
			anim.Delay[i] = delay
		}
	})
	return gif.EncodeAll(w, anim)
}

// Palette ramps from the background to each distinct stroke colour in f.
func Palette(f contour.Frame, bg color.Color) color.Palette {
	var strokes []color.RGBA
	seen := map[color.RGBA]bool{}
	for _, l := range f.Layers {
		c := color.RGBA{R: l.Style.R, G: l.Style.G, B: l.Style.B, A: 0xff}
		if !seen[c] {
			seen[c] = true
			strokes = append(strokes, c)
		}
	}

	br, bgc, bb, _ := bg.RGBA()
	base := color.RGBA{R: uint8(br >> 8), G: uint8(bgc >> 8), B: uint8(bb >> 8), A: 0xff}
	pal := color.Palette{base}
	if len(strokes) == 0 {
		return pal
	}

	steps := 255 / len(strokes)
	for _, c := range strokes {
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps)
			pal = append(pal, color.RGBA{
				R: mix(base.R, c.R, t),
				G: mix(base.G, c.G, t),
				B: mix(base.B, c.B, t),
				A: 0xff,
			})
		}
	}
	return pal
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// WriteFile writes f to path in the format its extension names.
func WriteFile(path string, f contour.Frame, bg color.Color) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if format == FormatGIF {
		return WriteAnimation(path, []contour.Frame{f}, bg, 0)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer out.Close()

	switch format {
	case FormatSVG:
		_, err = io.WriteString(out, SegmentsToSVG(f, hexColor(bg)))
	case FormatPNG:
		err = WritePNG(out, f, bg)
	}
	if err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return out.Close()
}

// WriteAnimation writes frames as a GIF at path.
func WriteAnimation(path string, frames []contour.Frame, bg color.Color, delay int) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer out.Close()

	if err := WriteGIF(out, frames, bg, delay); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return out.Close()
}

func hexColor(c color.Color) string {
	if c == nil {
		c = DefaultBackground
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
