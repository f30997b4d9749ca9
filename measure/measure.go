// Package measure provides pixel-space text measurement with word wrapping.
//
// Measurement uses real font metrics from the bundled Go fonts when a face
// can be constructed, and falls back to a per-character width estimate in
// environments where it cannot. Both paths are deterministic: identical
// inputs always produce identical metrics.
package measure

import (
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight selects the font weight used for measurement and rendering.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Options controls a single measurement.
type Options struct {
	Size   float64 // font size in pixels; defaults to 14
	Family string  // advisory only; the bundled Go fonts are always used
	Weight Weight
	// MaxWidth, when positive, wraps text at word boundaries so no line
	// exceeds this many pixels. A single word wider than MaxWidth still
	// occupies its own line; words are never hyphenated.
	MaxWidth int
	// Estimate forces the per-character width estimate even when a real
	// font face is available. Useful for deterministic headless output.
	Estimate bool
}

// Metrics is the result of measuring a string.
type Metrics struct {
	Width  int      // widest rendered line, rounded up
	Height int      // lineCount * size * lineHeight, rounded up
	Lines  []string // the wrapped lines, in order
}

const (
	// DefaultSize is the font size used when Options.Size is zero.
	DefaultSize = 14

	// lineHeight is the standard line-height multiplier.
	lineHeight = 1.2

	// estimateFactor approximates average glyph width as a fraction of the
	// font size when no face is available.
	estimateFactor = 0.6
)

var (
	fontOnce    sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font

	faceMu sync.Mutex
	faces  = map[faceKey]font.Face{}
)

type faceKey struct {
	size   float64
	weight Weight
}

func loadFonts() {
	// Parse errors leave the fonts nil; measurement then degrades to the
	// estimate rather than failing.
	if f, err := truetype.Parse(goregular.TTF); err == nil {
		regularFont = f
	}
	if f, err := truetype.Parse(gobold.TTF); err == nil {
		boldFont = f
	}
}

// Face returns a cached font face for the given size and weight, or nil when
// no face can be constructed. Faces returned here are shared; they must not
// be used concurrently with measurement on other goroutines.
func Face(size float64, weight Weight) font.Face {
	if size <= 0 {
		size = DefaultSize
	}
	fontOnce.Do(loadFonts)

	f := regularFont
	if weight == Bold && boldFont != nil {
		f = boldFont
	}
	if f == nil {
		return nil
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	key := faceKey{size: size, weight: weight}
	if face, ok := faces[key]; ok {
		return face
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faces[key] = face
	return face
}

// StringWidth returns the rendered pixel width of s at the given size.
func StringWidth(s string, opts Options) float64 {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if !opts.Estimate {
		if face := Face(opts.Size, opts.Weight); face != nil {
			faceMu.Lock()
			adv := font.MeasureString(face, s)
			faceMu.Unlock()
			return float64(adv) / 64
		}
	}
	return float64(utf8.RuneCountInString(s)) * opts.Size * estimateFactor
}

// Text measures s, wrapping at word boundaries when opts.MaxWidth is set.
// It never fails: missing rendering capability degrades to an estimated
// character width rather than an error.
func Text(s string, opts Options) Metrics {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}

	var lines []string
	if opts.MaxWidth > 0 {
		lines = wrap(s, opts)
	} else {
		lines = strings.Split(s, "\n")
	}

	widest := 0.0
	for _, line := range lines {
		if w := StringWidth(line, opts); w > widest {
			widest = w
		}
	}

	return Metrics{
		Width:  int(math.Ceil(widest)),
		Height: int(math.Ceil(float64(len(lines)) * opts.Size * lineHeight)),
		Lines:  lines,
	}
}

// wrap packs words greedily: a word joins the current line unless the line
// would then exceed MaxWidth in rendered pixels.
func wrap(s string, opts Options) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	maxWidth := float64(opts.MaxWidth)
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if StringWidth(candidate, opts) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
