package text

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"

	"github.com/gogpu/layer2d/internal/logx"
)

// DefaultFontSize is the size given to fonts created without a FontInfo.
const DefaultFontSize = 12

// FontInfo describes a font to look up among the system fonts.
// An empty Family matches any family.
type FontInfo struct {
	Family    string
	Italic    bool
	Oblique   bool
	Bold      bool
	Monospace bool
	Size      float32
}

// DefaultFontInfo returns a regular, proportional FontInfo of size 10.
func DefaultFontInfo() FontInfo {
	return FontInfo{Size: 10}
}

// monospaceHints are family name fragments of common fixed-pitch fonts.
// fontscan footprints carry no pitch information.
var monospaceHints = []string{"mono", "courier", "consol", "menlo", "code", "fixed", "terminal", "typewriter"}

func isMonospace(family string) bool {
	f := strings.ToLower(family)
	for _, h := range monospaceHints {
		if strings.Contains(f, h) {
			return true
		}
	}
	return false
}

// SystemFonts enumerates installed fonts through go-text/typesetting's
// fontscan. The scan runs once, on first use, and its index is cached in
// the cache directory.
type SystemFonts struct {
	cacheDir string

	once       sync.Once
	footprints []fontscan.Footprint
	err        error
}

// NewSystemFonts returns a SystemFonts caching its index in cacheDir.
// An empty cacheDir uses os.UserCacheDir.
func NewSystemFonts(cacheDir string) *SystemFonts {
	return &SystemFonts{cacheDir: cacheDir}
}

func (s *SystemFonts) scan() ([]fontscan.Footprint, error) {
	s.once.Do(func() {
		dir := s.cacheDir
		if dir == "" {
			d, err := os.UserCacheDir()
			if err != nil {
				s.err = fmt.Errorf("text: font cache dir: %w", err)
				return
			}
			dir = d
		}
		fps, err := fontscan.SystemFonts(nil, dir)
		if err != nil {
			s.err = fmt.Errorf("text: scan system fonts: %w", err)
			return
		}
		s.footprints = fps
		logx.Logger().Debug("text: system fonts scanned", "count", len(fps))
	})
	return s.footprints, s.err
}

// QueryAll returns every installed family name, sorted and deduplicated.
func (s *SystemFonts) QueryAll() ([]string, error) {
	fps, err := s.scan()
	if err != nil {
		return nil, err
	}
	return familyNames(fps, nil), nil
}

// QuerySpecific returns the sorted family names with at least one face
// matching info.
func (s *SystemFonts) QuerySpecific(info FontInfo) ([]string, error) {
	fps, err := s.scan()
	if err != nil {
		return nil, err
	}
	return familyNames(fps, func(fp *fontscan.Footprint) bool {
		return matches(fp, info)
	}), nil
}

// Load reads the font file of the best match for info. For font
// collections, index is the position of the face within the file.
func (s *SystemFonts) Load(info FontInfo) (data []byte, index int, err error) {
	fps, err := s.scan()
	if err != nil {
		return nil, 0, err
	}
	fp, ok := bestMatch(fps, info)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %+v", ErrNoFontMatch, info)
	}
	data, err = os.ReadFile(fp.Location.File)
	if err != nil {
		return nil, 0, fmt.Errorf("text: read system font %q: %w", fp.Location.File, err)
	}
	logx.Logger().Info("text: system font loaded", "family", fp.Family, "file", fp.Location.File)
	return data, int(fp.Location.Index), nil
}

// LoadSource is Load followed by NewSourceIndex.
func (s *SystemFonts) LoadSource(info FontInfo) (*Source, error) {
	data, index, err := s.Load(info)
	if err != nil {
		return nil, err
	}
	return NewSourceIndex(data, index)
}

func familyNames(fps []fontscan.Footprint, keep func(*fontscan.Footprint) bool) []string {
	names := make([]string, 0, len(fps))
	for i := range fps {
		if fps[i].Family == "" || (keep != nil && !keep(&fps[i])) {
			continue
		}
		names = append(names, fps[i].Family)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// matches reports whether fp satisfies every attribute set in info.
// Oblique faces are reported by fontscan as italic.
func matches(fp *fontscan.Footprint, info FontInfo) bool {
	if info.Family != "" && !strings.EqualFold(fp.Family, info.Family) {
		return false
	}
	slanted := fp.Aspect.Style == font.StyleItalic
	if (info.Italic || info.Oblique) != slanted {
		return false
	}
	if info.Bold != (fp.Aspect.Weight >= font.WeightBold) {
		return false
	}
	if info.Monospace && !isMonospace(fp.Family) {
		return false
	}
	return true
}

// bestMatch prefers exact attribute matches, then faces closest to the
// requested weight. Ties keep scan order.
func bestMatch(fps []fontscan.Footprint, info FontInfo) (fontscan.Footprint, bool) {
	best := -1
	bestScore := float32(-1)
	for i := range fps {
		fp := &fps[i]
		if info.Family != "" && !strings.EqualFold(fp.Family, info.Family) {
			continue
		}
		if info.Monospace && !isMonospace(fp.Family) {
			continue
		}
		score := float32(0)
		if matches(fp, info) {
			score += 1000
		}
		want := font.WeightNormal
		if info.Bold {
			want = font.WeightBold
		}
		d := float32(fp.Aspect.Weight - want)
		if d < 0 {
			d = -d
		}
		score += 900 - d
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return fontscan.Footprint{}, false
	}
	return fps[best], true
}
