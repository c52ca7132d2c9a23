package internal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// ImagePair is a color image and its transparency mask.
type ImagePair struct {
	Name      string
	ColorPath string
	MaskPath  string
}

// PairNames maps an image name to its file names, e.g. "1" to bsp1_0.png and
// bsp1_1.png with the default config.
func (c ImagesConfig) PairNames(name string) (color, mask string) {
	return c.Prefix + name + c.ColorSuffix, c.Prefix + name + c.MaskSuffix
}

func (c ImagesConfig) nameOf(file string) (string, bool) {
	if !strings.HasPrefix(file, c.Prefix) || !strings.HasSuffix(file, c.ColorSuffix) {
		return "", false
	}
	name := file[len(c.Prefix) : len(file)-len(c.ColorSuffix)]
	return name, name != ""
}

// PairFor builds the pair for a single image name without touching the
// filesystem. Paths are relative to the image directory.
func PairFor(cfg ImagesConfig, name string) ImagePair {
	color, mask := cfg.PairNames(name)
	return ImagePair{Name: name, ColorPath: color, MaskPath: mask}
}

// PairError records a pair that could not be used.
type PairError struct {
	Pair ImagePair
	Err  error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("pair %s: %v", e.Pair.Name, e.Err)
}

func (e *PairError) Unwrap() error { return e.Err }

// DiscoverPairs lists the color images at the root of fsys, which is the
// image directory, and pairs each with its mask. Pairs without a mask are
// returned as errors and ignored files are dropped silently. Both lists are
// sorted by name.
func DiscoverPairs(fsys billy.Filesystem, cfg ImagesConfig, ignore *IgnoreMatcher) ([]ImagePair, []*PairError, error) {
	entries, err := fsys.ReadDir(".")
	if err != nil {
		return nil, nil, fmt.Errorf("read image dir: %w", err)
	}

	files := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files[e.Name()] = true
		}
	}

	var pairs []ImagePair
	var missing []*PairError
	for file := range files {
		name, ok := cfg.nameOf(file)
		if !ok || ignore.Match(file) {
			continue
		}
		pair := PairFor(cfg, name)
		if !files[pair.MaskPath] {
			missing = append(missing, &PairError{Pair: pair, Err: ErrMissingMask})
			continue
		}
		pairs = append(pairs, pair)
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	sort.Slice(missing, func(i, j int) bool { return missing[i].Pair.Name < missing[j].Pair.Name })
	return pairs, missing, nil
}

// LoadPair loads both images of the pair, validates them against dim and
// slices the mask down to its last (alpha) channel.
func LoadPair(fsys billy.Filesystem, pair ImagePair, dim Dim) (color, mask *Image, err error) {
	color, err = LoadImage(fsys, pair.ColorPath, dim)
	if err != nil {
		return nil, nil, err
	}
	full, err := LoadImage(fsys, pair.MaskPath, dim)
	if err != nil {
		return nil, nil, err
	}
	mask, err = full.Channel(-1)
	if err != nil {
		return nil, nil, err
	}
	return color, mask, nil
}
