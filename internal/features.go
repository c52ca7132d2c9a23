package internal

// FeatureLen is the length of a feature vector built from offsets over an
// image with the given channel count.
func FeatureLen(channels int, offsets []Coord) int {
	return channels * len(offsets)
}

// ExtractFeatures concatenates the channel values of center+offset for every
// offset, in order. center+offset must lie inside img for every offset; no
// bounds check is made beyond the one the runtime does on slice access.
func ExtractFeatures(img *Image, center Coord, offsets []Coord) []float32 {
	dst := make([]float32, FeatureLen(img.Channels, offsets))
	ExtractFeaturesInto(dst, img, center, offsets)
	return dst
}

// ExtractFeaturesInto writes the feature vector into dst, which must hold at
// least FeatureLen(img.Channels, offsets) values, and returns the number of
// values written.
func ExtractFeaturesInto(dst []float32, img *Image, center Coord, offsets []Coord) int {
	n := 0
	ch := img.Channels
	for _, off := range offsets {
		i := ((center.Row+off.Row)*img.Cols + center.Col + off.Col) * ch
		n += copy(dst[n:n+ch], img.Pix[i:i+ch])
	}
	return n
}
