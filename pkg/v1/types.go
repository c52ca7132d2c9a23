package v1

// Offset is a window position relative to the center pixel.
type Offset struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Sample is the feature vector of one pixel and its alpha label.
type Sample struct {
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	Features []float32 `json:"features"`
	Label    float32   `json:"label"`
}

// DatasetResult describes a written dataset.
type DatasetResult struct {
	Pairs   int               `json:"pairs"`
	Rows    int               `json:"rows"`
	Width   int               `json:"width"`
	Skipped map[string]string `json:"skipped,omitempty"`
}
