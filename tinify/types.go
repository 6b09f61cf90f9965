package tinify

// ShrinkResponse mirrors the JSON body returned by the shrink endpoint.
type ShrinkResponse struct {
	Input  ImageInfo  `json:"input"`
	Output OutputInfo `json:"output"`

	// Set on error responses.
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`

	StatusCode       int `json:"-"`
	CompressionCount int `json:"-"` // from the Compression-Count header, 0 if absent
}

// ImageInfo describes an uploaded image.
type ImageInfo struct {
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// OutputInfo describes the compressed image the API stored.
type OutputInfo struct {
	Size   int64   `json:"size"`
	Type   string  `json:"type"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Ratio  float64 `json:"ratio"`
	URL    string  `json:"url"`
}

// errorResponse mirrors the JSON body of a Tinify error.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
