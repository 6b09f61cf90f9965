package tinifycli

// ImageFile is a candidate image in the working directory.
type ImageFile struct {
	Name string
	Size int64
}

// Result describes what happened to a single image.
type Result struct {
	Name           string
	OutputName     string
	OriginalSize   int64
	CompressedSize int64
	Skipped        bool  // the API returned no result URL
	Err            error // download or write failure, nil on success
}

// Ratio returns the compressed size as a percentage of the original size.
func (r Result) Ratio() float64 {
	return Ratio(r.CompressedSize, r.OriginalSize)
}

// Summary tallies the results of a run.
type Summary struct {
	Compressed      int
	Skipped         int
	Failed          int
	OriginalBytes   int64
	CompressedBytes int64
}

// Total returns the number of images the run looked at.
func (s Summary) Total() int {
	return s.Compressed + s.Skipped + s.Failed
}

// Saved returns the bytes saved across all compressed images.
func (s Summary) Saved() int64 {
	return s.OriginalBytes - s.CompressedBytes
}

func (s *Summary) add(r Result) {
	switch {
	case r.Skipped:
		s.Skipped++
	case r.Err != nil:
		s.Failed++
	default:
		s.Compressed++
		s.OriginalBytes += r.OriginalSize
		s.CompressedBytes += r.CompressedSize
	}
}
