package export

const (
	FormatEDL      = "edl"
	FormatChapters = "chapters"
)

// Request describes one export of the current session's segment list.
type Request struct {
	Title     string  `json:"title"`
	Format    string  `json:"format"`
	FrameRate float64 `json:"frame_rate,omitempty"`
	OutputDir string  `json:"output_dir,omitempty"`
}

// Result reports where the export landed.
type Result struct {
	Status       string `json:"status"`
	Format       string `json:"format"`
	OutputPath   string `json:"output_path"`
	SegmentCount int    `json:"segment_count"`
}
