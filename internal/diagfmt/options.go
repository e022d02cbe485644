package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures the human-readable report.
type PrettyOpts struct {
	Color      bool
	PathMode   PathMode
	ShowNotes  bool
	NoWarnings bool
	// Quiet drops the per-document banners and summaries, leaving
	// only the diagnostic lines.
	Quiet bool
}

// JSONOpts configures JSON output of batch results.
type JSONOpts struct {
	IncludePositions bool // add line/col to every location
	PathMode         PathMode
	IncludeNotes     bool
}

// JUnitMeta provides suite metadata for the CI test report.
type JUnitMeta struct {
	SuiteName   string
	ToolVersion string
}
