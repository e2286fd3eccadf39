package options

// DefaultJobName is used for cluster jobs when --job-name is not given.
const DefaultJobName = "misojob"

// DefaultOverhangLen applies when --overhang-len is absent or overridden.
const DefaultOverhangLen = 1

// PairedEnd holds the insert length distribution of a paired-end library.
type PairedEnd struct {
	Mean   float64
	StdDev float64
}

// RunRequest is the resolved configuration for one quantification run.
// ReadLen is always positive and OutputDir is always absolute.
type RunRequest struct {
	RunID          string
	AnnotationPath string
	ReadsPath      string
	OutputDir      string
	SettingsPath   string
	ReadLen        int
	OverhangLen    int
	PairedEnd      *PairedEnd
	UseCluster     bool
	// ChunkJobs is zero unless job chunking was requested.
	ChunkJobs int
	SGEArray  bool
	JobName   string
	EventType string
	// FilterEvents is true unless --no-filter-events was given.
	FilterEvents bool
	Prefilter    bool
	// NumProcessors is zero when -p was not given.
	NumProcessors int
}

// IsPairedEnd reports whether paired-end parameters were supplied.
func (r RunRequest) IsPairedEnd() bool {
	return r.PairedEnd != nil
}

// ViewRequest names an indexed annotation artifact to inspect.
type ViewRequest struct {
	Path string
}

// Warning is a non-fatal adjustment made while resolving options.
type Warning struct {
	EventType string
	Message   string
	Impact    string
}

// Plan lists the modes to dispatch. A nil request means the mode was not
// requested.
type Plan struct {
	Run      *RunRequest
	View     *ViewRequest
	Warnings []Warning
}

// Empty reports whether neither mode was requested.
func (p Plan) Empty() bool {
	return p.Run == nil && p.View == nil
}
