package options

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"miso/internal/config"
)

// Resolve validates opts and builds the requests for every requested mode.
// settingsPath is the already resolved settings file, forwarded to the
// engine. Validation for both modes completes before a Plan is returned.
func Resolve(opts Options, settingsPath string) (Plan, error) {
	return resolver{newID: uuid.NewString}.resolve(opts, settingsPath)
}

type resolver struct {
	newID func() string
}

func (r resolver) resolve(opts Options, settingsPath string) (Plan, error) {
	var plan Plan

	if err := checkClusterOptions(opts); err != nil {
		return Plan{}, err
	}

	if opts.RunRequested() {
		req, warnings, err := r.resolveRun(opts, settingsPath)
		if err != nil {
			return Plan{}, err
		}
		plan.Run = req
		plan.Warnings = append(plan.Warnings, warnings...)
	}

	if opts.ViewRequested() {
		path, err := config.ExpandPath(strings.TrimSpace(opts.ViewGene))
		if err != nil {
			return Plan{}, fmt.Errorf("--view-gene: %w", err)
		}
		plan.View = &ViewRequest{Path: path}
	}

	return plan, nil
}

func checkClusterOptions(opts Options) error {
	if opts.ChunkJobs != nil && !opts.UseCluster {
		return invalid(RuleChunkJobsRequiresCluster,
			"chunking jobs (--chunk-jobs) only applies when using the --use-cluster option to run jobs on a cluster")
	}
	if opts.SGEArray && !opts.UseCluster {
		return invalid(RuleSGEArrayRequiresCluster,
			"--SGEarray only applies when using the --use-cluster option to run jobs on a cluster")
	}
	if opts.ChunkJobs != nil && *opts.ChunkJobs <= 0 {
		return invalid(RuleInvalidValue, fmt.Sprintf("--chunk-jobs must be a positive integer, got %d", *opts.ChunkJobs))
	}
	return nil
}

func (r resolver) resolveRun(opts Options, settingsPath string) (*RunRequest, []Warning, error) {
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, nil, invalid(RuleOutputDirRequired, "need --output-dir to run")
	}
	if opts.ReadLen == nil {
		return nil, nil, invalid(RuleReadLenRequired, "need --read-len to run")
	}
	if *opts.ReadLen <= 0 {
		return nil, nil, invalid(RuleInvalidValue, fmt.Sprintf("--read-len must be a positive integer, got %d", *opts.ReadLen))
	}
	if len(opts.Run) != 2 {
		return nil, nil, invalid(RuleInvalidArity, fmt.Sprintf("--run takes an annotation directory and a read file, got %d value(s)", len(opts.Run)))
	}

	pairedEnd, err := parsePairedEnd(opts.PairedEnd)
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	overhang := DefaultOverhangLen
	switch {
	case pairedEnd != nil && opts.OverhangLen != nil:
		warnings = append(warnings, Warning{
			EventType: "overhang_ignored",
			Message:   "cannot use --overhang-len with --paired-end",
			Impact:    fmt.Sprintf("using overhang length %d", DefaultOverhangLen),
		})
	case opts.OverhangLen != nil:
		if *opts.OverhangLen <= 0 {
			return nil, nil, invalid(RuleInvalidValue, fmt.Sprintf("--overhang-len must be a positive integer, got %d", *opts.OverhangLen))
		}
		overhang = *opts.OverhangLen
	}

	numProc := 0
	if opts.NumProcessors != nil {
		if *opts.NumProcessors <= 0 {
			return nil, nil, invalid(RuleInvalidValue, fmt.Sprintf("-p must be a positive integer, got %d", *opts.NumProcessors))
		}
		numProc = *opts.NumProcessors
	}

	chunk := 0
	if opts.ChunkJobs != nil {
		chunk = *opts.ChunkJobs
	}

	jobName := strings.TrimSpace(opts.JobName)
	if jobName == "" {
		jobName = DefaultJobName
	}

	eventType := CanonicalEventType(opts.EventType)
	if eventType != "" && !IsKnownEventType(eventType) {
		warnings = append(warnings, Warning{
			EventType: "unknown_event_type",
			Message:   fmt.Sprintf("event type %q is not a known event type", eventType),
			Impact:    "the engine may find no events of this type",
		})
	}

	paths := []struct {
		flag string
		raw  string
	}{
		{"--run annotation directory", opts.Run[0]},
		{"--run read file", opts.Run[1]},
		{"--output-dir", opts.OutputDir},
	}
	expanded := make([]string, len(paths))
	for i, p := range paths {
		trimmed := strings.TrimSpace(p.raw)
		if trimmed == "" {
			return nil, nil, invalid(RuleInvalidValue, p.flag+" must not be empty")
		}
		abs, err := config.ExpandPath(trimmed)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", p.flag, err)
		}
		expanded[i] = abs
	}

	req := &RunRequest{
		RunID:          r.newID(),
		AnnotationPath: expanded[0],
		ReadsPath:      expanded[1],
		OutputDir:      expanded[2],
		SettingsPath:   settingsPath,
		ReadLen:        *opts.ReadLen,
		OverhangLen:    overhang,
		PairedEnd:      pairedEnd,
		UseCluster:     opts.UseCluster,
		ChunkJobs:      chunk,
		SGEArray:       opts.SGEArray,
		JobName:        jobName,
		EventType:      eventType,
		FilterEvents:   !opts.NoFilterEvents,
		Prefilter:      opts.Prefilter,
		NumProcessors:  numProc,
	}
	return req, warnings, nil
}

func parsePairedEnd(values []string) (*PairedEnd, error) {
	if values == nil {
		return nil, nil
	}
	if len(values) != 2 {
		return nil, invalid(RuleInvalidArity, fmt.Sprintf("--paired-end takes a mean and a standard deviation, got %d value(s)", len(values)))
	}
	mean, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64)
	if err != nil {
		return nil, invalid(RuleInvalidValue, fmt.Sprintf("--paired-end mean %q is not a number", values[0]))
	}
	sd, err := strconv.ParseFloat(strings.TrimSpace(values[1]), 64)
	if err != nil {
		return nil, invalid(RuleInvalidValue, fmt.Sprintf("--paired-end standard deviation %q is not a number", values[1]))
	}
	if !isFinite(mean) {
		return nil, invalid(RuleInvalidValue, fmt.Sprintf("--paired-end mean %q is not a finite number", values[0]))
	}
	if !isFinite(sd) {
		return nil, invalid(RuleInvalidValue, fmt.Sprintf("--paired-end standard deviation %q is not a finite number", values[1]))
	}
	if mean <= 0 {
		return nil, invalid(RuleInvalidValue, fmt.Sprintf("--paired-end mean must be positive, got %g", mean))
	}
	if sd < 0 {
		return nil, invalid(RuleInvalidValue, fmt.Sprintf("--paired-end standard deviation must not be negative, got %g", sd))
	}
	return &PairedEnd{Mean: mean, StdDev: sd}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
