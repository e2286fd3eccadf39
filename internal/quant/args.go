package quant

import (
	"strconv"

	"miso/internal/options"
)

// BuildArgs returns the engine command line for req. Optional flags are only
// emitted when they change the engine's defaults.
func BuildArgs(req options.RunRequest) []string {
	args := []string{
		"--compute-genes-psi", req.AnnotationPath, req.ReadsPath,
		"--read-len", strconv.Itoa(req.ReadLen),
		"--overhang-len", strconv.Itoa(req.OverhangLen),
		"--output-dir", req.OutputDir,
	}
	if req.SettingsPath != "" {
		args = append(args, "--settings-filename", req.SettingsPath)
	}
	if req.PairedEnd != nil {
		args = append(args, "--paired-end",
			strconv.FormatFloat(req.PairedEnd.Mean, 'f', -1, 64),
			strconv.FormatFloat(req.PairedEnd.StdDev, 'f', -1, 64))
	}
	if req.EventType != "" {
		args = append(args, "--event-type", req.EventType)
	}
	if req.UseCluster {
		args = append(args, "--use-cluster", "--job-name", req.JobName)
		if req.ChunkJobs > 0 {
			args = append(args, "--chunk-jobs", strconv.Itoa(req.ChunkJobs))
		}
		if req.SGEArray {
			args = append(args, "--SGEarray")
		}
	}
	if !req.FilterEvents {
		args = append(args, "--no-filter-events")
	}
	if req.Prefilter {
		args = append(args, "--prefilter")
	}
	if req.NumProcessors > 0 {
		args = append(args, "-p", strconv.Itoa(req.NumProcessors))
	}
	return args
}
