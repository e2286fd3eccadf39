package main

import (
	"strconv"
	"strings"

	"miso/internal/config"
	"miso/internal/options"
)

// renderRunSummary lists the resolved run parameters before the engine starts.
func renderRunSummary(req options.RunRequest) string {
	rows := [][]string{
		{"Annotation", req.AnnotationPath},
		{"Reads", req.ReadsPath},
		{"Output", req.OutputDir},
		{"Read length", strconv.Itoa(req.ReadLen)},
	}
	if req.IsPairedEnd() {
		rows = append(rows, []string{"Paired-end", formatFloat(req.PairedEnd.Mean) + " / " + formatFloat(req.PairedEnd.StdDev)})
	} else {
		rows = append(rows, []string{"Overhang length", strconv.Itoa(req.OverhangLen)})
	}
	if req.EventType != "" {
		rows = append(rows, []string{"Event type", req.EventType})
	}
	mode := "local"
	if req.UseCluster {
		mode = "cluster (" + req.JobName + ")"
		if req.ChunkJobs > 0 {
			mode += ", chunks of " + strconv.Itoa(req.ChunkJobs)
		}
		if req.SGEArray {
			mode += ", SGE array"
		}
	}
	rows = append(rows, []string{"Execution", mode})
	rows = append(rows, []string{"Filter events", yesNo(req.FilterEvents)})
	rows = append(rows, []string{"Prefilter", yesNo(req.Prefilter)})
	if req.NumProcessors > 0 {
		rows = append(rows, []string{"Processors", strconv.Itoa(req.NumProcessors)})
	}
	return renderKeyValueTable("Run", rows)
}

// renderSettings lists every resolved setting with its TOML key.
func renderSettings(path string, exists bool, s *config.Settings) string {
	source := path
	if !exists {
		source += " (defaults)"
	}
	rows := [][]string{
		{"file", source},
		{"engine.command", s.Engine.Command},
		{"engine.timeout_seconds", strconv.Itoa(s.Engine.TimeoutSeconds)},
		{"cluster.submit_command", s.Cluster.SubmitCommand},
		{"cluster.queue", orDash(s.Cluster.Queue)},
		{"cluster.array_submit", strconv.FormatBool(s.Cluster.ArraySubmit)},
		{"sampler.burn_in", strconv.Itoa(s.Sampler.BurnIn)},
		{"sampler.lag", strconv.Itoa(s.Sampler.Lag)},
		{"sampler.num_iters", strconv.Itoa(s.Sampler.NumIters)},
		{"sampler.num_chains", strconv.Itoa(s.Sampler.NumChains)},
		{"sampler.num_processors", strconv.Itoa(s.Sampler.NumProcessors)},
		{"data.filter_results", strconv.FormatBool(s.Data.FilterResults)},
		{"data.min_event_reads", strconv.Itoa(s.Data.MinEventReads)},
		{"data.strand", s.Data.Strand},
		{"logging.format", s.Logging.Format},
		{"logging.level", s.Logging.Level},
	}
	return renderKeyValueTable("Settings", rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
