package config

import "strings"

func (s *Settings) normalize() {
	s.Engine.Command = strings.TrimSpace(s.Engine.Command)
	if s.Engine.Command == "" {
		s.Engine.Command = defaultEngineCommand
	}
	s.Cluster.SubmitCommand = strings.TrimSpace(s.Cluster.SubmitCommand)
	if s.Cluster.SubmitCommand == "" {
		s.Cluster.SubmitCommand = defaultClusterSubmit
	}
	s.Cluster.Queue = strings.TrimSpace(s.Cluster.Queue)
	s.Data.Strand = strings.ToLower(strings.TrimSpace(s.Data.Strand))
	if s.Data.Strand == "" {
		s.Data.Strand = defaultStrand
	}
	s.normalizeLogging()
}

func (s *Settings) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(s.Logging.Format))
	switch format {
	case "", "console", "text", "pretty":
		format = "console"
	case "json":
	}
	s.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(s.Logging.Level))
	switch level {
	case "":
		level = defaultLogLevel
	case "warning":
		level = "warn"
	}
	s.Logging.Level = level
}
