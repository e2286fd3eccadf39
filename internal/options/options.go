package options

import (
	"strings"

	"golang.org/x/text/cases"
)

// Options holds raw flag values as parsed from the command line. Pointer
// fields are nil when the flag was not given.
type Options struct {
	// Run holds the annotation directory and read file given to --run.
	Run            []string
	ViewGene       string
	EventType      string
	UseCluster     bool
	ChunkJobs      *int
	NoFilterEvents bool
	ReadLen        *int
	// PairedEnd holds the raw mean and standard deviation given to --paired-end.
	PairedEnd     []string
	OverhangLen   *int
	OutputDir     string
	JobName       string
	SGEArray      bool
	Prefilter     bool
	NumProcessors *int
}

// RunRequested reports whether the quantification trigger was supplied.
func (o Options) RunRequested() bool {
	return o.Run != nil
}

// ViewRequested reports whether the inspection trigger was supplied.
func (o Options) ViewRequested() bool {
	return strings.TrimSpace(o.ViewGene) != ""
}

// EventTypes lists the alternative event types known to the indexer.
var EventTypes = []string{"SE", "RI", "A3SS", "A5SS", "MXE", "AFE", "ALE", "TandemUTR"}

// CanonicalEventType matches name case-insensitively against EventTypes and
// returns the canonical spelling. Unknown names are returned trimmed.
func CanonicalEventType(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	key := cases.Fold().String(trimmed)
	for _, known := range EventTypes {
		if cases.Fold().String(known) == key {
			return known
		}
	}
	return trimmed
}

// IsKnownEventType reports whether name canonicalizes to a known event type.
func IsKnownEventType(name string) bool {
	canonical := CanonicalEventType(name)
	for _, known := range EventTypes {
		if canonical == known {
			return true
		}
	}
	return false
}
