package config

import (
	"errors"
	"fmt"
	"sort"
)

// Validate ensures the settings are usable.
func (s *Settings) Validate() error {
	if err := s.validateEngine(); err != nil {
		return err
	}
	if err := s.validateSampler(); err != nil {
		return err
	}
	if err := s.validateData(); err != nil {
		return err
	}
	return s.validateLogging()
}

func (s *Settings) validateEngine() error {
	if s.Engine.TimeoutSeconds < 0 {
		return errors.New("engine.timeout_seconds must be zero or positive")
	}
	return nil
}

func (s *Settings) validateSampler() error {
	if err := ensurePositiveMap(map[string]int{
		"sampler.burn_in":        s.Sampler.BurnIn,
		"sampler.lag":            s.Sampler.Lag,
		"sampler.num_iters":      s.Sampler.NumIters,
		"sampler.num_chains":     s.Sampler.NumChains,
		"sampler.num_processors": s.Sampler.NumProcessors,
	}); err != nil {
		return err
	}
	if s.Sampler.BurnIn >= s.Sampler.NumIters {
		return errors.New("sampler.burn_in must be less than sampler.num_iters")
	}
	return nil
}

func (s *Settings) validateData() error {
	if s.Data.MinEventReads < 0 {
		return errors.New("data.min_event_reads must be zero or positive")
	}
	switch s.Data.Strand {
	case StrandUnstranded, StrandFirstStrand, StrandSecond:
		return nil
	default:
		return fmt.Errorf("data.strand: unsupported value %q (use %s, %s or %s)", s.Data.Strand, StrandUnstranded, StrandFirstStrand, StrandSecond)
	}
}

func (s *Settings) validateLogging() error {
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", s.Logging.Format)
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", s.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
