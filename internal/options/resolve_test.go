package options_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"miso/internal/options"
)

func intPtr(v int) *int { return &v }

func baseRunOptions() options.Options {
	return options.Options{
		Run:       []string{"~/indexed/SE", "~/reads/sample.bam"},
		ReadLen:   intPtr(36),
		OutputDir: "~/output/sample",
	}
}

func requireRule(t *testing.T, err error, want options.Rule) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if !errors.Is(err, options.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := options.RuleOf(err); got != want {
		t.Fatalf("unexpected rule: got %q want %q (%v)", got, want, err)
	}
}

func TestResolveRejectsChunkJobsWithoutCluster(t *testing.T) {
	for _, opts := range []options.Options{
		{ChunkJobs: intPtr(500)},
		func() options.Options { o := baseRunOptions(); o.ChunkJobs = intPtr(10); return o }(),
		{ChunkJobs: intPtr(10), ViewGene: "genes.db"},
	} {
		plan, err := options.Resolve(opts, "")
		requireRule(t, err, options.RuleChunkJobsRequiresCluster)
		if !plan.Empty() {
			t.Fatalf("expected empty plan on rejection, got %+v", plan)
		}
	}
}

func TestResolveRejectsSGEArrayWithoutCluster(t *testing.T) {
	opts := baseRunOptions()
	opts.SGEArray = true
	_, err := options.Resolve(opts, "")
	requireRule(t, err, options.RuleSGEArrayRequiresCluster)

	_, err = options.Resolve(options.Options{SGEArray: true}, "")
	requireRule(t, err, options.RuleSGEArrayRequiresCluster)
}

func TestResolveRequiresOutputDirBeforePathResolution(t *testing.T) {
	t.Setenv("HOME", "")
	opts := baseRunOptions()
	opts.OutputDir = ""
	_, err := options.Resolve(opts, "")
	requireRule(t, err, options.RuleOutputDirRequired)
}

func TestResolveRequiresReadLen(t *testing.T) {
	opts := baseRunOptions()
	opts.ReadLen = nil
	_, err := options.Resolve(opts, "")
	requireRule(t, err, options.RuleReadLenRequired)
}

func TestResolveRejectsNonPositiveValues(t *testing.T) {
	cases := map[string]func(*options.Options){
		"read-len":     func(o *options.Options) { o.ReadLen = intPtr(0) },
		"overhang-len": func(o *options.Options) { o.OverhangLen = intPtr(-2) },
		"-p":           func(o *options.Options) { o.NumProcessors = intPtr(0) },
		"chunk-jobs":   func(o *options.Options) { o.UseCluster = true; o.ChunkJobs = intPtr(0) },
		"mean":         func(o *options.Options) { o.PairedEnd = []string{"0", "10"} },
		"deviation":    func(o *options.Options) { o.PairedEnd = []string{"250", "-1"} },
		"not a number": func(o *options.Options) { o.PairedEnd = []string{"abc", "10"} },
		"NaN":          func(o *options.Options) { o.PairedEnd = []string{"NaN", "10"} },
		"Inf":          func(o *options.Options) { o.PairedEnd = []string{"250", "Inf"} },
		"+Inf":         func(o *options.Options) { o.PairedEnd = []string{"+Inf", "10"} },
	}
	for name, mutate := range cases {
		opts := baseRunOptions()
		mutate(&opts)
		_, err := options.Resolve(opts, "")
		requireRule(t, err, options.RuleInvalidValue)
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("%s: expected message to mention it, got %v", name, err)
		}
	}
}

func TestResolveRejectsWrongArity(t *testing.T) {
	opts := baseRunOptions()
	opts.Run = []string{"only-one"}
	_, err := options.Resolve(opts, "")
	requireRule(t, err, options.RuleInvalidArity)

	opts = baseRunOptions()
	opts.PairedEnd = []string{"250"}
	_, err = options.Resolve(opts, "")
	requireRule(t, err, options.RuleInvalidArity)
}

func TestResolveRunDefaultsAndPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	plan, err := options.Resolve(baseRunOptions(), "/etc/miso/settings.toml")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if plan.View != nil {
		t.Fatalf("expected no view request, got %+v", plan.View)
	}
	req := plan.Run
	if req == nil {
		t.Fatal("expected run request")
	}
	if req.OutputDir != filepath.Join(home, "output", "sample") {
		t.Fatalf("unexpected output dir: %q", req.OutputDir)
	}
	if req.AnnotationPath != filepath.Join(home, "indexed", "SE") {
		t.Fatalf("unexpected annotation path: %q", req.AnnotationPath)
	}
	if req.ReadsPath != filepath.Join(home, "reads", "sample.bam") {
		t.Fatalf("unexpected reads path: %q", req.ReadsPath)
	}
	if req.OverhangLen != 1 {
		t.Fatalf("expected default overhang 1, got %d", req.OverhangLen)
	}
	if req.JobName != options.DefaultJobName {
		t.Fatalf("unexpected job name: %q", req.JobName)
	}
	if !req.FilterEvents || req.Prefilter || req.UseCluster || req.IsPairedEnd() {
		t.Fatalf("unexpected flag defaults: %+v", req)
	}
	if req.ChunkJobs != 0 || req.NumProcessors != 0 {
		t.Fatalf("expected unset chunk/processors, got %d/%d", req.ChunkJobs, req.NumProcessors)
	}
	if req.SettingsPath != "/etc/miso/settings.toml" {
		t.Fatalf("unexpected settings path: %q", req.SettingsPath)
	}
	if req.RunID == "" {
		t.Fatal("expected run id")
	}
	if len(plan.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", plan.Warnings)
	}
}

func TestResolvePairedEndOverridesOverhang(t *testing.T) {
	for _, supplied := range []int{1, 8, 0, -5} {
		opts := baseRunOptions()
		opts.PairedEnd = []string{"250", "15.5"}
		opts.OverhangLen = intPtr(supplied)

		plan, err := options.Resolve(opts, "")
		if err != nil {
			t.Fatalf("overhang %d: Resolve: %v", supplied, err)
		}
		if plan.Run.OverhangLen != 1 {
			t.Fatalf("overhang %d: expected forced overhang 1, got %d", supplied, plan.Run.OverhangLen)
		}
		if plan.Run.PairedEnd == nil || plan.Run.PairedEnd.Mean != 250 || plan.Run.PairedEnd.StdDev != 15.5 {
			t.Fatalf("unexpected paired-end values: %+v", plan.Run.PairedEnd)
		}
		if len(plan.Warnings) != 1 || plan.Warnings[0].EventType != "overhang_ignored" {
			t.Fatalf("expected overhang warning, got %+v", plan.Warnings)
		}
	}
}

func TestResolveExplicitOverhangWithoutPairedEnd(t *testing.T) {
	opts := baseRunOptions()
	opts.OverhangLen = intPtr(8)
	plan, err := options.Resolve(opts, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if plan.Run.OverhangLen != 8 {
		t.Fatalf("expected overhang 8, got %d", plan.Run.OverhangLen)
	}
}

func TestResolveClusterOptions(t *testing.T) {
	opts := baseRunOptions()
	opts.UseCluster = true
	opts.ChunkJobs = intPtr(250)
	opts.SGEArray = true
	opts.JobName = "  sample-se "
	opts.NoFilterEvents = true
	opts.Prefilter = true
	opts.NumProcessors = intPtr(6)
	opts.EventType = "se"

	plan, err := options.Resolve(opts, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	req := plan.Run
	if !req.UseCluster || req.ChunkJobs != 250 || !req.SGEArray {
		t.Fatalf("unexpected cluster fields: %+v", req)
	}
	if req.JobName != "sample-se" {
		t.Fatalf("unexpected job name: %q", req.JobName)
	}
	if req.FilterEvents || !req.Prefilter || req.NumProcessors != 6 {
		t.Fatalf("unexpected flags: %+v", req)
	}
	if req.EventType != "SE" {
		t.Fatalf("expected canonical event type SE, got %q", req.EventType)
	}
}

func TestResolveViewOnly(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	plan, err := options.Resolve(options.Options{ViewGene: "~/index/genes.db"}, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if plan.Run != nil {
		t.Fatalf("expected no run request, got %+v", plan.Run)
	}
	if plan.View == nil || plan.View.Path != filepath.Join(home, "index", "genes.db") {
		t.Fatalf("unexpected view request: %+v", plan.View)
	}
}

func TestResolveBothTriggers(t *testing.T) {
	opts := baseRunOptions()
	opts.ViewGene = "genes.db"
	plan, err := options.Resolve(opts, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if plan.Run == nil || plan.View == nil {
		t.Fatalf("expected both modes, got %+v", plan)
	}
}

func TestResolveBothTriggersValidatesRunFirst(t *testing.T) {
	opts := baseRunOptions()
	opts.ReadLen = nil
	opts.ViewGene = "genes.db"
	plan, err := options.Resolve(opts, "")
	requireRule(t, err, options.RuleReadLenRequired)
	if plan.View != nil {
		t.Fatal("view request must not be produced when validation fails")
	}
}

func TestResolveNoTriggers(t *testing.T) {
	plan, err := options.Resolve(options.Options{UseCluster: true, ReadLen: intPtr(36)}, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !plan.Empty() {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
}

func TestCanonicalEventType(t *testing.T) {
	cases := map[string]string{
		"":           "",
		" a3ss ":     "A3SS",
		"tandemutr":  "TandemUTR",
		"MXE":        "MXE",
		"custom_set": "custom_set",
	}
	for input, want := range cases {
		if got := options.CanonicalEventType(input); got != want {
			t.Fatalf("CanonicalEventType(%q) = %q, want %q", input, got, want)
		}
	}
	if options.IsKnownEventType("custom_set") {
		t.Fatal("custom_set should not be known")
	}
}

func TestResolveWarnsOnUnknownEventType(t *testing.T) {
	opts := baseRunOptions()
	opts.EventType = "custom_set"
	plan, err := options.Resolve(opts, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(plan.Warnings) != 1 || plan.Warnings[0].EventType != "unknown_event_type" {
		t.Fatalf("expected unknown event warning, got %+v", plan.Warnings)
	}
}
