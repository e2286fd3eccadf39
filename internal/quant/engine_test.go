package quant_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"miso/internal/logging"
	"miso/internal/options"
	"miso/internal/quant"
	"miso/internal/testsupport"
)

type recordingExecutor struct {
	calls  int
	binary string
	args   []string
	env    []string
	lines  []string
	err    error
	check  func()
}

func (r *recordingExecutor) Run(_ context.Context, binary string, args []string, env []string, onLine func(string)) error {
	r.calls++
	r.binary = binary
	r.args = append([]string(nil), args...)
	r.env = append([]string(nil), env...)
	if r.check != nil {
		r.check()
	}
	for _, line := range r.lines {
		onLine(line)
	}
	return r.err
}

func localRequest(t *testing.T) options.RunRequest {
	t.Helper()
	return options.RunRequest{
		RunID:          "run-42",
		AnnotationPath: "/data/indexed/SE",
		ReadsPath:      "/data/reads/sample.bam",
		OutputDir:      filepath.Join(t.TempDir(), "out"),
		SettingsPath:   "/etc/miso/settings.toml",
		ReadLen:        36,
		OverhangLen:    1,
		JobName:        options.DefaultJobName,
		FilterEvents:   true,
	}
}

func TestCommandEngineLocalRun(t *testing.T) {
	settings := testsupport.NewSettings(t, testsupport.WithEngineCommand("/opt/miso/compute"), testsupport.WithProcessors(3))
	req := localRequest(t)
	exec := &recordingExecutor{lines: []string{"gene 1 of 10"}}
	exec.check = func() {
		other := flock.New(filepath.Join(req.OutputDir, quant.LockFileName))
		ok, err := other.TryLock()
		if err != nil {
			t.Errorf("probe lock: %v", err)
			return
		}
		if ok {
			_ = other.Unlock()
			t.Error("expected output lock to be held during the run")
		}
	}
	engine, err := quant.NewCommandEngine(settings, logging.NewNop(), quant.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewCommandEngine: %v", err)
	}

	if err := engine.Run(context.Background(), req); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if exec.calls != 1 || exec.binary != "/opt/miso/compute" {
		t.Fatalf("unexpected invocation: calls=%d binary=%q", exec.calls, exec.binary)
	}
	if !strings.Contains(strings.Join(exec.args, " "), "-p 3") {
		t.Fatalf("expected settings processor default, got %v", exec.args)
	}
	if !containsString(exec.env, quant.EnvRunID+"=run-42") {
		t.Fatalf("expected run id in env, got %v", exec.env)
	}
}

func TestCommandEngineLocalRunLockedOutput(t *testing.T) {
	req := localRequest(t)
	exec := &recordingExecutor{}
	engine, err := quant.NewCommandEngine(testsupport.NewSettings(t), nil, quant.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewCommandEngine: %v", err)
	}

	holdExec := &recordingExecutor{}
	holdExec.check = func() {
		if err := engine.Run(context.Background(), req); !errors.Is(err, quant.ErrOutputLocked) {
			t.Errorf("expected ErrOutputLocked, got %v", err)
		}
	}
	holder, err := quant.NewCommandEngine(testsupport.NewSettings(t), nil, quant.WithExecutor(holdExec))
	if err != nil {
		t.Fatalf("NewCommandEngine: %v", err)
	}
	if err := holder.Run(context.Background(), req); err != nil {
		t.Fatalf("holder Run: %v", err)
	}
	if exec.calls != 0 {
		t.Fatalf("locked run must not start the engine, got %d calls", exec.calls)
	}
}

func TestCommandEngineClusterSubmit(t *testing.T) {
	req := localRequest(t)
	req.UseCluster = true
	req.ChunkJobs = 100
	req.SGEArray = true
	settings := testsupport.NewSettings(t)
	settings.Cluster.Queue = "long"
	exec := &recordingExecutor{}
	engine, err := quant.NewCommandEngine(settings, nil, quant.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewCommandEngine: %v", err)
	}

	if err := engine.Run(context.Background(), req); err != nil {
		t.Fatalf("Run: %v", err)
	}
	joined := strings.Join(exec.args, " ")
	for _, want := range []string{"--use-cluster --job-name misojob", "--chunk-jobs 100", "--SGEarray"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in %q", want, joined)
		}
	}
	if strings.Contains(joined, " -p ") {
		t.Fatalf("cluster runs must not inject a processor default: %q", joined)
	}
	if !containsString(exec.env, quant.EnvClusterQueue+"=long") || !containsString(exec.env, quant.EnvClusterCommand+"=qsub") {
		t.Fatalf("unexpected env: %v", exec.env)
	}
}

func TestCommandEngineWrapsExecutorError(t *testing.T) {
	boom := errors.New("exit status 2")
	engine, err := quant.NewCommandEngine(testsupport.NewSettings(t), nil, quant.WithExecutor(&recordingExecutor{err: boom}))
	if err != nil {
		t.Fatalf("NewCommandEngine: %v", err)
	}
	err = engine.Run(context.Background(), localRequest(t))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped executor error, got %v", err)
	}
}

func TestNewCommandEngineRequiresSettings(t *testing.T) {
	if _, err := quant.NewCommandEngine(nil, nil); err == nil {
		t.Fatal("expected error without settings")
	}
}

func TestBuildArgs(t *testing.T) {
	req := options.RunRequest{
		AnnotationPath: "/idx",
		ReadsPath:      "/reads.bam",
		OutputDir:      "/out",
		SettingsPath:   "/s.toml",
		ReadLen:        76,
		OverhangLen:    1,
		PairedEnd:      &options.PairedEnd{Mean: 250, StdDev: 15.5},
		EventType:      "SE",
		JobName:        "job",
		FilterEvents:   false,
		Prefilter:      true,
		NumProcessors:  8,
	}
	want := []string{
		"--compute-genes-psi", "/idx", "/reads.bam",
		"--read-len", "76",
		"--overhang-len", "1",
		"--output-dir", "/out",
		"--settings-filename", "/s.toml",
		"--paired-end", "250", "15.5",
		"--event-type", "SE",
		"--no-filter-events",
		"--prefilter",
		"-p", "8",
	}
	if got := quant.BuildArgs(req); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", got, want)
	}
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
