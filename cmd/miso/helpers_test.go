package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"miso/internal/options"
	"miso/internal/testsupport"
)

type recordingEngine struct {
	mu    sync.Mutex
	calls []options.RunRequest
	err   error
}

func (e *recordingEngine) Run(_ context.Context, req options.RunRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, req)
	return e.err
}

func (e *recordingEngine) Calls() []options.RunRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]options.RunRequest(nil), e.calls...)
}

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// runCLI executes the CLI against a fresh settings file and the given engine.
func runCLI(t *testing.T, engine *recordingEngine, args ...string) cliResult {
	t.Helper()
	settingsPath := testsupport.WriteSettings(t, testsupport.NewSettings(t))
	full := append([]string{"--settings-filename", settingsPath}, args...)
	return runCLIRaw(t, engine, full...)
}

func runCLIRaw(t *testing.T, engine *recordingEngine, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	deps := appDeps{}
	if engine != nil {
		deps.engine = engine
	}
	code := execute(context.Background(), args, &stdout, &stderr, deps)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
