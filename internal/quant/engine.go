package quant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"miso/internal/config"
	"miso/internal/logging"
	"miso/internal/options"
)

// LockFileName is created inside the output directory during local runs.
const LockFileName = ".miso.lock"

// ErrOutputLocked reports that another local run holds the output directory.
var ErrOutputLocked = errors.New("output directory is in use by another run")

// Environment variables passed to the engine program.
const (
	EnvRunID          = "MISO_RUN_ID"
	EnvClusterCommand = "MISO_CLUSTER_COMMAND"
	EnvClusterQueue   = "MISO_CLUSTER_QUEUE"
)

// Option configures a CommandEngine.
type Option func(*CommandEngine)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(e *CommandEngine) {
		if exec != nil {
			e.exec = exec
		}
	}
}

// CommandEngine runs the external quantification program.
type CommandEngine struct {
	settings *config.Settings
	exec     Executor
	logger   *slog.Logger
}

// NewCommandEngine constructs an engine from the loaded settings.
func NewCommandEngine(settings *config.Settings, logger *slog.Logger, opts ...Option) (*CommandEngine, error) {
	if settings == nil {
		return nil, errors.New("engine requires settings")
	}
	engine := &CommandEngine{
		settings: settings,
		exec:     commandExecutor{},
		logger:   logging.NewComponentLogger(logger, "engine"),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

// Run executes the engine program for req.
func (e *CommandEngine) Run(ctx context.Context, req options.RunRequest) error {
	if req.UseCluster {
		return e.submit(ctx, req)
	}
	return e.runLocal(ctx, req)
}

func (e *CommandEngine) runLocal(ctx context.Context, req options.RunRequest) error {
	if err := prepareOutputDir(req.OutputDir); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(req.OutputDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrOutputLocked, req.OutputDir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			e.logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	if req.NumProcessors == 0 {
		req.NumProcessors = e.settings.Sampler.NumProcessors
	}

	runCtx := ctx
	if e.settings.Engine.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(e.settings.Engine.TimeoutSeconds)*time.Second)
		defer cancel()
	}
	return e.execute(runCtx, req)
}

func (e *CommandEngine) submit(ctx context.Context, req options.RunRequest) error {
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	e.logger.Info("submitting cluster jobs",
		logging.String("job_name", req.JobName),
		logging.Int("chunk_jobs", req.ChunkJobs),
		logging.Bool("sge_array", req.SGEArray),
		logging.String("submit_command", e.settings.Cluster.SubmitCommand),
	)
	return e.execute(ctx, req)
}

func (e *CommandEngine) execute(ctx context.Context, req options.RunRequest) error {
	binary := e.settings.EngineCommand()
	args := BuildArgs(req)
	env := []string{
		EnvRunID + "=" + req.RunID,
		EnvClusterCommand + "=" + e.settings.Cluster.SubmitCommand,
		EnvClusterQueue + "=" + e.settings.Cluster.Queue,
	}
	e.logger.Debug("starting engine", logging.String("binary", binary), logging.Int("args", len(args)))

	logger := e.logger.With(logging.String(logging.FieldRunID, req.RunID))
	if err := e.exec.Run(ctx, binary, args, env, func(line string) {
		logger.Info(line)
	}); err != nil {
		return fmt.Errorf("quantification engine: %w", err)
	}
	return nil
}

func prepareOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	return nil
}
