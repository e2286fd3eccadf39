package quant

import (
	"context"
	"log/slog"

	"miso/internal/logging"
	"miso/internal/options"
)

// Engine computes inclusion estimates for a run request and writes its
// artifacts under the request's output directory.
type Engine interface {
	Run(ctx context.Context, req options.RunRequest) error
}

// Invoker hands a resolved request to the engine.
type Invoker struct {
	engine Engine
	logger *slog.Logger
}

// NewInvoker wraps engine.
func NewInvoker(engine Engine, logger *slog.Logger) *Invoker {
	return &Invoker{
		engine: engine,
		logger: logging.NewComponentLogger(logger, "quant"),
	}
}

// Invoke forwards req unchanged. Engine errors are returned as is.
func (i *Invoker) Invoke(ctx context.Context, req options.RunRequest) error {
	logger := i.logger.With(logging.String(logging.FieldRunID, req.RunID))
	logger.Info("computing inclusion estimates",
		logging.String("annotation", req.AnnotationPath),
		logging.String("reads", req.ReadsPath),
		logging.String("output_dir", req.OutputDir),
		logging.Bool("use_cluster", req.UseCluster),
	)
	if err := i.engine.Run(ctx, req); err != nil {
		return err
	}
	logger.Info("engine finished", logging.String("output_dir", req.OutputDir))
	return nil
}
