package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"miso/internal/annotation"
	"miso/internal/config"
	"miso/internal/dispatch"
	"miso/internal/logging"
	"miso/internal/quant"
)

// appDeps lets tests replace the external collaborators. Nil fields use the
// production implementations.
type appDeps struct {
	engine quant.Engine
	loader annotation.Loader
}

type commandContext struct {
	settingsFlag *string
	deps         appDeps

	settingsOnce  sync.Once
	settings      *config.Settings
	settingsPath  string
	settingsExist bool
	settingsErr   error
}

func newCommandContext(settingsFlag *string, deps appDeps) *commandContext {
	return &commandContext{settingsFlag: settingsFlag, deps: deps}
}

// ensureSettings loads settings on first use and returns the cached result
// afterwards.
func (c *commandContext) ensureSettings() (*config.Settings, string, error) {
	c.settingsOnce.Do(func() {
		var path string
		if c.settingsFlag != nil {
			path = strings.TrimSpace(*c.settingsFlag)
		}
		settings, resolved, exists, err := config.Load(path)
		if err != nil {
			c.settingsErr = err
			return
		}
		c.settings = settings
		c.settingsPath = resolved
		c.settingsExist = exists
	})
	return c.settings, c.settingsPath, c.settingsErr
}

func (c *commandContext) logger(stderr io.Writer) (*slog.Logger, error) {
	settings, _, err := c.ensureSettings()
	if err != nil {
		return nil, err
	}
	return logging.NewFromSettings(settings, stderr)
}

func (c *commandContext) dispatcher(out io.Writer, logger *slog.Logger) (*dispatch.Dispatcher, error) {
	settings, _, err := c.ensureSettings()
	if err != nil {
		return nil, err
	}
	engine := c.deps.engine
	if engine == nil {
		commandEngine, err := quant.NewCommandEngine(settings, logger)
		if err != nil {
			return nil, err
		}
		engine = commandEngine
	}
	return dispatch.New(
		quant.NewInvoker(engine, logger),
		annotation.NewInspector(c.deps.loader, out, logger),
	), nil
}
