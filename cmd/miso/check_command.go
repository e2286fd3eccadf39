package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"miso/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the engine, scheduler, and settings directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, path, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			results := preflight.RunAll(settings, path)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, res := range results {
				fmt.Fprintln(out, renderStatusLine(res.Name, checkKind(res), res.Detail, colorize))
			}
			if preflight.Failed(results) {
				return errors.New("required checks failed")
			}
			return nil
		},
	}
}

func checkKind(res preflight.Result) statusKind {
	switch {
	case res.Passed:
		return statusOK
	case res.Optional:
		return statusWarn
	default:
		return statusError
	}
}
