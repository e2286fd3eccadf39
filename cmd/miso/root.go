package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"miso/internal/logging"
	"miso/internal/options"
)

type rootFlags struct {
	settings       string
	run            []string
	viewGene       string
	eventType      string
	useCluster     bool
	chunkJobs      int
	noFilterEvents bool
	readLen        int
	pairedEnd      []string
	overhangLen    int
	outputDir      string
	jobName        string
	sgeArray       bool
	prefilter      bool
	numProcessors  int
	showVersion    bool
}

func newRootCommand(deps appDeps) *cobra.Command {
	var flags rootFlags

	ctx := newCommandContext(&flags.settings, deps)

	rootCmd := &cobra.Command{
		Use:           "miso",
		Short:         "Mixture of Isoforms quantification front end",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipSettings(cmd) {
				return nil
			}
			_, _, err := ctx.ensureSettings()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, ctx, &flags)
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.settings, "settings-filename", "", "Settings file path")

	f := rootCmd.Flags()
	f.StringArrayVar(&flags.run, "run", nil, "Compute isoform/gene expression: --run <indexed annotation dir> <reads file>")
	f.StringVar(&flags.viewGene, "view-gene", "", "Print the contents of an indexed annotation")
	f.StringVar(&flags.eventType, "event-type", "", "Event type for two-isoform computations")
	f.BoolVar(&flags.useCluster, "use-cluster", false, "Submit jobs through the cluster scheduler")
	f.IntVar(&flags.chunkJobs, "chunk-jobs", 0, "Number of genes per cluster job (requires --use-cluster)")
	f.BoolVar(&flags.noFilterEvents, "no-filter-events", false, "Do not filter events by read coverage")
	f.IntVar(&flags.readLen, "read-len", 0, "Read length (required with --run)")
	f.StringArrayVar(&flags.pairedEnd, "paired-end", nil, "Paired-end mode: --paired-end <insert mean> <insert sd>")
	f.IntVar(&flags.overhangLen, "overhang-len", options.DefaultOverhangLen, "Overhang length (ignored with --paired-end)")
	f.StringVar(&flags.outputDir, "output-dir", "", "Directory for results (required with --run)")
	f.StringVar(&flags.jobName, "job-name", options.DefaultJobName, "Cluster job name")
	f.BoolVar(&flags.sgeArray, "SGEarray", false, "Use SGE array jobs (requires --use-cluster)")
	f.BoolVar(&flags.prefilter, "prefilter", false, "Prefilter events by read coverage before computing")
	f.IntVarP(&flags.numProcessors, "num-proc", "p", 0, "Number of local processors")
	f.BoolVar(&flags.showVersion, "version", false, "Print the version and continue")

	rootCmd.AddCommand(newSettingsCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}

func runRoot(cmd *cobra.Command, ctx *commandContext, flags *rootFlags) error {
	_, settingsPath, err := ctx.ensureSettings()
	if err != nil {
		return err
	}
	// Nothing on disk to forward.
	if !ctx.settingsExist {
		settingsPath = ""
	}
	stderr := cmd.ErrOrStderr()
	logger, err := ctx.logger(stderr)
	if err != nil {
		return err
	}

	plan, err := options.Resolve(collectOptions(cmd, flags), settingsPath)
	if err != nil {
		return err
	}
	for _, warning := range plan.Warnings {
		logging.WarnWithContext(logger, warning.Message, warning.EventType,
			logging.String(logging.FieldImpact, warning.Impact))
	}
	if plan.Empty() {
		logger.Debug("no mode requested")
		return nil
	}

	out := cmd.OutOrStdout()
	if plan.Run != nil {
		fmt.Fprintln(out, renderRunSummary(*plan.Run))
	}

	dispatcher, err := ctx.dispatcher(out, logger)
	if err != nil {
		return err
	}
	return dispatcher.Dispatch(cmd.Context(), plan)
}

// collectOptions maps parsed flags onto options.Options. Optional integers
// stay nil unless the flag was given.
func collectOptions(cmd *cobra.Command, flags *rootFlags) options.Options {
	changed := cmd.Flags().Changed
	opts := options.Options{
		ViewGene:       flags.viewGene,
		EventType:      flags.eventType,
		UseCluster:     flags.useCluster,
		NoFilterEvents: flags.noFilterEvents,
		OutputDir:      strings.TrimSpace(flags.outputDir),
		JobName:        flags.jobName,
		SGEArray:       flags.sgeArray,
		Prefilter:      flags.prefilter,
	}
	if changed("run") {
		opts.Run = flags.run
	}
	if changed("paired-end") {
		opts.PairedEnd = flags.pairedEnd
	}
	if changed("chunk-jobs") {
		opts.ChunkJobs = intPtr(flags.chunkJobs)
	}
	if changed("read-len") {
		opts.ReadLen = intPtr(flags.readLen)
	}
	if changed("overhang-len") {
		opts.OverhangLen = intPtr(flags.overhangLen)
	}
	if changed("num-proc") {
		opts.NumProcessors = intPtr(flags.numProcessors)
	}
	return opts
}

func intPtr(v int) *int {
	return &v
}

func shouldSkipSettings(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipSettingsLoad"] == "true" {
			return true
		}
	}
	return false
}
