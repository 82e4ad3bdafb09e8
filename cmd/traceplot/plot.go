package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"traceplot/internal/config"
	"traceplot/internal/kst"
	"traceplot/internal/pipeline"
	"traceplot/internal/trace"
)

const (
	msgNeedFile      = "Need to specify file"
	msgHeaderMissing = "Failed to find trace dump start"
)

func runPlot(cmd *cobra.Command, ctx *commandContext, flags *plotFlags) error {
	out := cmd.OutOrStdout()
	if strings.TrimSpace(flags.file) == "" {
		fmt.Fprintln(out, msgNeedFile)
		return nil
	}

	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	opts, err := resolvePlotOptions(cmd, cfg, flags)
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}

	var launcher pipeline.Launcher
	if !opts.Native && !opts.NoLaunch {
		wait := cfg.Plotter.Wait
		if cmd.Flags().Changed("wait") {
			wait = flags.wait
		}
		client, err := kst.New(cfg.KstBinary(), kst.WithWait(wait), kst.WithLogger(logger))
		if err != nil {
			return err
		}
		launcher = client
	}

	verbose := ctx.verbose
	colorize := shouldColorize(out)
	result, err := pipeline.New(launcher, logger).Run(cmd.Context(), opts, func(h trace.Header, layout trace.ChannelLayout) {
		printHeader(out, h, opts.Prefix)
		if verbose {
			fmt.Fprintln(out, channelTable(layout, nil))
		}
	})
	if err != nil {
		if errors.Is(err, trace.ErrHeaderNotFound) {
			fmt.Fprintln(out, msgHeaderMissing)
			return silentError{err: err}
		}
		return err
	}

	for _, line := range resultLines(result, verbose, colorize) {
		fmt.Fprintln(out, line)
	}
	return nil
}

// resolvePlotOptions layers explicitly set flags over the configuration.
func resolvePlotOptions(cmd *cobra.Command, cfg *config.Config, flags *plotFlags) (pipeline.Options, error) {
	fs := cmd.Flags()
	opts := pipeline.Options{
		Input:          strings.TrimSpace(flags.file),
		OutputFilename: cfg.Table.OutputFilename,
		Marker:         cfg.Trace.Marker,
		Prefix:         cfg.Trace.Prefix,
		MetadataMargin: cfg.Trace.MetadataMargin,
		BlockSize:      cfg.Trace.BlockSize,
		Encoding:       cfg.Trace.Encoding,
		Samples:        cfg.Table.Samples,
		Channels:       cfg.Table.Channels,
		SamplingFreq:   cfg.Table.SamplingFreq,
		Columns:        cfg.Table.Columns,
		TimeIncluded:   cfg.Table.TimeIncluded,
		Native:         cfg.NativeRenderer(),
		PDFWidthIn:     cfg.Plotter.PDFWidthIn,
		PDFHeightIn:    cfg.Plotter.PDFHeightIn,
	}

	if fs.Changed("samples") {
		opts.Samples = flags.samples
	}
	if fs.Changed("channels") {
		opts.Channels = flags.channels
	}
	if fs.Changed("rm_prefix") {
		opts.Prefix = flags.rmPrefix
	}
	if fs.Changed("time_included") {
		opts.TimeIncluded = flags.timeIncluded
	}
	if fs.Changed("sampling_freq") {
		opts.SamplingFreq = flags.samplingFreq
	}
	if fs.Changed("columns") {
		opts.Columns = flags.columns
	}
	if fs.Changed("output_filename") {
		opts.OutputFilename = flags.outputFilename
	}
	if fs.Changed("save_raw") {
		opts.SaveRaw = true
		opts.RawPath = explicitPath(flags.saveRaw)
	}
	if fs.Changed("save_pdf") {
		opts.SavePDF = true
		opts.PDFPath = explicitPath(flags.savePDF)
	}
	if fs.Changed("renderer") {
		switch strings.ToLower(strings.TrimSpace(flags.renderer)) {
		case config.RendererKst:
			opts.Native = false
		case config.RendererNative:
			opts.Native = true
		default:
			return pipeline.Options{}, fmt.Errorf("--renderer must be %q or %q (got %q)", config.RendererKst, config.RendererNative, flags.renderer)
		}
	}
	if fs.Changed("no-launch") {
		opts.NoLaunch = flags.noLaunch
	}

	if opts.Samples <= 0 {
		return pipeline.Options{}, fmt.Errorf("--samples must be positive (got %d)", opts.Samples)
	}
	if opts.SamplingFreq <= 0 && !opts.TimeIncluded {
		return pipeline.Options{}, fmt.Errorf("--sampling_freq must be positive (got %d)", opts.SamplingFreq)
	}
	if opts.Columns <= 0 {
		return pipeline.Options{}, fmt.Errorf("--columns must be positive (got %d)", opts.Columns)
	}
	return opts, nil
}

func explicitPath(value string) string {
	value = strings.TrimSpace(value)
	if value == deriveValue {
		return ""
	}
	return value
}

// printHeader echoes the dump header with the device prefix removed.
func printHeader(w io.Writer, h trace.Header, prefix string) {
	trigger := strings.TrimSpace(trace.StripPrefix(h.Trigger, prefix))
	channels := strings.TrimSpace(trace.StripPrefix(h.Channels, prefix))
	fmt.Fprintf(w, "Prescaler: %d\nTrigger: %s\nChannels: %s\n\n", h.Prescaler, trigger, channels)
}

func resultLines(result pipeline.Result, verbose, colorize bool) []string {
	lines := []string{
		renderStatusLine("Table", statusOK, fmt.Sprintf("%s (%d rows)", result.TablePath, result.Rows), colorize),
	}
	if result.Snapshot != "" {
		lines = append(lines, renderStatusLine("Raw snapshot", statusOK, result.Snapshot, colorize))
	}
	if result.PDF != "" {
		lines = append(lines, renderStatusLine("PDF", statusOK, result.PDF, colorize))
	}
	if launch := result.Launch; launch != nil {
		state := "detached"
		if launch.Waited {
			state = "exited cleanly"
		}
		lines = append(lines, renderStatusLine("Plotter", statusInfo, fmt.Sprintf("%s pid %d, %s", launch.Binary, launch.PID, state), colorize))
		if verbose {
			lines = append(lines, renderStatusLine("Command", statusInfo, commandLine(launch.Binary, launch.Args), colorize))
		}
	}
	return lines
}

// commandLine quotes arguments that would not survive a shell copy-paste.
func commandLine(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, binary)
	for _, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\"'\\$") {
			parts = append(parts, strconv.Quote(arg))
			continue
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}
