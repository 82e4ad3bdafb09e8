package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"traceplot/internal/pipeline"
	"traceplot/internal/render"
	"traceplot/internal/trace"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var flags plotFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the last trace dump header and channel layout without plotting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if flags.file == "" {
				fmt.Fprintln(out, msgNeedFile)
				return nil
			}
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			opts, err := resolvePlotOptions(cmd, cfg, &flags)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			lines, header, layout, err := pipeline.New(nil, logger).Parse(opts)
			if err != nil {
				if errors.Is(err, trace.ErrHeaderNotFound) {
					fmt.Fprintln(out, msgHeaderMissing)
					return silentError{err: err}
				}
				return err
			}

			var buf bytes.Buffer
			rows, err := trace.WriteTable(&buf, trace.Samples(lines, header, opts.Samples), trace.TableOptions{
				Prescaler:    header.Prescaler,
				SamplingFreq: opts.SamplingFreq,
				Prefix:       opts.Prefix,
				TimeIncluded: opts.TimeIncluded,
			})
			if err != nil {
				return err
			}
			table, err := render.ReadTable(&buf)
			if err != nil {
				return err
			}

			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Trace dump", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Prescaler", statusInfo, fmt.Sprintf("%d", header.Prescaler), colorize))
			fmt.Fprintln(out, renderStatusLine("Trigger", statusInfo, strings.TrimSpace(trace.StripPrefix(header.Trigger, opts.Prefix)), colorize))
			fmt.Fprintln(out, renderStatusLine("Header line", statusInfo, fmt.Sprintf("%d of %d read", header.Index+1, len(lines)), colorize))
			fmt.Fprintln(out, renderStatusLine("Channels", statusInfo, fmt.Sprintf("%d detected, %d plotted", layout.DetectedCount(), len(layout.Active)), colorize))
			sampleKind := statusOK
			if rows < opts.Samples {
				sampleKind = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine("Samples", sampleKind, fmt.Sprintf("%d of %d requested", rows, opts.Samples), colorize))
			fmt.Fprintln(out)
			fmt.Fprintln(out, channelTable(layout, render.Summarize(table, layout)))
			return nil
		},
	}

	bindTraceFlags(cmd.Flags(), &flags)
	cmd.Flags().IntVarP(&flags.samplingFreq, "sampling_freq", "s", 0, "Sampling frequency in Hz (default from config, 4000)")
	return cmd
}
