package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// deriveValue is what a bare --save_raw or --save_pdf parses to.
const deriveValue = "auto"

type plotFlags struct {
	file           string
	samples        int
	channels       int
	samplingFreq   int
	columns        int
	rmPrefix       string
	outputFilename string
	timeIncluded   bool
	saveRaw        string
	savePDF        string
	renderer       string
	noLaunch       bool
	wait           bool
}

func newRootCommand() *cobra.Command {
	var flags plotFlags
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:   "traceplot",
		Short: "Plot the last trace dump of a device log in kst2",
		Long: "traceplot reads the end of a device log, finds the last \"trace prescaler\" dump,\n" +
			"writes its samples as a timestamped table and opens the table in kst2.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsConfig(cmd) {
				return nil
			}
			_, err := ctx.loadConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, ctx, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.configPath, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "V", false, "Print the channel layout and plotter command, log at debug level")

	fs := rootCmd.Flags()
	bindTraceFlags(fs, &flags)
	fs.IntVarP(&flags.samplingFreq, "sampling_freq", "s", 0, "Sampling frequency in Hz (default from config, 4000)")
	fs.IntVar(&flags.columns, "columns", 0, "Number of plot columns in the kst2 layout (default from config, 3)")
	fs.StringVar(&flags.outputFilename, "output_filename", "", "Table file name; .txt is added when it has no extension (default \"tmp\")")
	fs.StringVarP(&flags.saveRaw, "save_raw", "R", "", "Keep a copy of the table; bare flag derives <input>.raw, use -R=PATH to name it")
	fs.Lookup("save_raw").NoOptDefVal = deriveValue
	fs.StringVarP(&flags.savePDF, "save_pdf", "P", "", "Print the plot to PDF; bare flag derives the name, use -P=PATH to name it")
	fs.Lookup("save_pdf").NoOptDefVal = deriveValue
	fs.StringVar(&flags.renderer, "renderer", "", "Plot backend: kst or native (default from config, kst)")
	fs.BoolVar(&flags.noLaunch, "no-launch", false, "Write the table without starting the plotter")
	fs.BoolVar(&flags.wait, "wait", false, "Wait for kst2 to exit and fail on a non-zero status")

	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// bindTraceFlags registers the flags shared by every command that parses a log.
func bindTraceFlags(fs *pflag.FlagSet, flags *plotFlags) {
	fs.StringVarP(&flags.file, "file", "f", "", "Device log to read")
	fs.IntVarP(&flags.samples, "samples", "n", 0, "Number of samples to read after the header (default from config, 1024)")
	fs.IntVarP(&flags.channels, "channels", "c", -1, "Number of channels to plot; negative detects them from the header")
	fs.StringVar(&flags.rmPrefix, "rm_prefix", "", "Literal prefix removed from log lines before parsing")
	fs.BoolVar(&flags.timeIncluded, "time_included", false, "The first sample column is already a timestamp")
}
