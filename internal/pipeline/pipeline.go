package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"traceplot/internal/fileutil"
	"traceplot/internal/kst"
	"traceplot/internal/logging"
	"traceplot/internal/render"
	"traceplot/internal/tail"
	"traceplot/internal/trace"
)

// ErrInputRequired is returned when no log file is given.
var ErrInputRequired = errors.New("need to specify file")

// Launcher starts the interactive plotter on an emitted table.
type Launcher interface {
	Launch(ctx context.Context, req kst.Request) (kst.Result, error)
}

// Options holds the fully resolved settings for one run.
type Options struct {
	Input string
	// WorkDir receives the table; empty means the process working directory.
	WorkDir        string
	OutputFilename string

	Marker         string
	Prefix         string
	MetadataMargin int
	BlockSize      int
	Encoding       string

	Samples      int
	Channels     int
	SamplingFreq int
	Columns      int
	TimeIncluded bool

	SaveRaw bool
	RawPath string
	SavePDF bool
	PDFPath string

	// Native renders the PDF in-process and never launches kst2.
	Native      bool
	NoLaunch    bool
	PDFWidthIn  float64
	PDFHeightIn float64
}

// Result describes what a run produced.
type Result struct {
	Header    trace.Header
	Layout    trace.ChannelLayout
	TablePath string
	Rows      int
	Snapshot  string
	PDF       string
	Launch    *kst.Result
}

// Runner executes plot runs.
type Runner struct {
	launcher Launcher
	logger   *slog.Logger
}

// New constructs a Runner. launcher may be nil when only native rendering or
// table emission is used.
func New(launcher Launcher, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{launcher: launcher, logger: logging.NewComponentLogger(logger, "pipeline")}
}

// Parse reads the log tail and resolves the header and channel layout without
// writing anything.
func (r *Runner) Parse(opts Options) ([]string, trace.Header, trace.ChannelLayout, error) {
	if strings.TrimSpace(opts.Input) == "" {
		return nil, trace.Header{}, trace.ChannelLayout{}, ErrInputRequired
	}

	tailOpts := []tail.Option{tail.WithBlockSize(opts.BlockSize)}
	dec, err := tail.DecoderFor(opts.Encoding)
	if err != nil {
		return nil, trace.Header{}, trace.ChannelLayout{}, err
	}
	if dec != nil {
		tailOpts = append(tailOpts, tail.WithDecoder(dec))
	}

	margin := opts.MetadataMargin
	if margin <= 0 {
		margin = trace.MetadataMargin
	}
	lines, err := tail.File(opts.Input, opts.Samples+margin, tailOpts...)
	if err != nil {
		return nil, trace.Header{}, trace.ChannelLayout{}, err
	}
	r.logger.Debug("log tail read",
		logging.String(logging.FieldInputPath, opts.Input),
		logging.Int("lines", len(lines)),
	)

	header, err := trace.LocateHeader(lines, trace.HeaderOptions{Marker: opts.Marker, Prefix: opts.Prefix})
	if err != nil {
		return nil, trace.Header{}, trace.ChannelLayout{}, err
	}
	layout, err := trace.ResolveChannels(header, trace.ChannelOptions{
		Count:        opts.Channels,
		TimeIncluded: opts.TimeIncluded,
		Prefix:       opts.Prefix,
	})
	if err != nil {
		return nil, trace.Header{}, trace.ChannelLayout{}, err
	}
	return lines, header, layout, nil
}

// Run performs a full plot run. The header is reported through onHeader as
// soon as it is parsed, before any file is written.
func (r *Runner) Run(ctx context.Context, opts Options, onHeader func(trace.Header, trace.ChannelLayout)) (Result, error) {
	lines, header, layout, err := r.Parse(opts)
	if err != nil {
		return Result{}, err
	}
	result := Result{Header: header, Layout: layout}
	r.logger.Info("trace dump located",
		logging.String(logging.FieldEventType, "header_located"),
		logging.Int("prescaler", header.Prescaler),
		logging.String("trigger", header.Trigger),
		logging.Any("channels", layout.Names()),
	)
	if onHeader != nil {
		onHeader(header, layout)
	}

	workDir := opts.WorkDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return result, fmt.Errorf("resolve working directory: %w", err)
		}
	}
	tablePath, err := trace.OutputPath(workDir, opts.OutputFilename)
	if err != nil {
		return result, err
	}
	samples := trace.Samples(lines, header, opts.Samples)
	rows, err := trace.WriteTableFile(tablePath, samples, trace.TableOptions{
		Prescaler:    header.Prescaler,
		SamplingFreq: opts.SamplingFreq,
		Prefix:       opts.Prefix,
		TimeIncluded: opts.TimeIncluded,
	})
	if err != nil {
		return result, err
	}
	result.TablePath = tablePath
	result.Rows = rows
	r.logger.Info("table written",
		logging.String(logging.FieldEventType, "table_written"),
		logging.String(logging.FieldTablePath, tablePath),
		logging.Int("rows", rows),
	)

	if opts.SaveRaw {
		dest := fileutil.SnapshotPath(opts.Input, opts.RawPath)
		saved, err := fileutil.SaveSnapshot(ctx, tablePath, dest)
		if err != nil {
			return result, err
		}
		result.Snapshot = saved
		r.logger.Info("raw snapshot saved",
			logging.String(logging.FieldEventType, "snapshot_saved"),
			logging.String("path", saved),
		)
	}

	if opts.SavePDF || opts.Native {
		pdf, err := kst.PDFPath(opts.Input, opts.OutputFilename, opts.PDFPath)
		if err != nil {
			return result, err
		}
		result.PDF = pdf
	}

	if opts.Native {
		return result, r.renderNative(result, opts)
	}
	if opts.NoLaunch {
		if opts.SavePDF {
			logging.WarnWithContext(r.logger, "pdf not produced because the plotter was not launched", "pdf_skipped",
				logging.String(logging.FieldErrorHint, "use --renderer native to render without kst2"),
				logging.String("pdf", result.PDF),
			)
			result.PDF = ""
		}
		return result, nil
	}
	if r.launcher == nil {
		return result, errors.New("no plotter configured")
	}

	launch, err := r.launcher.Launch(ctx, kst.Request{
		Table:   tablePath,
		Samples: opts.Samples,
		Columns: opts.Columns,
		Layout:  layout,
		PDF:     result.PDF,
	})
	if err != nil {
		return result, err
	}
	result.Launch = &launch
	return result, nil
}

func (r *Runner) renderNative(result Result, opts Options) error {
	if len(result.Layout.Active) == 0 {
		return errors.New("no channels to render")
	}
	err := render.RenderFile(result.TablePath, result.Layout, result.PDF, render.Options{
		Columns:  opts.Columns,
		WidthIn:  opts.PDFWidthIn,
		HeightIn: opts.PDFHeightIn,
		Title:    result.Header.Trigger,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", result.PDF, err)
	}
	r.logger.Info("plot rendered",
		logging.String(logging.FieldEventType, "plot_rendered"),
		logging.String("pdf", result.PDF),
	)
	return nil
}
