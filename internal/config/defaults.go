package config

// Renderer names accepted by plotter.renderer.
const (
	RendererKst    = "kst"
	RendererNative = "native"
)

const (
	defaultConfigPath     = "~/.config/traceplot/config.toml"
	projectConfigName     = "traceplot.toml"
	defaultMarker         = "trace prescaler"
	defaultMetadataMargin = 30
	defaultBlockSize      = 4096
	defaultEncoding       = "utf-8"
	defaultSamples        = 1024
	defaultSamplingFreq   = 4000
	defaultColumns        = 3
	defaultOutputFilename = "tmp"
	defaultKstBinary      = "kst2"
	defaultPDFWidthIn     = 11.69
	defaultPDFHeightIn    = 8.27
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Trace: Trace{
			Marker:         defaultMarker,
			MetadataMargin: defaultMetadataMargin,
			BlockSize:      defaultBlockSize,
			Encoding:       defaultEncoding,
		},
		Table: Table{
			Samples:        defaultSamples,
			SamplingFreq:   defaultSamplingFreq,
			Channels:       -1,
			Columns:        defaultColumns,
			OutputFilename: defaultOutputFilename,
		},
		Plotter: Plotter{
			Binary:      defaultKstBinary,
			Renderer:    RendererKst,
			PDFWidthIn:  defaultPDFWidthIn,
			PDFHeightIn: defaultPDFHeightIn,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
