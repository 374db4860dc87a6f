// Package options contains the program options.
package options

// Frontends that can host the game.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Output formats of the level converter.
const (
	FormatJSON = "json"
	FormatGo   = "go"
)

// Parameters contains file path options of the game.
type Parameters struct {
	Level      string `flag:"level" usage:"level file to load, .tmx or .json (default: embedded debug level)"`
	Screenshot string `flag:"screenshot" usage:"write the last frame as PNG file (headless frontend)"`
}

// Flags contains behavior options of the game.
type Flags struct {
	Frontend  string `flag:"frontend" usage:"frontend to use: window, terminal, headless" default:"window"`
	Frames    int    `flag:"frames" usage:"number of frames to run (headless frontend)" default:"60"`
	Scale     int    `flag:"scale" usage:"window scale factor" default:"3"`
	Statsview bool   `flag:"statsview" usage:"run the runtime statistics server"`
	Debug     bool   `flag:"debug" usage:"enable debug logging"`
	Quiet     bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the game.
type Program struct {
	Parameters
	Flags
}

// ConverterParameters contains file path options of the level converter.
type ConverterParameters struct {
	Input  string `flag:"i" usage:"input .tmx level file"`
	Output string `flag:"o" usage:"output file (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.tmx)"`
	Memviz string `flag:"memviz" usage:"write a graphviz dot file of the converted level"`
}

// ConverterFlags contains behavior options of the level converter.
type ConverterFlags struct {
	Format string `flag:"format" usage:"output format: json, go" default:"json"`
	Verify bool   `flag:"verify" usage:"verify the written output by reading it back"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// Converter options of the level converter.
type Converter struct {
	ConverterParameters
	ConverterFlags
}

// Graphics options of the image converter.
type Graphics struct {
	Input       string // image file to convert
	Output      string `flag:"o" usage:"output base name, .4bpp and .pal are appended (default: input name)"`
	TileSize    string `flag:"tile" usage:"tile size as WxH (default: whole image)"`
	Transparent string `flag:"transparent" usage:"transparency color as RRGGBB" default:"FF00FF"`
	Debug       bool   `flag:"debug" usage:"enable debug logging"`
	Quiet       bool   `flag:"q" usage:"quiet mode"`
}
