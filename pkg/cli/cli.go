package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/osolmaz/tools/pkg/padify"
)

// debugEnabled is switched on by PADIFY_DEBUG.
var debugEnabled bool

func debugf(format string, args ...interface{}) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, "padify: "+format+"\n", args...)
	}
}

// flagValues receives the raw command-line flags.
type flagValues struct {
	padX      uint32
	padY      uint32
	all       uint32
	bg        string
	noCrop    bool
	debugCrop bool
	preview   bool
}

// runSettings is the merged result of config and flags.
type runSettings struct {
	opts      padify.Options
	debugCrop bool
	preview   bool
}

// Execute runs the padify command line with the process's standard streams.
func Execute() error {
	return NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute()
}

// NewRootCommand builds the padify command tree.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	fv := &flagValues{}
	cmd := &cobra.Command{
		Use:   "padify <input> [output]",
		Short: "Add padding to images with auto padding and background.",
		Long: `Add padding to images with auto padding and background.

The background color is detected from the image border unless --bg is given.
A cut-off last line or a stray text cursor at the bottom is cropped first
(disable with --no-crop). The output defaults to <input>_pad.<ext>.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Flags(), fv, args, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetGlobalNormalizationFunc(normalizeFlagName)
	bindFlags(cmd.Flags(), fv)
	cmd.MarkFlagsMutuallyExclusive("all", "pad-x")
	cmd.MarkFlagsMutuallyExclusive("all", "pad-y")

	cmd.AddCommand(newVersionCommand(stdout), newUpdateCommand(stdin, stdout))
	return cmd
}

func bindFlags(fs *pflag.FlagSet, fv *flagValues) {
	fs.Uint32Var(&fv.padX, "pad-x", 0, "Horizontal padding in pixels (left/right). If set, vertical padding matches it.")
	fs.Uint32Var(&fv.padY, "pad-y", 0, "Vertical padding in pixels (top/bottom). If set, horizontal padding matches it.")
	fs.Uint32Var(&fv.all, "all", 0, "Set both horizontal and vertical padding (alias --pad)")
	fs.StringVar(&fv.bg, "bg", "auto", `Background color: "auto", "transparent", a color name, or hex (#RRGGBB or #RRGGBBAA)`)
	fs.BoolVar(&fv.noCrop, "no-crop", false, "Disable auto-cropping of partial bottom artifacts")
	fs.BoolVar(&fv.debugCrop, "debug-crop", false, "Print crop decisions to stderr")
	fs.BoolVar(&fv.preview, "preview", false, "Show the result inline in kitty or iTerm2-compatible terminals")
}

// normalizeFlagName maps --pad onto --all.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "pad" {
		name = "all"
	}
	return pflag.NormalizedName(name)
}

// resolveSettings merges flags over cfg. Flags only count when set explicitly.
func resolveSettings(fs *pflag.FlagSet, fv *flagValues, cfg *Config) (runSettings, error) {
	var s runSettings

	bg := cfg.Background
	if fs.Changed("bg") {
		bg = fv.bg
	}
	color, err := padify.ParseBackground(bg)
	if err != nil {
		return s, err
	}
	s.opts.Background = color

	switch {
	case fs.Changed("all"):
		s.opts.Padding.All = &fv.all
	case fs.Changed("pad-x") || fs.Changed("pad-y"):
		if fs.Changed("pad-x") {
			s.opts.Padding.X = &fv.padX
		}
		if fs.Changed("pad-y") {
			s.opts.Padding.Y = &fv.padY
		}
	default:
		s.opts.Padding.All = cfg.Pad
	}

	s.opts.NoCrop = cfg.NoCrop || fv.noCrop
	if fs.Changed("no-crop") {
		s.opts.NoCrop = fv.noCrop
	}
	s.debugCrop = cfg.DebugCrop || fv.debugCrop
	if fs.Changed("debug-crop") {
		s.debugCrop = fv.debugCrop
	}
	s.preview = cfg.Preview || fv.preview
	if fs.Changed("preview") {
		s.preview = fv.preview
	}
	return s, nil
}

func run(fs *pflag.FlagSet, fv *flagValues, args []string, stdout, stderr io.Writer) error {
	cfg, err := LoadConfig(".env")
	if err != nil {
		return err
	}
	debugEnabled = cfg.Debug

	s, err := resolveSettings(fs, fv, cfg)
	if err != nil {
		return err
	}
	if cfg.Debug {
		s.opts.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	input := args[0]
	output := DefaultOutputPath(input)
	if len(args) > 1 {
		output = args[1]
	}

	img, err := LoadImage(input)
	if err != nil {
		return err
	}
	debugf("loaded %s (%s)", input, imageInfo(img))

	res, err := padify.Process(img, s.opts)
	if err != nil {
		return err
	}
	if s.debugCrop {
		fmt.Fprintf(stderr, "padify: %s\n", res.Crop)
	}

	if err := SaveImage(output, res.Image); err != nil {
		return err
	}
	if s.preview {
		// stdout carries only the output path
		if err := PreviewImage(stderr, res.Image, cfg.PreviewBackend); err != nil {
			debugf("preview unavailable: %v", err)
		}
	}
	fmt.Fprintln(stdout, output)
	return nil
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the padify version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if v, err := semver.ParseTolerant(Version); err == nil {
				fmt.Fprintf(stdout, "padify v%s\n", v)
				return
			}
			fmt.Fprintf(stdout, "padify %s\n", Version)
		},
	}
}

func newUpdateCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:          "update",
		Short:        "Check GitHub for a newer release and install it",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return CheckForUpdates(stdout, stdin)
		},
	}
}
