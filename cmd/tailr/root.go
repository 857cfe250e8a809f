package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/kazeburo/tailr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var (
	tailLines      string
	tailBytes      string
	tailQuiet      bool
	tailRaw        bool
	tailColor      string
	tailLogLevel   string
	tailConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "tailr [flags] FILE...",
	Short: "Display the last part of a file",
	Long: `tailr prints the end of each FILE. A bare number or a leading '-' counts
from the end of the file, a leading '+' counts from the start, and +0
prints the whole file.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTail,
}

func init() {
	rootCmd.Flags().StringVarP(&tailLines, "lines", "n", tailr.DefaultLines, "Number of lines")
	rootCmd.Flags().StringVarP(&tailBytes, "bytes", "c", "", "Number of bytes")
	rootCmd.Flags().BoolVarP(&tailQuiet, "quiet", "q", false, "Suppress headers")
	rootCmd.Flags().BoolVar(&tailRaw, "raw", false, "Print bytes without replacing invalid UTF-8")
	rootCmd.Flags().StringVar(&tailColor, "color", "auto", "Color headers: auto, always, never")
	rootCmd.Flags().StringVar(&tailLogLevel, "log-level", "warn", "Diagnostic log level")
	rootCmd.Flags().StringVar(&tailConfigPath, "config", "", "YAML file with default settings")
	rootCmd.MarkFlagsMutuallyExclusive("lines", "bytes")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runTail(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if tailConfigPath != "" {
		fc, err := tailr.LoadFileConfig(tailConfigPath)
		if err != nil {
			return err
		}
		applyFileConfig(fc, flags.Changed)
	}

	cfg, err := tailr.NewConfig(tailLines, tailBytes, tailQuiet, tailRaw)
	if err != nil {
		return err
	}

	logger, err := newLogger(tailLogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	setColor(tailColor, cmd.OutOrStdout())
	t := &tailr.Tailer{
		Config: cfg,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: logger,
	}
	return t.Run(args)
}

// applyFileConfig fills every setting not given on the command line.
func applyFileConfig(fc *tailr.FileConfig, changed func(string) bool) {
	lineSet, byteSet := changed("lines"), changed("bytes")
	if fc.Lines != nil && !lineSet && !byteSet {
		tailLines = *fc.Lines
	}
	if fc.Bytes != nil && !lineSet && !byteSet {
		tailBytes = *fc.Bytes
	}
	if fc.Quiet != nil && !changed("quiet") {
		tailQuiet = *fc.Quiet
	}
	if fc.Raw != nil && !changed("raw") {
		tailRaw = *fc.Raw
	}
	if fc.Color != "" && !changed("color") {
		tailColor = fc.Color
	}
	if fc.LogLevel != "" && !changed("log-level") {
		tailLogLevel = fc.LogLevel
	}
}

// setColor decides whether headers written to out are colored.
func setColor(mode string, out io.Writer) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default: // "auto"
		f, ok := out.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core), nil
}
