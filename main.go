package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/influxdata/fix-pkgconfig/internal/rootdir"
	"github.com/influxdata/fix-pkgconfig/libs/ffmpeg"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const usage = `Fix pkgconfig files after copying libraries to a new location.
Updates every .pc file in <path>/lib/pkgconfig to point to <path>.

Usage:
    %[1]s /path/to/ffmpeg
    %[1]s              # uses $HOME/ffmpeg by default

Flags:
`

// Config is the resolved command line.
type Config struct {
	Root   string
	DryRun bool
}

var logger *zap.Logger

func configureLogger(logger **zap.Logger) error {
	logPath := os.Getenv("FIX_PKGCONFIG_LOG")
	if logPath == "" {
		*logger = zap.NewNop()
		return nil
	}
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{logPath}
	l, err := config.Build()
	if err != nil {
		return err
	}
	*logger = l
	return nil
}

type Flags struct {
	DryRun bool
	Help   bool
}

func parseFlags(name string, args []string, stderr io.Writer) ([]string, Flags, *pflag.FlagSet, error) {
	var flags Flags
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.BoolVarP(&flags.DryRun, "dry-run", "n", false, "show what would be changed without modifying files")
	flagSet.BoolVarP(&flags.Help, "help", "h", false, "print this help and exit")
	flagSet.Usage = func() {
		_, _ = fmt.Fprintf(stderr, usage, name)
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		return nil, flags, flagSet, err
	}
	return flagSet.Args(), flags, flagSet, nil
}

func run(name string, args []string, stdout, stderr io.Writer) int {
	ctx := context.TODO()
	logger.Info("Started fix-pkgconfig", zap.Strings("args", args))

	positional, flags, flagSet, err := parseFlags(name, args, stderr)
	if err != nil {
		logger.Error("Failed to parse command-line flags", zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		flagSet.Usage()
		return 1
	}
	if flags.Help {
		flagSet.SetOutput(stdout)
		_, _ = fmt.Fprintf(stdout, usage, name)
		flagSet.PrintDefaults()
		return 0
	}
	if len(positional) > 1 {
		_, _ = fmt.Fprintf(stderr, "Error: expected at most one path, got %d\n", len(positional))
		flagSet.Usage()
		return 1
	}

	var arg string
	if len(positional) == 1 {
		arg = positional[0]
	}
	root, err := rootdir.Resolve(arg)
	if err != nil {
		logger.Error("Could not resolve installation root", zap.String("root", root), zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "Error: %v\n\nUsage: %s [ffmpeg_path]\n", err, name)
		return 1
	}
	cfg := Config{Root: root, DryRun: flags.DryRun}

	if cfg.DryRun {
		_, _ = io.WriteString(stdout, "Running in DRY RUN mode (no files will be modified)\n\n")
	}

	lib, err := ffmpeg.Locate(ctx, logger, cfg.Root)
	if err != nil {
		logger.Error("Could not locate pkgconfig files", zap.String("root", cfg.Root), zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	lib.Fix(ctx, logger, stdout, cfg.DryRun)
	if !cfg.DryRun {
		lib.Verify(ctx, logger, stdout)
	}
	return 0
}

func realMain() int {
	if err := configureLogger(&logger); err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	return run(os.Args[0], os.Args[1:], os.Stdout, os.Stderr)
}

func main() {
	os.Exit(realMain())
}
