package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeanas/lilywheel/internal/config"
	"github.com/jeanas/lilywheel/internal/platform"
	"github.com/jeanas/lilywheel/internal/service"
)

// defaultManifest is the manifest file looked up in the working
// directory when --config is not given.
const defaultManifest = "wheels.lua"

// buildTimeout bounds a full run including downloads of all targets.
const buildTimeout = 30 * time.Minute

type buildOptions struct {
	version     string
	buildNumber int
	configPath  string
	workDir     string
	cacheDir    string
	keyringPath string
	platforms   []string
	skipVerify  bool
	verbose     bool
	showHelp    bool
}

// parseBuildArgs parses the build subcommand arguments. The release
// version is the single positional argument.
func parseBuildArgs(args []string) (buildOptions, error) {
	opts := buildOptions{
		buildNumber: 1,
		workDir:     "build",
	}

	// Value-taking flags consume the following argument
	takeValue := func(i *int, name string) (string, error) {
		*i++
		if *i >= len(args) {
			return "", fmt.Errorf("%s requires a value\nRun 'lilywheel build --help' for usage", name)
		}
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			opts.showHelp = true
		case "--skip-verify":
			opts.skipVerify = true
		case "--verbose", "-v":
			opts.verbose = true
		case "--build-number", "-b":
			value, err := takeValue(&i, arg)
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				return opts, fmt.Errorf("invalid build number: %s", value)
			}
			opts.buildNumber = n
		case "--config", "-c":
			value, err := takeValue(&i, arg)
			if err != nil {
				return opts, err
			}
			opts.configPath = value
		case "--work", "-w":
			value, err := takeValue(&i, arg)
			if err != nil {
				return opts, err
			}
			opts.workDir = value
		case "--cache":
			value, err := takeValue(&i, arg)
			if err != nil {
				return opts, err
			}
			opts.cacheDir = value
		case "--keyring", "-k":
			value, err := takeValue(&i, arg)
			if err != nil {
				return opts, err
			}
			opts.keyringPath = value
		case "--platform", "-p":
			value, err := takeValue(&i, arg)
			if err != nil {
				return opts, err
			}
			for _, name := range strings.Split(value, ",") {
				if name = strings.TrimSpace(name); name != "" {
					opts.platforms = append(opts.platforms, name)
				}
			}
		default:
			// Anything not starting with - is the release version
			if len(arg) > 0 && arg[0] != '-' {
				if opts.version != "" {
					return opts, fmt.Errorf("unexpected argument: %s", arg)
				}
				opts.version = arg
			} else {
				return opts, fmt.Errorf("unknown option: %s\nRun 'lilywheel build --help' for usage", arg)
			}
		}
	}

	return opts, nil
}

// loadManifest reads the manifest at path, or falls back to the
// built-in defaults when no path was given and wheels.lua is absent.
func loadManifest(ctx context.Context, path string, detector platform.Detector) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultManifest
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	return config.NewParser(detector).ParseFile(ctx, path)
}

// runBuild handles the `lilywheel build` subcommand
func runBuild(args []string) error {
	opts, err := parseBuildArgs(args)
	if err != nil {
		return err
	}
	if opts.showHelp {
		printBuildHelp()
		return nil
	}
	if opts.version == "" {
		return fmt.Errorf("release version is required\nRun 'lilywheel build --help' for usage")
	}

	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	detector := platform.NewDetector()
	host, err := detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}

	cfg, err := loadManifest(ctx, opts.configPath, detector)
	if err != nil {
		return err
	}

	svc, err := service.NewBuildService(service.Options{
		Config:      cfg,
		WorkDir:     opts.workDir,
		CacheDir:    opts.cacheDir,
		KeyringPath: opts.keyringPath,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	results, buildErr := svc.Build(ctx, service.Request{
		Version:     opts.version,
		BuildNumber: opts.buildNumber,
		Targets:     opts.platforms,
		Host:        host,
		SkipVerify:  opts.skipVerify,
	})

	for _, result := range results {
		fmt.Printf("✓ %s (%s, verified: %s, %s)\n",
			filepath.Base(result.WheelPath),
			result.Target,
			result.Verified,
			result.Duration.Round(time.Millisecond))
	}
	if buildErr != nil {
		return buildErr
	}

	fmt.Printf("\nBuilt %d wheel(s) in %s\n", len(results), opts.workDir)
	return nil
}

// printBuildHelp prints help for the build command
func printBuildHelp() {
	fmt.Println("Usage: lilywheel build [options] <version>")
	fmt.Println()
	fmt.Println("Download the LilyPond release archives for the given version and")
	fmt.Println("repackage them as Python wheels, one per target platform.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help              Show this help message")
	fmt.Println("  -b, --build-number <n>  Wheel build number (default 1)")
	fmt.Println("  -c, --config <path>     Manifest file (default wheels.lua if present)")
	fmt.Println("  -w, --work <dir>        Work directory for trees and wheels (default build)")
	fmt.Println("  --cache <dir>           Download cache directory (default <work>/cache)")
	fmt.Println("  -k, --keyring <path>    GPG keyring for signature verification")
	fmt.Println("  -p, --platform <names>  Targets to build, comma separated or repeated;")
	fmt.Println("                          \"host\" picks the target matching this machine")
	fmt.Println("  --skip-verify           Skip signature verification")
	fmt.Println("  -v, --verbose           Enable debug logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  lilywheel build 2.24.3")
	fmt.Println("  lilywheel build -p linux,windows 2.24.3")
	fmt.Println("  lilywheel build -p host --skip-verify 2.25.1")
}
