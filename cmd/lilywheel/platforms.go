package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jeanas/lilywheel/internal/platform"
)

// runPlatforms handles the `lilywheel platforms` subcommand
func runPlatforms(args []string) error {
	showHelp := false
	configPath := ""

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			showHelp = true
		case "--config", "-c":
			i++
			if i >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			configPath = args[i]
		default:
			return fmt.Errorf("unknown option: %s\nRun 'lilywheel platforms --help' for usage", arg)
		}
	}

	if showHelp {
		printPlatformsHelp()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	detector := platform.NewDetector()
	host, err := detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}

	cfg, err := loadManifest(ctx, configPath, detector)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %-32s %s\n", "NAME", "WHEEL TAG", "ARCHIVE")
	for _, target := range cfg.Targets {
		name := target.Name
		if matchesHost(target, host) {
			name += " *"
		}
		fmt.Printf("%-12s %-32s %s\n", name, target.Tag, target.Archive)
	}
	fmt.Println()
	fmt.Println("* matches this machine (usable as \"host\")")
	return nil
}

// matchesHost reports whether the target would be selected by the
// "host" pseudo-target on the detected platform.
func matchesHost(target platform.Target, host *platform.Info) bool {
	resolved, err := platform.FindTarget([]platform.Target{target}, platform.HostTarget, host)
	return err == nil && resolved.Name == target.Name
}

// printPlatformsHelp prints help for the platforms command
func printPlatformsHelp() {
	fmt.Println("Usage: lilywheel platforms [options]")
	fmt.Println()
	fmt.Println("List the build targets of the active manifest.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help           Show this help message")
	fmt.Println("  -c, --config <path>  Manifest file (default wheels.lua if present)")
}
