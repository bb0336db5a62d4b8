package main

import (
	"fmt"
	"os"

	"github.com/jeanas/lilywheel/internal/config"
)

// runInit handles the `lilywheel init` subcommand
func runInit(args []string) error {
	showHelp := false
	force := false
	path := defaultManifest

	var positional []string
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			showHelp = true
		case "--force", "-f":
			force = true
		default:
			if len(arg) > 0 && arg[0] != '-' {
				positional = append(positional, arg)
			} else {
				return fmt.Errorf("unknown option: %s\nRun 'lilywheel init --help' for usage", arg)
			}
		}
	}

	if showHelp {
		printInitHelp()
		return nil
	}

	switch len(positional) {
	case 0:
	case 1:
		path = positional[0]
	default:
		return fmt.Errorf("expected at most one path argument")
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists\nUse --force to overwrite it", path)
		}
	}

	manifest := config.Generate(config.Default())
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	fmt.Printf("✓ Wrote %s\n", path)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Adjust package metadata and targets in the manifest")
	fmt.Println("  2. Run: lilywheel build <version>")
	return nil
}

// printInitHelp prints help for the init command
func printInitHelp() {
	fmt.Println("Usage: lilywheel init [options] [path]")
	fmt.Println()
	fmt.Println("Write a starter build manifest describing official LilyPond")
	fmt.Println("releases. The default path is wheels.lua in the current directory.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help   Show this help message")
	fmt.Println("  -f, --force  Overwrite an existing manifest")
}
