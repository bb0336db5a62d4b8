package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	// Handle subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("lilywheel %s\n", Version)
			return
		case "build":
			// Handle lilywheel build subcommand
			if err := runBuild(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "init":
			// Handle lilywheel init subcommand
			if err := runInit(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "platforms":
			// Handle lilywheel platforms subcommand
			if err := runPlatforms(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// Default: show help
	fmt.Println("lilywheel - repackage LilyPond release archives as Python wheels")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  lilywheel --version             Show version information")
	fmt.Println("  lilywheel build [options] <ver> Build wheels for a LilyPond release")
	fmt.Println("  lilywheel init [path]           Write a starter wheels.lua manifest")
	fmt.Println("  lilywheel platforms [options]   List configured build targets")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  lilywheel build 2.24.3")
	fmt.Println("  lilywheel build --platform linux --build-number 2 2.24.3")
}
