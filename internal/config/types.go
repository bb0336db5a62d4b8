package config

import (
	"fmt"
	"strings"

	"github.com/jeanas/lilywheel/internal/platform"
)

// Config is the parsed build manifest.
type Config struct {
	Package Package
	Release Release
	Targets []platform.Target
}

// Package holds the metadata written into the generated wheel.
type Package struct {
	// Name is the distribution name.
	Name string
	// License is an SPDX license expression.
	License string
	// Summary is the one-line METADATA summary.
	Summary string
	// Homepage fills the Home-page METADATA field.
	Homepage string
	// DescriptionFile is the path of a Markdown file whose contents
	// become the long description. Relative to the working directory.
	DescriptionFile string
}

// Release describes where release archives are downloaded from.
type Release struct {
	// URL is the download URL template; "{version}" and "{archive}"
	// are expanded per build.
	URL string
	// SignatureSuffix, when non-empty, is appended to the archive URL
	// to locate its detached GPG signature.
	SignatureSuffix string
}

// ArchiveURL expands the release URL template.
func (r Release) ArchiveURL(version, archive string) string {
	url := strings.ReplaceAll(r.URL, "{version}", version)
	return strings.ReplaceAll(url, "{archive}", archive)
}

// SignatureURL returns the detached signature URL, or "" when the
// release publishes no signatures.
func (r Release) SignatureURL(version, archive string) string {
	if r.SignatureSuffix == "" {
		return ""
	}
	return r.ArchiveURL(version, archive) + r.SignatureSuffix
}

// Default returns the manifest for official LilyPond releases. It is
// used verbatim when no wheels.lua exists, and as the base that a
// manifest's fields override.
func Default() *Config {
	return &Config{
		Package: Package{
			Name:            "lilypond",
			License:         "GPL-3.0-or-later",
			Summary:         "A redistribution of LilyPond to use it easily from Python code.",
			Homepage:        "https://gitlab.com/jeanas/lilypond-wheels.git",
			DescriptionFile: "README.md",
		},
		Release: Release{
			URL:             "https://gitlab.com/lilypond/lilypond/-/releases/v{version}/downloads/{archive}",
			SignatureSuffix: ".sig",
		},
		Targets: platform.DefaultTargets(),
	}
}

// Validate checks the manifest for use by a build.
func (c *Config) Validate() error {
	if c.Package.Name == "" {
		return fmt.Errorf("config: package name is required")
	}
	if strings.ContainsAny(c.Package.Name, "-/ ") {
		return fmt.Errorf("config: package name %q must not contain '-', '/' or spaces", c.Package.Name)
	}
	if c.Release.URL == "" {
		return fmt.Errorf("config: release url is required")
	}
	if len(c.Targets) == 0 {
		return fmt.Errorf("config: at least one target is required")
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if t.Name == platform.HostTarget {
			return fmt.Errorf("config: target name %q is reserved", platform.HostTarget)
		}
		if seen[t.Name] {
			return fmt.Errorf("config: duplicate target %s", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}
