package platform

import (
	"fmt"
	"strings"
)

// Format is the container format of a release archive.
type Format int

const (
	// FormatTarGz is a gzip-compressed tarball.
	FormatTarGz Format = iota
	// FormatZip is a zip archive.
	FormatZip
)

// HostTarget is the pseudo-target name resolved against the detected
// host platform.
const HostTarget = "host"

// Target describes one build target: which official release archive
// to repackage and which wheel platform tag the result carries.
type Target struct {
	// Name identifies the target on the command line ("linux",
	// "windows", "macos").
	Name string
	// Archive is the release archive file name, with "{version}"
	// expanded at build time.
	Archive string
	// Tag is the wheel platform compatibility tag.
	Tag string
	// PythonLib marks targets whose archive bundles a lib/python*
	// directory that needs an empty-directory placeholder.
	PythonLib bool
}

// ArchiveName expands the archive template for a concrete version.
func (t Target) ArchiveName(version string) string {
	return strings.ReplaceAll(t.Archive, "{version}", version)
}

// Format derives the container format from the archive extension.
func (t Target) Format() Format {
	if strings.HasSuffix(t.Archive, ".zip") {
		return FormatZip
	}
	return FormatTarGz
}

// Validate checks that the target is usable.
func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target: name is required")
	}
	if t.Archive == "" {
		return fmt.Errorf("target %s: archive is required", t.Name)
	}
	if t.Tag == "" {
		return fmt.Errorf("target %s: platform tag is required", t.Name)
	}
	return nil
}

// DefaultTargets returns the targets for the official LilyPond
// release archives.
//
// The Linux binaries are built on CentOS 7, which corresponds to the
// manylinux2014 ABI. The macOS binaries are built on macOS 10.15;
// there are no Apple Silicon builds yet.
func DefaultTargets() []Target {
	return []Target{
		{
			Name:      "linux",
			Archive:   "lilypond-{version}-linux-x86_64.tar.gz",
			Tag:       "manylinux2014_x86_64",
			PythonLib: true,
		},
		{
			Name:    "windows",
			Archive: "lilypond-{version}-mingw-x86_64.zip",
			Tag:     "win_amd64",
		},
		{
			Name:      "macos",
			Archive:   "lilypond-{version}-darwin-x86_64.tar.gz",
			Tag:       "macosx_10_15_x86_64",
			PythonLib: true,
		},
	}
}

// FindTarget resolves a target name against a target list. The "host"
// pseudo-target is resolved from the detected host platform first.
func FindTarget(targets []Target, name string, host *Info) (Target, error) {
	if name == HostTarget {
		resolved, err := hostTargetName(host)
		if err != nil {
			return Target{}, err
		}
		name = resolved
	}

	for _, t := range targets {
		if t.Name == name {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("unknown target: %s", name)
}

// hostTargetName maps the detected host OS to a default target name.
func hostTargetName(host *Info) (string, error) {
	if host == nil {
		return "", fmt.Errorf("host platform info is required to resolve the %q target", HostTarget)
	}
	switch {
	case host.IsLinux():
		return "linux", nil
	case host.IsWindows():
		return "windows", nil
	case host.IsMacOS():
		return "macos", nil
	default:
		return "", fmt.Errorf("no default target for host OS %s", host.OS)
	}
}
