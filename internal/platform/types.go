// Package platform models the wheel build targets and detects the
// host platform.
//
// A Target describes one official LilyPond release archive and the
// wheel platform tag its repackaged binaries are compatible with. The
// host side detects OS, architecture and (on Linux) distribution
// details, which are exposed read-only to Lua build manifests and
// used to resolve the "host" pseudo-target.
package platform

import "context"

// Info contains host platform detection information.
type Info struct {
	OS      string // "linux", "darwin", "windows"
	Arch    string // "amd64", "arm64" (normalized)
	ArchRaw string // original GOARCH value

	// Linux distribution details, empty on other systems or when
	// detection fails.
	DistroID      string // e.g. "ubuntu"
	DistroVersion string // e.g. "22.04"
}

// IsLinux returns true if the host runs Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the host runs macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the host runs Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsAMD64 returns true for x86-64 hosts.
func (i *Info) IsAMD64() bool {
	return i.Arch == "amd64"
}

// IsARM64 returns true for 64-bit ARM hosts.
func (i *Info) IsARM64() bool {
	return i.Arch == "arm64"
}

// Detector provides host platform detection. The interface exists so
// config parsing and target resolution can be tested with a canned
// Info instead of the real host.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
