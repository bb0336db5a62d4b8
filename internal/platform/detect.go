package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect returns the host platform. OS and architecture come from the
// runtime; on Linux, gopsutil supplies distribution details.
//
// Distribution detection failures are not fatal: the distro fields
// stay empty and OS/arch detection still succeeds. Builds target
// foreign platforms anyway, so distro details only inform Lua
// manifests.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	arch, err := normalizeArch(runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}

	info := &Info{
		OS:      runtime.GOOS,
		Arch:    arch,
		ArchRaw: runtime.GOARCH,
	}

	if runtime.GOOS == "linux" {
		id, _, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			return info, nil
		}
		info.DistroID = normalize(id)
		info.DistroVersion = normalize(version)
	}

	return info, nil
}

// normalizeArch converts GOARCH values to normalized architecture
// names. Only amd64 and arm64 hosts are supported.
func normalizeArch(arch string) (string, error) {
	switch arch {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s", arch)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
