// Package service provides the high-level build orchestration: for
// each requested target, download the release archive, verify it,
// extract and prepare the source tree, and assemble the wheel.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeanas/lilywheel/internal/archive"
	"github.com/jeanas/lilywheel/internal/config"
	"github.com/jeanas/lilywheel/internal/fetch"
	"github.com/jeanas/lilywheel/internal/platform"
	"github.com/jeanas/lilywheel/internal/verify"
	"github.com/jeanas/lilywheel/internal/wheel"
	"github.com/jeanas/lilywheel/internal/worklock"
)

// BuildService orchestrates wheel builds. One service handles one
// invocation; targets are built sequentially and share nothing but
// the download cache.
type BuildService struct {
	cfg        *config.Config
	workDir    string
	downloader *fetch.Downloader
	verifier   *verify.Verifier
	extractor  *archive.Extractor
	clock      Clock
	logger     *log.Logger
}

// Options configures a BuildService.
type Options struct {
	// Config is the parsed build manifest.
	Config *config.Config
	// WorkDir is where trees are unpacked and wheels are written.
	WorkDir string
	// CacheDir holds downloaded archives across runs. Defaults to a
	// directory under WorkDir.
	CacheDir string
	// KeyringPath is the GPG keyring used for signature checks.
	KeyringPath string
	// Logger receives build progress. Required.
	Logger *log.Logger
	// Clock stamps synthesized wheel members. Defaults to RealClock.
	Clock Clock
}

// Request describes one build invocation.
type Request struct {
	// Version is the upstream release version to repackage.
	Version string
	// BuildNumber is the wheel build number.
	BuildNumber int
	// Targets lists target names to build; empty means all
	// configured targets. The "host" pseudo-target is allowed.
	Targets []string
	// Host is the detected host platform, used to resolve "host".
	Host *platform.Info
	// SkipVerify disables signature verification.
	SkipVerify bool
}

// Result describes one produced wheel.
type Result struct {
	Target    string
	WheelPath string
	Verified  verify.Method
	Duration  time.Duration
}

// NewBuildService creates a build service.
func NewBuildService(opts Options) (*BuildService, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.WorkDir == "" {
		return nil, fmt.Errorf("work directory is required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(opts.WorkDir, "cache")
	}
	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}

	return &BuildService{
		cfg:        opts.Config,
		workDir:    opts.WorkDir,
		downloader: fetch.NewDownloader(cacheDir),
		verifier:   verify.NewVerifier(opts.KeyringPath),
		extractor:  archive.NewExtractor(),
		clock:      clock,
		logger:     opts.Logger,
	}, nil
}

// Build produces one wheel per requested target. The first failing
// target aborts the run; results for already completed targets are
// returned alongside the error.
func (s *BuildService) Build(ctx context.Context, req Request) ([]Result, error) {
	if req.Version == "" {
		return nil, fmt.Errorf("version is required")
	}
	if req.BuildNumber < 0 {
		return nil, fmt.Errorf("build number must not be negative")
	}

	targets, err := s.resolveTargets(req)
	if err != nil {
		return nil, err
	}

	description, err := s.readDescription()
	if err != nil {
		return nil, err
	}

	lock, err := worklock.Acquire(s.workDir)
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	var results []Result
	for _, target := range targets {
		result, err := s.buildTarget(ctx, req, target, description)
		if err != nil {
			return results, fmt.Errorf("build %s: %w", target.Name, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *BuildService) resolveTargets(req Request) ([]platform.Target, error) {
	if len(req.Targets) == 0 {
		return s.cfg.Targets, nil
	}

	var targets []platform.Target
	seen := make(map[string]bool)
	for _, name := range req.Targets {
		target, err := platform.FindTarget(s.cfg.Targets, name, req.Host)
		if err != nil {
			return nil, err
		}
		if seen[target.Name] {
			continue
		}
		seen[target.Name] = true
		targets = append(targets, target)
	}
	return targets, nil
}

// readDescription loads the long description for METADATA. A
// configured file must exist; an empty file is fine and yields an
// empty description body.
func (s *BuildService) readDescription() (string, error) {
	if s.cfg.Package.DescriptionFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(s.cfg.Package.DescriptionFile)
	if err != nil {
		return "", fmt.Errorf("read description: %w", err)
	}
	return string(data), nil
}

func (s *BuildService) buildTarget(ctx context.Context, req Request, target platform.Target, description string) (Result, error) {
	start := s.clock.Now()
	logger := s.logger.With("target", target.Name, "version", req.Version)

	archiveName := target.ArchiveName(req.Version)
	archiveURL := s.cfg.Release.ArchiveURL(req.Version, archiveName)

	logger.Info("downloading release archive", "archive", archiveName)
	archivePath, err := s.downloader.Archive(ctx, target.Name, req.Version, archiveURL)
	if err != nil {
		return Result{}, err
	}

	verified, err := s.verifyArchive(ctx, req, target, archiveName, archivePath, logger)
	if err != nil {
		return Result{}, err
	}

	treeDir := filepath.Join(s.workDir, target.Name)
	if err := os.RemoveAll(treeDir); err != nil {
		return Result{}, fmt.Errorf("clear tree dir: %w", err)
	}

	logger.Info("extracting archive")
	if err := s.extractor.Extract(archivePath, treeDir, target.Format()); err != nil {
		return Result{}, fmt.Errorf("extract archive: %w", err)
	}

	if err := prepareTree(treeDir); err != nil {
		return Result{}, err
	}
	if target.PythonLib {
		if err := ensurePythonPlaceholder(treeDir); err != nil {
			return Result{}, err
		}
	}

	info := wheel.BuildInfo{
		Name:        s.cfg.Package.Name,
		Version:     req.Version,
		Build:       req.BuildNumber,
		PlatformTag: target.Tag,
		License:     s.cfg.Package.License,
		Summary:     s.cfg.Package.Summary,
		Homepage:    s.cfg.Package.Homepage,
		Description: description,
	}
	assembler, err := wheel.NewAssembler(info, s.clock)
	if err != nil {
		return Result{}, err
	}

	wheelPath := filepath.Join(s.workDir, info.Filename())
	logger.Info("packing wheel", "wheel", info.Filename())
	if err := assembler.Assemble(os.DirFS(treeDir), wheelPath); err != nil {
		return Result{}, err
	}

	return Result{
		Target:    target.Name,
		WheelPath: wheelPath,
		Verified:  verified,
		Duration:  s.clock.Now().Sub(start),
	}, nil
}

// verifyArchive checks the downloaded archive against its detached
// signature when the release publishes one.
func (s *BuildService) verifyArchive(ctx context.Context, req Request, target platform.Target, archiveName, archivePath string, logger *log.Logger) (verify.Method, error) {
	if req.SkipVerify {
		logger.Warn("signature verification skipped")
		return verify.MethodNone, nil
	}

	sigURL := s.cfg.Release.SignatureURL(req.Version, archiveName)
	if sigURL == "" {
		logger.Warn("release publishes no signatures, archive is unverified")
		return verify.MethodNone, nil
	}

	sigPath, err := s.downloader.Signature(ctx, target.Name, req.Version, sigURL)
	if err != nil {
		return verify.MethodNone, err
	}

	result, err := s.verifier.VerifyDetached(archivePath, sigPath)
	if err != nil {
		return verify.MethodNone, fmt.Errorf("verify archive: %w", err)
	}
	logger.Info("archive verified", "method", result.Method.String())
	return result.Method, nil
}
