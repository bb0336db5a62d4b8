package service

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/jeanas/lilywheel/internal/config"
	"github.com/jeanas/lilywheel/internal/platform"
	"github.com/jeanas/lilywheel/internal/verify"
)

// releaseTarGz builds an in-memory release archive with the layout of
// an official LilyPond tarball.
func releaseTarGz(t *testing.T, version string, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)

	for name, content := range files {
		header := &tar.Header{
			Name: "lilypond-" + version + "/" + name,
			Mode: 0o755,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("write tar header: %v", err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("write tar content: %v", err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gzw.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	return buf.Bytes()
}

func testService(t *testing.T, releaseURL string) *BuildService {
	t.Helper()

	dir := t.TempDir()
	descPath := filepath.Join(dir, "README.md")
	if err := os.WriteFile(descPath, []byte("# Test wheels\n"), 0o644); err != nil {
		t.Fatalf("write description: %v", err)
	}

	cfg := config.Default()
	cfg.Release.URL = releaseURL
	cfg.Release.SignatureSuffix = ""
	cfg.Package.DescriptionFile = descPath

	svc, err := NewBuildService(Options{
		Config:  cfg,
		WorkDir: filepath.Join(dir, "build"),
		Logger:  log.New(io.Discard),
		Clock:   TestClock{FixedTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("NewBuildService failed: %v", err)
	}
	return svc
}

func TestBuildLinuxTarget(t *testing.T) {
	archiveBytes := releaseTarGz(t, "2.24.3", map[string]string{
		"bin/lilypond":                     "#!/bin/sh\n",
		"lib/guile/2.2/ccache/boot-9.go":   "compiled",
		"lib/python3.10/site.py":           "# site",
		"share/lilypond/2.24.3/ly/init.ly": "\\version \"2.24.3\"",
		"lib/lilypond/2.24.3/scm/lily.scm": "(define x 1)",
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archiveBytes)
	}))
	defer server.Close()

	svc := testService(t, server.URL+"/{version}/{archive}")

	results, err := svc.Build(context.Background(), Request{
		Version:     "2.24.3",
		BuildNumber: 1,
		Targets:     []string{"linux"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	result := results[0]
	if result.Target != "linux" {
		t.Errorf("target = %s, want linux", result.Target)
	}
	if result.Verified != verify.MethodNone {
		t.Errorf("verified = %s, want None (no signature suffix)", result.Verified)
	}
	if filepath.Base(result.WheelPath) != "lilypond-2.24.3-1-py3-none-manylinux2014_x86_64.whl" {
		t.Errorf("wheel name = %s", filepath.Base(result.WheelPath))
	}

	zr, err := zip.OpenReader(result.WheelPath)
	if err != nil {
		t.Fatalf("open produced wheel: %v", err)
	}
	defer zr.Close()

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}

	wantMembers := []string{
		"lilypond-binaries/bin/lilypond",
		"lilypond-binaries/lib/python3.10/lib-dynload/.keep",
		"lilypond.py",
		"lilypond-2.24.3.dist-info/METADATA",
		"lilypond-2.24.3.dist-info/WHEEL",
		"lilypond-2.24.3.dist-info/RECORD",
	}
	for _, name := range wantMembers {
		if !names[name] {
			t.Errorf("wheel missing member %s", name)
		}
	}

	// dist-info members come last
	last := zr.File[len(zr.File)-1].Name
	if filepath.Dir(last) != "lilypond-2.24.3.dist-info" {
		t.Errorf("last member = %s, want a dist-info member", last)
	}
}

func TestBuildDeterministicAcrossRuns(t *testing.T) {
	archiveBytes := releaseTarGz(t, "2.24.3", map[string]string{
		"bin/lilypond":           "#!/bin/sh\n",
		"lib/python3.10/site.py": "# site",
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archiveBytes)
	}))
	defer server.Close()

	req := Request{Version: "2.24.3", BuildNumber: 1, Targets: []string{"linux"}}

	var wheels [][]byte
	for i := 0; i < 2; i++ {
		svc := testService(t, server.URL+"/{version}/{archive}")
		results, err := svc.Build(context.Background(), req)
		if err != nil {
			t.Fatalf("run %d: Build failed: %v", i, err)
		}
		data, err := os.ReadFile(results[0].WheelPath)
		if err != nil {
			t.Fatalf("run %d: read wheel: %v", i, err)
		}
		wheels = append(wheels, data)
	}

	if !bytes.Equal(wheels[0], wheels[1]) {
		t.Error("two runs with a fixed clock produced different wheels")
	}
}

func TestBuildDownloadFailureAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	svc := testService(t, server.URL+"/{version}/{archive}")

	results, err := svc.Build(context.Background(), Request{
		Version:     "2.24.3",
		BuildNumber: 1,
		Targets:     []string{"linux"},
	})
	if err == nil {
		t.Fatal("expected error for failing download")
	}
	if len(results) != 0 {
		t.Errorf("got %d results from failed run", len(results))
	}

	// No wheel may exist in the work dir
	matches, _ := filepath.Glob(filepath.Join(svc.workDir, "*.whl"))
	if len(matches) != 0 {
		t.Errorf("failed run left wheel files: %v", matches)
	}
}

func TestBuildRequestValidation(t *testing.T) {
	svc := testService(t, "https://example.invalid/{version}/{archive}")

	tests := []struct {
		name string
		req  Request
	}{
		{"missing_version", Request{BuildNumber: 1}},
		{"negative_build", Request{Version: "2.24.3", BuildNumber: -1}},
		{"unknown_target", Request{Version: "2.24.3", Targets: []string{"beos"}}},
		{"host_without_info", Request{Version: "2.24.3", Targets: []string{"host"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Build(context.Background(), tt.req); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestResolveTargetsHost(t *testing.T) {
	svc := testService(t, "https://example.invalid/{version}/{archive}")

	targets, err := svc.resolveTargets(Request{
		Version: "2.24.3",
		Targets: []string{"host"},
		Host:    &platform.Info{OS: "linux", Arch: "amd64"},
	})
	if err != nil {
		t.Fatalf("resolveTargets failed: %v", err)
	}
	if len(targets) != 1 || targets[0].Name != "linux" {
		t.Errorf("targets = %+v, want [linux]", targets)
	}

	// Duplicates collapse
	targets, err = svc.resolveTargets(Request{
		Version: "2.24.3",
		Targets: []string{"host", "linux"},
		Host:    &platform.Info{OS: "linux", Arch: "amd64"},
	})
	if err != nil {
		t.Fatalf("resolveTargets failed: %v", err)
	}
	if len(targets) != 1 {
		t.Errorf("got %d targets, want 1 after dedup", len(targets))
	}
}

func TestNewBuildServiceValidation(t *testing.T) {
	logger := log.New(io.Discard)

	tests := []struct {
		name string
		opts Options
	}{
		{"missing_config", Options{WorkDir: "w", Logger: logger}},
		{"missing_workdir", Options{Config: config.Default(), Logger: logger}},
		{"missing_logger", Options{Config: config.Default(), WorkDir: "w"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBuildService(tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}
