package wheel

import (
	"fmt"
	"io/fs"
	"time"
)

const (
	// BinariesDir is the fixed directory name the extracted LilyPond
	// tree is renamed to, so the wrapper module can always find it.
	BinariesDir = "lilypond-binaries"

	// LibSubtree is the path prefix of the bundled library subtree
	// that must be packed after the general members.
	LibSubtree = BinariesDir + "/lib/"

	// PlaceholderName is the zero-byte marker file dropped into
	// directories that would otherwise be empty, since the zip-based
	// wheel format cannot represent empty directories.
	PlaceholderName = ".keep"

	// WrapperName is the root-level Python module exposing the
	// executable() lookup function.
	WrapperName = "lilypond.py"

	// DefaultScript is the primary executable resolved by the wrapper
	// module when no script name is given.
	DefaultScript = "lilypond"

	// Generator identifies this tool in the WHEEL metadata record.
	Generator = "lilywheel"

	metadataVersion = "2.1"
	wheelVersion    = "1.0"
	pythonTag       = "py3"
	abiTag          = "none"
)

// BuildInfo is the immutable per-build configuration of one wheel.
// All fields are supplied by the caller; the assembler never reads
// ambient state.
type BuildInfo struct {
	// Name is the distribution name, e.g. "lilypond".
	Name string
	// Version is the upstream release version, e.g. "2.24.3".
	Version string
	// Build is the wheel build number.
	Build int
	// PlatformTag is the wheel platform compatibility tag,
	// e.g. "manylinux2014_x86_64".
	PlatformTag string

	// License, Summary and Homepage fill the corresponding METADATA
	// core-metadata fields.
	License  string
	Summary  string
	Homepage string

	// Description is the long description, verbatim Markdown text.
	Description string
}

// Tag returns the combined interpreter/ABI/platform tag.
func (b BuildInfo) Tag() string {
	return fmt.Sprintf("%s-%s-%s", pythonTag, abiTag, b.PlatformTag)
}

// DistInfoDir returns the metadata directory name, without a trailing
// slash.
func (b BuildInfo) DistInfoDir() string {
	return fmt.Sprintf("%s-%s.dist-info", b.Name, b.Version)
}

// Filename returns the output wheel file name.
func (b BuildInfo) Filename() string {
	return fmt.Sprintf("%s-%s-%d-%s.whl", b.Name, b.Version, b.Build, b.Tag())
}

// Validate checks that the fields required for assembly are present.
func (b BuildInfo) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("build info: name is required")
	}
	if b.Version == "" {
		return fmt.Errorf("build info: version is required")
	}
	if b.Build < 0 {
		return fmt.Errorf("build info: build number must not be negative")
	}
	if b.PlatformTag == "" {
		return fmt.Errorf("build info: platform tag is required")
	}
	return nil
}

// Member is one archive member: path metadata plus raw content bytes.
// Members are constructed once, reordered exactly twice, serialized,
// and discarded.
type Member struct {
	// Path is the slash-separated path relative to the tree root.
	Path string
	// Mode holds the original filesystem permission bits.
	Mode fs.FileMode
	// ModTime is the modification time recorded in the archive.
	ModTime time.Time
	// Data is the full member content.
	Data []byte
}

// RecordEntry is one row of the RECORD integrity manifest:
// relative path, content digest, and byte size.
type RecordEntry struct {
	Path   string
	Digest string // "sha256=<hex>"
	Size   int64
}

// Clock supplies timestamps for synthesized members. Production code
// uses the service clock; tests substitute a fixed one to get
// byte-identical wheels.
type Clock interface {
	Now() time.Time
}
