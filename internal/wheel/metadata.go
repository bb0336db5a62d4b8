package wheel

import (
	"fmt"
	"path"
	"time"
)

// Synthesized member permissions. The source-tree members keep their
// collected mode bits; generated text members are plain files.
const synthesizedMode = 0o644

// wrapperModule is the root-level Python module shipped in every
// wheel. It resolves bundled executables at runtime relative to the
// installed package.
const wrapperModule = `from pathlib import Path

def executable(script="` + DefaultScript + `"):
    return Path(__file__).parent / "` + BinariesDir + `" / "bin" / script
`

// Synthesize builds the generated members of the wheel: the METADATA
// and WHEEL records under the .dist-info directory, and the wrapper
// module at the tree root.
//
// METADATA and WHEEL are returned with matching RECORD entries so
// their digests land in the manifest. The wrapper module is not
// covered by the manifest. All three carry the given stamp instead of
// a collected filesystem time.
func Synthesize(info BuildInfo, stamp time.Time) ([]Member, []RecordEntry) {
	distInfo := info.DistInfoDir()

	metadata := Member{
		Path:    path.Join(distInfo, "METADATA"),
		Mode:    synthesizedMode,
		ModTime: stamp,
		Data:    []byte(metadataContents(info)),
	}
	wheelFile := Member{
		Path:    path.Join(distInfo, "WHEEL"),
		Mode:    synthesizedMode,
		ModTime: stamp,
		Data:    []byte(wheelContents(info)),
	}
	wrapper := Member{
		Path:    WrapperName,
		Mode:    synthesizedMode,
		ModTime: stamp,
		Data:    []byte(wrapperModule),
	}

	members := []Member{metadata, wheelFile, wrapper}
	entries := []RecordEntry{
		digestEntry(metadata.Path, metadata.Data),
		digestEntry(wheelFile.Path, wheelFile.Data),
	}
	return members, entries
}

// metadataContents renders the core-metadata METADATA record: the
// fixed header fields, a blank separator line, then the verbatim
// description body. An empty description still yields a valid record.
func metadataContents(info BuildInfo) string {
	return fmt.Sprintf(`Metadata-Version: %s
Name: %s
Version: %s
Home-page: %s
License: %s
Summary: %s
Description-Content-Type: text/markdown

%s
`, metadataVersion, info.Name, info.Version, info.Homepage, info.License, info.Summary, info.Description)
}

// wheelContents renders the WHEEL record. Root-Is-Purelib is always
// false: these wheels exist precisely because they ship
// platform-specific binaries.
func wheelContents(info BuildInfo) string {
	return fmt.Sprintf(`Wheel-Version: %s
Generator: %s
Root-Is-Purelib: false
Tag: %s
Build: %d
`, wheelVersion, Generator, info.Tag(), info.Build)
}
