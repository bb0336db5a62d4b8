package wheel

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// deflateLevel is pinned so that two builds compress identically.
const deflateLevel = flate.BestCompression

// Write packs the ordered members into a zip archive at destPath.
//
// The archive is written to a temporary sibling file and renamed into
// place on success, so a crash mid-write never leaves a corrupt file
// at the destination path. On any error the temporary file is
// removed and destPath is untouched.
func Write(destPath string, members []Member) error {
	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if err := writeArchive(tmpFile, members); err != nil {
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp archive: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp archive: %w", err)
	}

	cleanupNeeded = false
	return nil
}

// writeArchive serializes the members, in the given order, with
// deflate compression at a fixed level.
func writeArchive(w io.Writer, members []Member) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, deflateLevel)
	})

	for _, m := range members {
		header := &zip.FileHeader{
			Name:     m.Path,
			Method:   zip.Deflate,
			Modified: m.ModTime,
		}
		header.SetMode(m.Mode)

		f, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("create archive member %s: %w", m.Path, err)
		}
		if _, err := f.Write(m.Data); err != nil {
			return fmt.Errorf("write archive member %s: %w", m.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}
