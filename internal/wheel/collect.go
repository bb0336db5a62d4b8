package wheel

import (
	"fmt"
	"io/fs"

	"github.com/opencontainers/go-digest"
)

// Collect walks every regular file under fsys and returns one Member
// per file, in walk order, together with the matching RECORD entries.
//
// The walk deliberately includes zero-byte placeholder files, so that
// directories which are structurally required but otherwise empty
// survive packaging. Symlinks to files are dereferenced and stored as
// regular members carrying the target's content and metadata, since
// release tarballs ship some files as links and wheels cannot
// represent them. Symlinks to directories and other non-regular
// entries are skipped; a broken symlink is fatal.
//
// Any read error aborts the whole collection: a partially collected
// tree must never be assembled.
func Collect(fsys fs.FS) ([]Member, []RecordEntry, error) {
	var members []Member
	var entries []RecordEntry

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			// fs.Stat follows the link to the target
			resolved, err := fs.Stat(fsys, path)
			if err != nil {
				return fmt.Errorf("resolve symlink %s: %w", path, err)
			}
			if !resolved.Mode().IsRegular() {
				return nil
			}
			info = resolved
		} else if !info.Mode().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		members = append(members, Member{
			Path:    path,
			Mode:    info.Mode().Perm(),
			ModTime: info.ModTime(),
			Data:    data,
		})
		entries = append(entries, digestEntry(path, data))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return members, entries, nil
}

// digestEntry computes the RECORD row for one member. The digest is
// taken over the exact bytes that will be stored, before compression.
func digestEntry(path string, data []byte) RecordEntry {
	return RecordEntry{
		Path:   path,
		Digest: fmt.Sprintf("sha256=%s", digest.SHA256.FromBytes(data).Encoded()),
		Size:   int64(len(data)),
	}
}
