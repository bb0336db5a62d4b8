package wheel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path"
	"strconv"
	"time"
)

// BuildRecord serializes the accumulated RECORD entries, in the order
// they were produced, into the manifest member placed at
// <dist-info>/RECORD.
//
// RECORD lists every other member's path, sha256 digest and size. It
// carries no row for itself: a self-referential hash is impossible,
// and the wheel format omits the entry entirely here. The returned
// member must be appended after the entries were gathered and before
// the sort passes, so the two passes cover it like any other member.
func BuildRecord(entries []RecordEntry, info BuildInfo, stamp time.Time) (Member, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, e := range entries {
		row := []string{e.Path, e.Digest, strconv.FormatInt(e.Size, 10)}
		if err := w.Write(row); err != nil {
			return Member{}, fmt.Errorf("write record row for %s: %w", e.Path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Member{}, fmt.Errorf("flush record: %w", err)
	}

	return Member{
		Path:    path.Join(info.DistInfoDir(), "RECORD"),
		Mode:    synthesizedMode,
		ModTime: stamp,
		Data:    buf.Bytes(),
	}, nil
}
