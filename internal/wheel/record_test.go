package wheel

import (
	"strings"
	"testing"
	"time"
)

func TestBuildRecord(t *testing.T) {
	entries := []RecordEntry{
		{Path: "lilypond-binaries/bin/lilypond", Digest: "sha256=aaaa", Size: 20},
		{Path: "lilypond-2.24.3.dist-info/METADATA", Digest: "sha256=bbbb", Size: 310},
	}
	stamp := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	record, err := BuildRecord(entries, testInfo(), stamp)
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}

	if got, want := record.Path, "lilypond-2.24.3.dist-info/RECORD"; got != want {
		t.Errorf("record path = %s, want %s", got, want)
	}
	if !record.ModTime.Equal(stamp) {
		t.Errorf("record mtime = %v, want %v", record.ModTime, stamp)
	}

	want := "lilypond-binaries/bin/lilypond,sha256=aaaa,20\n" +
		"lilypond-2.24.3.dist-info/METADATA,sha256=bbbb,310\n"
	if got := string(record.Data); got != want {
		t.Errorf("record contents:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// RECORD does not list itself: a self-referential hash is omitted by
// the format.
func TestBuildRecordNoSelfRow(t *testing.T) {
	entries := []RecordEntry{
		{Path: "lilypond.png", Digest: "sha256=cccc", Size: 5},
	}

	record, err := BuildRecord(entries, testInfo(), time.Time{})
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}
	if strings.Contains(string(record.Data), "RECORD") {
		t.Errorf("record lists itself:\n%s", record.Data)
	}
}

// Entry order is the production order; BuildRecord must not sort.
func TestBuildRecordPreservesOrder(t *testing.T) {
	entries := []RecordEntry{
		{Path: "zzz.txt", Digest: "sha256=1", Size: 1},
		{Path: "aaa.txt", Digest: "sha256=2", Size: 2},
	}

	record, err := BuildRecord(entries, testInfo(), time.Time{})
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(record.Data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "zzz.txt,") || !strings.HasPrefix(lines[1], "aaa.txt,") {
		t.Errorf("rows reordered:\n%s", record.Data)
	}
}

func TestBuildRecordEmpty(t *testing.T) {
	record, err := BuildRecord(nil, testInfo(), time.Time{})
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}
	if len(record.Data) != 0 {
		t.Errorf("empty entry list produced %d bytes", len(record.Data))
	}
}
