package wheel

import (
	"testing"
)

func member(path string) Member {
	return Member{Path: path, Mode: 0o644, Data: []byte(path)}
}

func paths(members []Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Path
	}
	return out
}

func TestSortPaths(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "already_sorted",
			input: []string{"a.txt", "b.txt", "c.txt"},
			want:  []string{"a.txt", "b.txt", "c.txt"},
		},
		{
			name:  "reversed",
			input: []string{"c.txt", "b.txt", "a.txt"},
			want:  []string{"a.txt", "b.txt", "c.txt"},
		},
		{
			name:  "walk_order_leaks_erased",
			input: []string{"lilypond.py", "lilypond-binaries/bin/lilypond", "README.md"},
			want:  []string{"README.md", "lilypond-binaries/bin/lilypond", "lilypond.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input []Member
			for _, p := range tt.input {
				input = append(input, member(p))
			}

			got := paths(SortPaths(input))
			if len(got) != len(tt.want) {
				t.Fatalf("got %d members, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("position %d: got %s, want %s", i, got[i], tt.want[i])
				}
			}

			// Input must not be reordered in place
			for i, p := range tt.input {
				if input[i].Path != p {
					t.Errorf("input mutated at %d: got %s, want %s", i, input[i].Path, p)
				}
			}
		})
	}
}

func TestBucketOf(t *testing.T) {
	info := BuildInfo{Name: "lilypond", Version: "2.24.3", Build: 1, PlatformTag: "win_amd64"}
	distInfoPrefix := info.DistInfoDir() + "/"

	tests := []struct {
		path string
		want int
	}{
		{"lilypond.py", bucketGeneral},
		{"lilypond-binaries/bin/lilypond", bucketGeneral},
		{"lilypond-binaries/share/fonts/emmentaler.otf", bucketGeneral},
		{"lilypond-binaries/lib/guile/2.2/ccache/ice-9/boot-9.go", bucketLib},
		{"lilypond-binaries/lib/lilypond/2.24.3/python/lilylib.py", bucketLib},
		{"lilypond-2.24.3.dist-info/METADATA", bucketDistInfo},
		{"lilypond-2.24.3.dist-info/RECORD", bucketDistInfo},
		// A file merely sharing the dist-info name prefix stays general
		{"lilypond-2.24.3.dist-info.bak", bucketGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := bucketOf(tt.path, distInfoPrefix); got != tt.want {
				t.Errorf("bucketOf(%s) = %d, want %d", tt.path, got, tt.want)
			}
		})
	}
}

func TestSortBuckets(t *testing.T) {
	info := BuildInfo{Name: "lilypond", Version: "2.24.3", Build: 1, PlatformTag: "manylinux2014_x86_64"}

	input := []Member{
		member("lilypond-2.24.3.dist-info/METADATA"),
		member("lilypond-2.24.3.dist-info/RECORD"),
		member("lilypond-2.24.3.dist-info/WHEEL"),
		member("lilypond-binaries/bin/lilypond"),
		member("lilypond-binaries/lib/guile/2.2/ccache/boot-9.go"),
		member("lilypond-binaries/lib/lilypond/2.24.3/scm/lily.scm"),
		member("lilypond.py"),
	}

	want := []string{
		"lilypond-binaries/bin/lilypond",
		"lilypond.py",
		"lilypond-binaries/lib/guile/2.2/ccache/boot-9.go",
		"lilypond-binaries/lib/lilypond/2.24.3/scm/lily.scm",
		"lilypond-2.24.3.dist-info/METADATA",
		"lilypond-2.24.3.dist-info/RECORD",
		"lilypond-2.24.3.dist-info/WHEEL",
	}

	got := paths(SortBuckets(input, info))
	if len(got) != len(want) {
		t.Fatalf("got %d members, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

// The bucket pass must preserve the alphabetical order from the first
// pass inside each bucket, even when the input interleaves buckets.
func TestSortBucketsStable(t *testing.T) {
	info := BuildInfo{Name: "lilypond", Version: "2.24.3", Build: 1, PlatformTag: "manylinux2014_x86_64"}

	input := []Member{
		member("lilypond-binaries/lib/a.go"),
		member("aaa.txt"),
		member("lilypond-binaries/lib/b.go"),
		member("bbb.txt"),
		member("lilypond-binaries/lib/c.go"),
	}

	got := paths(SortBuckets(input, info))
	want := []string{
		"aaa.txt",
		"bbb.txt",
		"lilypond-binaries/lib/a.go",
		"lilypond-binaries/lib/b.go",
		"lilypond-binaries/lib/c.go",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}
