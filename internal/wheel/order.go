package wheel

import (
	"slices"
	"strings"
)

// Member buckets for the second sort pass. General members come
// first, then the bundled library subtree, then the metadata
// directory.
const (
	bucketGeneral  = 0
	bucketLib      = 1
	bucketDistInfo = 2
)

// SortPaths returns a new sequence sorted lexicographically by member
// path. This erases the filesystem walk order, which is not stable
// across platforms or runs, and gives the bucket pass a defined order
// to preserve.
func SortPaths(members []Member) []Member {
	sorted := slices.Clone(members)
	slices.SortStableFunc(sorted, func(a, b Member) int {
		return strings.Compare(a.Path, b.Path)
	})
	return sorted
}

// SortBuckets returns a new sequence partitioned into three buckets
// while preserving the incoming order inside each bucket:
// general members, then the bundled lib/ subtree, then the .dist-info
// directory.
//
// Guile inspects the timestamps of compiled .go files in the lib
// subtree and treats them as stale if they are not newer than their
// .scm sources; since the zip writer assigns times in write order,
// packing the whole subtree after the general members avoids a
// recompile on first load. The metadata directory goes last per the
// wheel specification.
func SortBuckets(members []Member, info BuildInfo) []Member {
	distInfoPrefix := info.DistInfoDir() + "/"

	sorted := slices.Clone(members)
	slices.SortStableFunc(sorted, func(a, b Member) int {
		return bucketOf(a.Path, distInfoPrefix) - bucketOf(b.Path, distInfoPrefix)
	})
	return sorted
}

func bucketOf(path, distInfoPrefix string) int {
	switch {
	case strings.HasPrefix(path, distInfoPrefix):
		return bucketDistInfo
	case strings.HasPrefix(path, LibSubtree):
		return bucketLib
	default:
		return bucketGeneral
	}
}
