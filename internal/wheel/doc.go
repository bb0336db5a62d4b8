// Package wheel assembles Python binary-distribution (wheel) archives
// from a populated source tree of prebuilt LilyPond binaries.
//
// The assembler does not compile or modify binaries. It walks a
// prepared directory tree, synthesizes the standard wheel metadata
// members (METADATA, WHEEL, a wrapper module, and the RECORD integrity
// manifest), and packs everything into a single zip archive with fully
// deterministic member ordering.
//
// # Determinism
//
// Two builds from the same tree and build info produce byte-identical
// wheels when the same Clock is used. Determinism rests on three
// rules:
//   - members are sorted lexicographically by path, erasing the
//     filesystem walk order
//   - a stable bucket pass then moves the bundled lib/ subtree and the
//     .dist-info directory to the end of the archive
//   - the zip writer uses a fixed deflate implementation and level
//
// The bucket pass exists because Guile compares timestamps of compiled
// .go files in the bundled lib/ subtree against their .scm sources;
// writing the whole subtree after the general files keeps the compiled
// artifacts at least as new as their sources. The .dist-info directory
// goes last per the wheel specification's recommendation.
//
// # Pipeline
//
//	members := Collect(fsys)
//	members += Synthesize(info)
//	members += BuildRecord(entries)
//	Write(dest, SortBuckets(SortPaths(members), info))
//
// Assembler ties the steps together; each step is a pure function over
// the member sequence and is testable in isolation.
package wheel
