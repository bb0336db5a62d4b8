// Package config loads the optional Lua build manifest (wheels.lua)
// describing what to repackage: package metadata for the generated
// wheel, the release download location, and the target table.
//
// Manifests are declarative Lua evaluated in a restricted sandbox: no
// filesystem access, no process execution, no module loading. The
// detected host platform is available as a read-only "platform"
// table, so a manifest can vary targets by host without touching
// ambient state.
//
// Every field is optional; missing fields fall back to the defaults
// for official LilyPond releases. A missing manifest file is not an
// error.
//
// Example manifest:
//
//	wheels = {
//	    package = {
//	        name = "lilypond",
//	        license = "GPL-3.0-or-later",
//	        summary = "A redistribution of LilyPond to use it easily from Python code.",
//	        homepage = "https://gitlab.com/jeanas/lilypond-wheels.git",
//	        description_file = "README.md",
//	    },
//	    release = {
//	        url = "https://gitlab.com/lilypond/lilypond/-/releases/v{version}/downloads/{archive}",
//	        signature_suffix = ".sig",
//	    },
//	    targets = {
//	        { name = "linux", archive = "lilypond-{version}-linux-x86_64.tar.gz",
//	          tag = "manylinux2014_x86_64", python_lib = true },
//	    },
//	}
package config
