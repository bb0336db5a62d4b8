package config

import (
	"fmt"
	"strings"
)

// Generate renders a manifest back into Lua source. Used by the init
// command to write a starter wheels.lua that parses to the same
// config.
func Generate(cfg *Config) string {
	var b strings.Builder

	b.WriteString("-- lilywheel build manifest\n")
	b.WriteString("-- Every field is optional; defaults match official LilyPond releases.\n")
	b.WriteString("wheels = {\n")

	b.WriteString("    package = {\n")
	writeField(&b, 2, luaFieldName, cfg.Package.Name)
	writeField(&b, 2, luaFieldLicense, cfg.Package.License)
	writeField(&b, 2, luaFieldSummary, cfg.Package.Summary)
	writeField(&b, 2, luaFieldHomepage, cfg.Package.Homepage)
	writeField(&b, 2, luaFieldDescriptionFile, cfg.Package.DescriptionFile)
	b.WriteString("    },\n")

	b.WriteString("    release = {\n")
	writeField(&b, 2, luaFieldURL, cfg.Release.URL)
	writeField(&b, 2, luaFieldSignatureSuffix, cfg.Release.SignatureSuffix)
	b.WriteString("    },\n")

	b.WriteString("    targets = {\n")
	for _, t := range cfg.Targets {
		b.WriteString("        {\n")
		writeField(&b, 3, luaFieldName, t.Name)
		writeField(&b, 3, luaFieldArchive, t.Archive)
		writeField(&b, 3, luaFieldTag, t.Tag)
		fmt.Fprintf(&b, "%s%s = %t,\n", indent(3), luaFieldPythonLib, t.PythonLib)
		b.WriteString("        },\n")
	}
	b.WriteString("    },\n")

	b.WriteString("}\n")
	return b.String()
}

func writeField(b *strings.Builder, depth int, field, value string) {
	fmt.Fprintf(b, "%s%s = %q,\n", indent(depth), field, value)
}

func indent(depth int) string {
	return strings.Repeat("    ", depth)
}
