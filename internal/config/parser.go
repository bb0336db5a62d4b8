package config

import (
	"context"
	"fmt"
	"os"

	"github.com/jeanas/lilywheel/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Parser parses Lua build manifests with host platform injection.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a manifest parser. The detector may be nil, in
// which case no platform table is injected.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseError is a manifest parsing error with a user-facing message
// and the raw Lua detail.
type ParseError struct {
	Message string
	Detail  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// ParseFile parses a manifest from disk.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return p.ParseString(ctx, string(code))
}

// ParseString parses a manifest from a string. Useful for tests and
// in-memory manifests.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// extractConfig reads the global "wheels" table into a Config.
// Missing fields keep the default values, so a manifest only has to
// state what differs from an official LilyPond build.
func extractConfig(L *lua.LState) (*Config, error) {
	wheelsTable := L.GetGlobal(luaGlobalWheels)
	if wheelsTable.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: fmt.Sprintf("missing or invalid %q table", luaGlobalWheels),
			Detail:  fmt.Sprintf("expected table, got %s", wheelsTable.Type()),
		}
	}

	cfg := Default()
	table := wheelsTable.(*lua.LTable)

	if pkgVal := table.RawGetString(luaFieldPackage); pkgVal.Type() == lua.LTTable {
		extractPackage(pkgVal.(*lua.LTable), &cfg.Package)
	}
	if relVal := table.RawGetString(luaFieldRelease); relVal.Type() == lua.LTTable {
		extractRelease(relVal.(*lua.LTable), &cfg.Release)
	}
	if targetsVal := table.RawGetString(luaFieldTargets); targetsVal.Type() == lua.LTTable {
		targets, err := extractTargets(targetsVal.(*lua.LTable))
		if err != nil {
			return nil, err
		}
		cfg.Targets = targets
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{
			Message: "invalid manifest",
			Detail:  err.Error(),
		}
	}
	return cfg, nil
}

func extractPackage(table *lua.LTable, pkg *Package) {
	setString(table, luaFieldName, &pkg.Name)
	setString(table, luaFieldLicense, &pkg.License)
	setString(table, luaFieldSummary, &pkg.Summary)
	setString(table, luaFieldHomepage, &pkg.Homepage)
	setString(table, luaFieldDescriptionFile, &pkg.DescriptionFile)
}

func extractRelease(table *lua.LTable, rel *Release) {
	setString(table, luaFieldURL, &rel.URL)
	// An explicit empty string disables signature downloads
	if v := table.RawGetString(luaFieldSignatureSuffix); v.Type() == lua.LTString {
		rel.SignatureSuffix = string(v.(lua.LString))
	}
}

func extractTargets(table *lua.LTable) ([]platform.Target, error) {
	var targets []platform.Target
	var extractErr error

	table.ForEach(func(_, value lua.LValue) {
		if extractErr != nil {
			return
		}
		entry, ok := value.(*lua.LTable)
		if !ok {
			extractErr = &ParseError{
				Message: "invalid targets table",
				Detail:  fmt.Sprintf("expected table entries, got %s", value.Type()),
			}
			return
		}

		var t platform.Target
		setString(entry, luaFieldName, &t.Name)
		setString(entry, luaFieldArchive, &t.Archive)
		setString(entry, luaFieldTag, &t.Tag)
		if v := entry.RawGetString(luaFieldPythonLib); v.Type() == lua.LTBool {
			t.PythonLib = bool(v.(lua.LBool))
		}
		targets = append(targets, t)
	})

	if extractErr != nil {
		return nil, extractErr
	}
	return targets, nil
}

// setString copies a string field out of a Lua table when present,
// leaving the destination untouched otherwise.
func setString(table *lua.LTable, field string, dest *string) {
	if v := table.RawGetString(field); v.Type() == lua.LTString {
		if s := string(v.(lua.LString)); s != "" {
			*dest = s
		}
	}
}
