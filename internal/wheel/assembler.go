package wheel

import (
	"fmt"
	"io/fs"
)

// Assembler turns one prepared source tree into one wheel file. It
// holds no state between builds; concurrent Assemblers over distinct
// trees are independent.
type Assembler struct {
	info  BuildInfo
	clock Clock
}

// NewAssembler creates an assembler for one build configuration.
func NewAssembler(info BuildInfo, clock Clock) (*Assembler, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		return nil, fmt.Errorf("clock is required")
	}
	return &Assembler{info: info, clock: clock}, nil
}

// Assemble runs the full pipeline over fsys and writes the wheel to
// destPath: collect, synthesize metadata, build RECORD, two sort
// passes, write. Any error is fatal for this build; no partial wheel
// is left at destPath.
func (a *Assembler) Assemble(fsys fs.FS, destPath string) error {
	members, err := a.Members(fsys)
	if err != nil {
		return err
	}
	if err := Write(destPath, members); err != nil {
		return fmt.Errorf("write wheel: %w", err)
	}
	return nil
}

// Members produces the final ordered member sequence without writing
// it. Split out from Assemble so ordering and manifest properties can
// be checked without touching disk.
func (a *Assembler) Members(fsys fs.FS) ([]Member, error) {
	members, entries, err := Collect(fsys)
	if err != nil {
		return nil, fmt.Errorf("collect source tree: %w", err)
	}

	stamp := a.clock.Now()

	synthesized, synthEntries := Synthesize(a.info, stamp)
	members = append(members, synthesized...)
	entries = append(entries, synthEntries...)

	record, err := BuildRecord(entries, a.info, stamp)
	if err != nil {
		return nil, fmt.Errorf("build record: %w", err)
	}
	members = append(members, record)

	return SortBuckets(SortPaths(members), a.info), nil
}
