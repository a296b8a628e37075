// Package sfz parses the hierarchical instrument-description text format
// into a flat, ordered list of region descriptors ready for engine
// construction.
//
// Grounded on original_source/soundfonts/src/sfz/parser.rs for the exact
// opcode grammar and error taxonomy, and on the teacher's own hand-rolled
// text-format scanners (ahx_parser.go, sid_parser.go) for the idiom of a
// small rune-at-a-time scanner over a domain text format.
package sfz

import "github.com/sonari-audio/engine/region"

// Descriptor is one parsed region: its fully merged parameters (group
// defaults overridden by region-local opcodes) plus the sample path it
// names, already joined with the description file's directory when given
// as a relative path.
type Descriptor struct {
	Params     region.Params
	SamplePath string
}

type regionState struct {
	params     region.Params
	samplePath string
}

func defaultRegionState() regionState {
	return regionState{params: region.DefaultParams()}
}

// clone deep-copies the mutable OnCCs map so sibling regions under the same
// group never share map storage.
func (r regionState) clone() regionState {
	cp := r
	cp.params.OnCCs = make(map[int]region.CCRange, len(r.params.OnCCs))
	for k, v := range r.params.OnCCs {
		cp.params.OnCCs[k] = v
	}
	return cp
}
