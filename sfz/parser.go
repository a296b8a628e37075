package sfz

import (
	"path/filepath"
	"strings"

	"github.com/sonari-audio/engine/sonari"
)

// Parse reads an instrument description and returns its regions in
// declaration order, each the merge of its enclosing group's opcodes (as of
// the region's own header) with its own overrides. sample opcodes are
// resolved relative to baseDir, normally the description file's directory
// (spec.md §4.5/§6).
func Parse(text, baseDir string) ([]Descriptor, error) {
	s := newScanner(text)

	if kind, _ := s.nextCharSkipSpace(); kind != tokNewTag {
		return nil, &sonari.ConfigurationError{Reason: "expected a <group> or <region> tag at the start of the instrument description"}
	}

	currentGroup := defaultRegionState()
	var descriptors []Descriptor

	for {
		header, err := s.parseHeader()
		if err != nil {
			return nil, err
		}

		var next tokenKind
		switch strings.TrimSpace(header) {
		case "group":
			grp, n, perr := parseRegion(s, defaultRegionState())
			if perr != nil {
				return nil, perr
			}
			currentGroup = grp
			next = n
		case "region":
			reg, n, perr := parseRegion(s, currentGroup)
			if perr != nil {
				return nil, perr
			}
			descriptors = append(descriptors, Descriptor{
				Params:     reg.params,
				SamplePath: resolveSamplePath(baseDir, reg.samplePath),
			})
			next = n
		default:
			return nil, &sonari.ConfigurationError{Opcode: header, Reason: "unknown tag"}
		}

		if next != tokNewTag {
			break
		}
	}

	return descriptors, nil
}

// parseRegion reads opcodes into a clone of base until the scope ends
// (another tag begins, or input runs out).
func parseRegion(s *scanner, base regionState) (regionState, tokenKind, error) {
	state := base.clone()

	for {
		key, value, ok, next, err := s.parseOpcode()
		if err != nil {
			return regionState{}, next, err
		}
		if !ok {
			return state, next, nil
		}
		if err := takeOpcode(&state, key, value); err != nil {
			return regionState{}, next, err
		}
		if next == tokNewTag {
			return state, next, nil
		}
	}
}

func resolveSamplePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
