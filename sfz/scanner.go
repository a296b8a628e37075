package sfz

import "strings"

// tokenKind distinguishes the three shapes scanner.nextChar can return: an
// ordinary character, the start of a new "<...>" tag, or end of input.
type tokenKind int

const (
	tokChar tokenKind = iota
	tokNewTag
	tokEOF
)

// scanner walks an instrument description one rune at a time, transparently
// skipping "//" line comments, matching original_source/soundfonts/src/sfz/
// parser.rs's hand-rolled character scanner.
type scanner struct {
	runes []rune
	pos   int
}

func newScanner(text string) *scanner {
	return &scanner{runes: []rune(text)}
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (s *scanner) nextChar() (tokenKind, rune) {
	for s.pos < len(s.runes) {
		c := s.runes[s.pos]
		if c == '/' && s.pos+1 < len(s.runes) && s.runes[s.pos+1] == '/' {
			for s.pos < len(s.runes) && s.runes[s.pos] != '\n' {
				s.pos++
			}
			continue
		}
		s.pos++
		if c == '<' {
			return tokNewTag, 0
		}
		return tokChar, c
	}
	return tokEOF, 0
}

func (s *scanner) nextCharSkipSpace() (tokenKind, rune) {
	for {
		kind, c := s.nextChar()
		if kind == tokChar && isSpace(c) {
			continue
		}
		return kind, c
	}
}

// parseHeader reads the tag name up to the closing '>', assuming the
// opening '<' has already been consumed.
func (s *scanner) parseHeader() (string, error) {
	var b strings.Builder
	for {
		kind, c := s.nextChar()
		switch kind {
		case tokChar:
			if c == '>' {
				return strings.TrimSpace(b.String()), nil
			}
			b.WriteRune(c)
		case tokEOF:
			return "", errUnexpectedEOF("tag header")
		case tokNewTag:
			return "", errUnexpectedTag("tag header")
		}
	}
}

// parseOpcode reads one "key=value" pair, returning ok=false once the
// current scope runs out of opcodes (next tag or end of input).
func (s *scanner) parseOpcode() (key, value string, ok bool, next tokenKind, err error) {
	var keyB strings.Builder
	kind, c := s.nextCharSkipSpace()
	for kind == tokChar && c != '=' {
		keyB.WriteRune(c)
		kind, c = s.nextChar()
	}

	if kind == tokNewTag {
		if keyB.Len() != 0 {
			return "", "", false, tokNewTag, errUnexpectedTag("opcode key")
		}
		return "", "", false, tokNewTag, nil
	}
	if kind == tokEOF {
		return "", "", false, tokEOF, nil
	}

	var valB strings.Builder
	kind, c = s.nextCharSkipSpace()
	for kind == tokChar && !isSpace(c) {
		valB.WriteRune(c)
		kind, c = s.nextChar()
	}

	return strings.TrimSpace(keyB.String()), strings.TrimSpace(valB.String()), true, kind, nil
}
