package sfz

import "github.com/sonari-audio/engine/sonari"

func errUnexpectedEOF(where string) error {
	return &sonari.ConfigurationError{Reason: "instrument description ended while parsing " + where}
}

func errUnexpectedTag(where string) error {
	return &sonari.ConfigurationError{Reason: "unexpected '<' while parsing " + where}
}
