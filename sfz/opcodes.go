package sfz

import (
	"strconv"
	"strings"

	"github.com/sonari-audio/engine/region"
	"github.com/sonari-audio/engine/sonari"
)

func rangeErr(opcode string, lo, hi, value interface{}) error {
	return &sonari.ConfigurationError{
		Opcode: opcode,
		Value:  fmtValue(value),
		Reason: fmtRange(lo, hi),
	}
}

func flippedErr(opcode string, value, other interface{}) error {
	return &sonari.ConfigurationError{
		Opcode: opcode,
		Value:  fmtValue(value),
		Reason: "flipped range against " + fmtValue(other),
	}
}

func fmtValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return ""
	}
}

func fmtRange(lo, hi interface{}) string {
	return "out of range [" + fmtValue(lo) + ".." + fmtValue(hi) + "]"
}

func parseInt(opcode, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &sonari.ConfigurationError{Opcode: opcode, Value: value, Reason: "not an integer"}
	}
	return n, nil
}

func parseFloat(opcode, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &sonari.ConfigurationError{Opcode: opcode, Value: value, Reason: "not a number"}
	}
	return f, nil
}

func setLoKey(p *region.Params, note int) error {
	if note == -1 {
		p.KeyRange.LoDisabled = true
		return nil
	}
	if note < 0 || note > 127 {
		return rangeErr("lokey", 0, 127, note)
	}
	if !p.KeyRange.HiDisabled && note > p.KeyRange.Hi {
		return flippedErr("lokey", note, p.KeyRange.Hi)
	}
	p.KeyRange.LoDisabled = false
	p.KeyRange.Lo = note
	return nil
}

func setHiKey(p *region.Params, note int) error {
	if note == -1 {
		p.KeyRange.HiDisabled = true
		return nil
	}
	if note < 0 || note > 127 {
		return rangeErr("hikey", 0, 127, note)
	}
	if !p.KeyRange.LoDisabled && note < p.KeyRange.Lo {
		return flippedErr("hikey", note, p.KeyRange.Lo)
	}
	p.KeyRange.HiDisabled = false
	p.KeyRange.Hi = note
	return nil
}

func setLoVel(p *region.Params, v int) error {
	if v < 0 || v > 127 {
		return rangeErr("lovel", 0, 127, v)
	}
	if v > p.VelRange.Hi {
		return flippedErr("lovel", v, p.VelRange.Hi)
	}
	p.VelRange.Lo = v
	return nil
}

func setHiVel(p *region.Params, v int) error {
	if v < 0 || v > 127 {
		return rangeErr("hivel", 0, 127, v)
	}
	if v < p.VelRange.Lo {
		return flippedErr("hivel", v, p.VelRange.Lo)
	}
	p.VelRange.Hi = v
	return nil
}

func setLoRand(p *region.Params, v float64) error {
	if v < 0.0 || v > 1.0 {
		return rangeErr("lorand", 0.0, 1.0, v)
	}
	if v > p.RandomRange.Hi {
		return flippedErr("lorand", v, p.RandomRange.Hi)
	}
	p.RandomRange.Lo = v
	return nil
}

func setHiRand(p *region.Params, v float64) error {
	if v < 0.0 || v > 1.0 {
		return rangeErr("hirand", 0.0, 1.0, v)
	}
	if v < p.RandomRange.Lo {
		return flippedErr("hirand", v, p.RandomRange.Lo)
	}
	p.RandomRange.Hi = v
	return nil
}

func ccRangeFor(p *region.Params, cc int) region.CCRange {
	if rng, ok := p.OnCCs[cc]; ok {
		return rng
	}
	return region.CCRange{LoDisabled: true, HiDisabled: true}
}

func setLoCC(p *region.Params, cc, v int) error {
	if v == -1 {
		rng := ccRangeFor(p, cc)
		rng.LoDisabled = true
		p.OnCCs[cc] = rng
		return nil
	}
	if v < 0 || v > 127 {
		return rangeErr("on_locc", 0, 127, v)
	}
	rng := ccRangeFor(p, cc)
	rng.LoDisabled = false
	rng.Lo = v
	p.OnCCs[cc] = rng
	return nil
}

func setHiCC(p *region.Params, cc, v int) error {
	if v == -1 {
		rng := ccRangeFor(p, cc)
		rng.HiDisabled = true
		p.OnCCs[cc] = rng
		return nil
	}
	if v < 0 || v > 127 {
		return rangeErr("on_hicc", 0, 127, v)
	}
	rng := ccRangeFor(p, cc)
	rng.HiDisabled = false
	rng.Hi = v
	p.OnCCs[cc] = rng
	return nil
}

func takeOpcode(state *regionState, key, value string) error {
	p := &state.params

	switch {
	case key == "lokey":
		note, err := parseKey(value)
		if err != nil {
			return err
		}
		return setLoKey(p, note)
	case key == "hikey":
		note, err := parseKey(value)
		if err != nil {
			return err
		}
		return setHiKey(p, note)
	case key == "key":
		note, err := parseKey(value)
		if err != nil {
			return err
		}
		if note < 0 || note > 127 {
			return rangeErr("key", 0, 127, note)
		}
		p.KeyRange.LoDisabled, p.KeyRange.HiDisabled = false, false
		p.KeyRange.Lo, p.KeyRange.Hi = note, note
		p.PitchKeycenter = note
		return nil
	case key == "pitch_keycenter":
		note, err := parseKey(value)
		if err != nil {
			return err
		}
		if note < 0 || note > 127 {
			return rangeErr("pitch_keycenter", 0, 127, note)
		}
		p.PitchKeycenter = note
		return nil
	case key == "lovel":
		v, err := parseInt("lovel", value)
		if err != nil {
			return err
		}
		return setLoVel(p, v)
	case key == "hivel":
		v, err := parseInt("hivel", value)
		if err != nil {
			return err
		}
		return setHiVel(p, v)
	case key == "lorand":
		v, err := parseFloat("lorand", value)
		if err != nil {
			return err
		}
		return setLoRand(p, v)
	case key == "hirand":
		v, err := parseFloat("hirand", value)
		if err != nil {
			return err
		}
		return setHiRand(p, v)
	case key == "tune":
		v, err := parseInt("tune", value)
		if err != nil {
			return err
		}
		if v < -100 || v > 100 {
			return rangeErr("tune", -100, 100, v)
		}
		p.Tune = float64(v) / 100.0
		return nil
	case key == "volume":
		v, err := parseFloat("volume", value)
		if err != nil {
			return err
		}
		if v < -144.6 || v > 6.0 {
			return rangeErr("volume", -144.6, 6.0, v)
		}
		p.Volume = v
		return nil
	case key == "rt_decay":
		v, err := parseFloat("rt_decay", value)
		if err != nil {
			return err
		}
		if v < 0 || v > 200 {
			return rangeErr("rt_decay", 0, 200, v)
		}
		p.RtDecay = v
		return nil
	case key == "pitch_keytrack":
		v, err := parseFloat("pitch_keytrack", value)
		if err != nil {
			return err
		}
		if v < -1200 || v > 1200 {
			return rangeErr("pitch_keytrack", -1200, 1200, v)
		}
		p.PitchKeytrack = v / 100.0
		return nil
	case key == "amp_veltrack":
		v, err := parseFloat("amp_veltrack", value)
		if err != nil {
			return err
		}
		if v < -100 || v > 100 {
			return rangeErr("amp_veltrack", -100, 100, v)
		}
		p.AmpVeltrack = v / 100.0
		return nil
	case key == "ampeg_attack":
		v, err := parseFloat("ampeg_attack", value)
		if err != nil {
			return err
		}
		if v < 0 || v > 100 {
			return rangeErr("ampeg_attack", 0, 100, v)
		}
		p.Ampeg.Attack = v
		return nil
	case key == "ampeg_hold":
		v, err := parseFloat("ampeg_hold", value)
		if err != nil {
			return err
		}
		if v < 0 || v > 100 {
			return rangeErr("ampeg_hold", 0, 100, v)
		}
		p.Ampeg.Hold = v
		return nil
	case key == "ampeg_decay":
		v, err := parseFloat("ampeg_decay", value)
		if err != nil {
			return err
		}
		if v < 0 || v > 100 {
			return rangeErr("ampeg_decay", 0, 100, v)
		}
		p.Ampeg.Decay = v
		return nil
	case key == "ampeg_sustain":
		v, err := parseFloat("ampeg_sustain", value)
		if err != nil {
			return err
		}
		if v < 0 || v > 100 {
			return rangeErr("ampeg_sustain", 0, 100, v)
		}
		p.Ampeg.Sustain = v / 100.0
		return nil
	case key == "ampeg_release":
		v, err := parseFloat("ampeg_release", value)
		if err != nil {
			return err
		}
		if v < 0 || v > 100 {
			return rangeErr("ampeg_release", 0, 100, v)
		}
		p.Ampeg.Release = v
		return nil
	case key == "group":
		v, err := parseInt("group", value)
		if err != nil {
			return err
		}
		p.Group = uint32(v)
		return nil
	case key == "off_by":
		v, err := parseInt("off_by", value)
		if err != nil {
			return err
		}
		p.OffBy = uint32(v)
		return nil
	case key == "sample":
		state.samplePath = value
		return nil
	case key == "trigger":
		t, err := parseTrigger(value)
		if err != nil {
			return err
		}
		p.Trigger = t
		return nil
	case strings.HasPrefix(key, "on_locc"):
		cc, err := parseInt("on_locc", strings.TrimPrefix(key, "on_locc"))
		if err != nil {
			return err
		}
		if cc < 0 || cc > 127 {
			return rangeErr("on_locc", 0, 127, cc)
		}
		v, err := parseInt("on_locc", value)
		if err != nil {
			return err
		}
		return setLoCC(p, cc, v)
	case strings.HasPrefix(key, "on_hicc"):
		cc, err := parseInt("on_hicc", strings.TrimPrefix(key, "on_hicc"))
		if err != nil {
			return err
		}
		if cc < 0 || cc > 127 {
			return rangeErr("on_hicc", 0, 127, cc)
		}
		v, err := parseInt("on_hicc", value)
		if err != nil {
			return err
		}
		return setHiCC(p, cc, v)
	default:
		return &sonari.ConfigurationError{Opcode: key, Reason: "unknown opcode"}
	}
}

func parseTrigger(value string) (region.Trigger, error) {
	switch value {
	case "attack":
		return region.TriggerAttack, nil
	case "release":
		return region.TriggerRelease, nil
	case "release_key":
		return region.TriggerReleaseKey, nil
	case "first":
		return region.TriggerFirst, nil
	case "legato":
		return region.TriggerLegato, nil
	default:
		return 0, &sonari.ConfigurationError{Opcode: "trigger", Value: value, Reason: "unknown trigger kind"}
	}
}
