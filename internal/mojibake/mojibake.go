// Package mojibake recovers text that an external decoder produced with the
// wrong charset.
//
// Each Step re-encodes the damaged string with the charset it was wrongly
// decoded as, then decodes the bytes with the charset it was written in.
// The first candidate that survives both conversions and looks like a
// plausible name is returned.
package mojibake

import (
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	xunicode "golang.org/x/text/encoding/unicode"

	"github.com/simonhull/id3meta/internal/textenc"
)

// DefaultMaxBad is the number of suspicious runes a name may contain.
const DefaultMaxBad = 1

// Step is one repair attempt.
//
// A step with Wrong and Intended both set to encoding.Nop keeps the input
// unchanged and only applies the quality check.
type Step struct {
	Name     string
	Wrong    encoding.Encoding
	Intended encoding.Encoding

	// Guard, when set, must accept the input for the step to run.
	Guard func(s string) bool
}

// Policy is an ordered list of repair steps.
type Policy struct {
	Steps  []Step
	MaxBad int
}

// DefaultPolicy returns the repair table for text whose bytes were written
// in legacy (nil = windows-1251).
func DefaultPolicy(legacy encoding.Encoding) *Policy {
	if legacy == nil {
		legacy = textenc.DefaultLegacy
	}

	p := &Policy{MaxBad: DefaultMaxBad}
	p.Steps = []Step{
		{Name: "utf-8 read as legacy", Wrong: legacy, Intended: xunicode.UTF8},
		{
			Name:     "legacy read as koi8-r",
			Wrong:    charmap.KOI8R,
			Intended: legacy,
			Guard:    func(s string) bool { return p.Good(s) && MaybeKoi8(s) },
		},
		{Name: "original", Wrong: encoding.Nop, Intended: encoding.Nop},
		{Name: "legacy read as windows-1252", Wrong: charmap.Windows1252, Intended: legacy},
		{Name: "legacy read as windows-1253", Wrong: charmap.Windows1253, Intended: legacy},
		{Name: "legacy read as windows-1256", Wrong: charmap.Windows1256, Intended: legacy},
		{Name: "legacy read as euc-jp", Wrong: japanese.EUCJP, Intended: legacy},
		{Name: "legacy read as gbk", Wrong: simplifiedchinese.GBK, Intended: legacy},
		{Name: "legacy read as shift_jis", Wrong: japanese.ShiftJIS, Intended: legacy},
	}
	return p
}

// Repair returns the repaired form of s, or "" when no step produces an
// acceptable name. s is trimmed first; an empty result is "".
func (p *Policy) Repair(s string) string {
	s, _ = p.Explain(s)
	return s
}

// Explain is Repair that also reports the name of the winning step.
func (p *Policy) Explain(s string) (string, string) {
	s = textenc.Trim(s)
	if s == "" {
		return "", ""
	}

	for _, step := range p.Steps {
		if step.Guard != nil && !step.Guard(s) {
			continue
		}
		candidate, ok := step.apply(s)
		if ok && p.Good(candidate) {
			return candidate, step.Name
		}
	}
	return "", ""
}

// Good reports whether s has at most MaxBad runes at or above U+0600 that
// are not "Symbol, other".
func (p *Policy) Good(s string) bool {
	bad := 0
	for _, r := range s {
		if r >= 0x0600 && !unicode.Is(unicode.So, r) {
			bad++
			if bad > p.MaxBad {
				return false
			}
		}
	}
	return true
}

func (st Step) apply(s string) (string, bool) {
	if st.Wrong == encoding.Nop && st.Intended == encoding.Nop {
		return s, true
	}

	raw, err := st.Wrong.NewEncoder().String(s)
	if err != nil {
		return "", false
	}
	out, err := textenc.Decode(st.Intended, []byte(raw))
	if err != nil {
		return "", false
	}
	return out, true
}

// MaybeKoi8 reports whether s looks like cp1251 bytes shown through KOI8-R.
// The two charsets place Cyrillic letters with swapped case, so a
// capitalised word turns into a small letter followed by capitals ("йХМН").
// s must contain that pattern at least once, and no letter may be followed
// by a small letter. Plain all-caps text ("ДДТ") does not qualify.
func MaybeKoi8(s string) bool {
	const (
		other = iota
		capital
		small
	)

	seen := false
	state := other
	for _, r := range s {
		isCapital := r >= 'А' && r <= 'Я'
		isSmall := r >= 'а' && r <= 'я'

		switch state {
		case other:
			if isCapital {
				state = capital
			} else if isSmall {
				state = small
			}
		case capital, small:
			switch {
			case isSmall:
				return false
			case isCapital:
				if state == small {
					seen = true
				}
				state = capital
			default:
				state = other
			}
		}
	}
	return seen
}
