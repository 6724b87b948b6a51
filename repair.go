package id3meta

import (
	"golang.org/x/text/encoding"

	"github.com/simonhull/id3meta/internal/mojibake"
	"github.com/simonhull/id3meta/internal/textenc"
)

// Repair fixes a string that another decoder produced with the wrong
// charset, e.g. "РљРёРЅРѕ" (UTF-8 read as windows-1251) becomes "Кино".
//
// Strings that already look right are returned trimmed. When no repair
// step yields a plausible name, Repair returns "". Only WithRepairPolicy
// and WithLegacyEncoding affect Repair.
func Repair(s string, opts ...Option) string {
	return newOptions(opts).repairPolicy().Repair(s)
}

// DefaultRepairPolicy returns the built-in repair table for text whose
// bytes were written in legacy (nil = windows-1251). The returned policy
// can be modified before passing it to WithRepairPolicy.
func DefaultRepairPolicy(legacy encoding.Encoding) *RepairPolicy {
	return mojibake.DefaultPolicy(legacy)
}

// Charset looks up a single-byte charset by WHATWG label or IANA name,
// e.g. "windows-1251", "cp1252", "koi8-r", "ISO-8859-5".
func Charset(name string) (encoding.Encoding, error) {
	return textenc.Lookup(name)
}
