// Package dxcc resolves operator callsigns to DXCC award entities using
// longest-prefix matching over the current and historical reference
// datasets.
package dxcc

import (
	"regexp"
	"strings"
)

// secondarySuffixes are suffix tokens that never act as a prefix of their
// own (portable, mobile, maritime and similar markers). A multi-character
// suffix outside this set is treated as the lookup prefix itself.
var secondarySuffixes = map[string]bool{
	"AM":  true,
	"LGT": true,
	"LH":  true,
	"M":   true,
	"MM":  true,
	"P":   true,
	"QRP": true,
	"SK":  true,
}

var (
	callsignRe = regexp.MustCompile(`^[0-9]?[A-Z]+[0-9]+[A-Z0-9]*[A-Z]$`)
	baseRe     = regexp.MustCompile(`^([0-9]?[A-Z]+)([0-9]*)([A-Z0-9]*)$`)
	charsetRe  = regexp.MustCompile(`^[A-Z0-9/]+$`)
)

// Callsign is the structural decomposition of an operator callsign:
// an optional host prefix (the entity the operator is visiting), the base
// call, and an optional suffix (call area digit or portable marker).
type Callsign struct {
	Raw              string
	Normalized       string
	HostPrefix       string
	Base             string
	BasePrefix       string // leading letters of the base, incl. a leading digit (3DA)
	BasePrefixNumber string // call area digits following the base prefix
	Suffix           string

	valid bool
}

// ParseCallsign decomposes a raw callsign. Structurally unparseable input
// yields an invalid Callsign; callers fall back to the raw string.
func ParseCallsign(raw string) Callsign {
	cs := Callsign{Raw: raw}
	norm := strings.ToUpper(strings.TrimSpace(raw))
	if norm == "" || !charsetRe.MatchString(norm) {
		return cs
	}

	segments := strings.Split(norm, "/")
	for _, seg := range segments {
		if seg == "" {
			return cs
		}
	}

	switch len(segments) {
	case 1:
		cs.Base = segments[0]
	case 2:
		// The longer segment is the base call; SP/OK1ABC carries a host
		// prefix, OK1ABC/4 and OK1ABC/MM carry a suffix.
		if len(segments[1]) > len(segments[0]) {
			cs.HostPrefix = segments[0]
			cs.Base = segments[1]
		} else {
			cs.Base = segments[0]
			cs.Suffix = segments[1]
		}
	case 3:
		cs.HostPrefix = segments[0]
		cs.Base = segments[1]
		cs.Suffix = segments[2]
	default:
		return cs
	}

	if !callsignRe.MatchString(cs.Base) {
		return cs
	}

	if m := baseRe.FindStringSubmatch(cs.Base); m != nil {
		cs.BasePrefix = m[1]
		cs.BasePrefixNumber = m[2]
	}

	cs.Normalized = norm
	cs.valid = true
	return cs
}

// IsValid reports whether the callsign parsed into a structurally valid call.
func (c Callsign) IsValid() bool {
	return c.valid
}

// EntityLookupKey selects the string matched against the prefix tables.
// A single-digit suffix is spliced onto the base prefix (call areas like
// /4); a longer suffix outside the secondary set is very likely itself a
// prefix; a host prefix wins next; otherwise the full callsign is used.
func (c Callsign) EntityLookupKey() string {
	if !c.valid {
		return strings.ToUpper(strings.TrimSpace(c.Raw))
	}

	if len(c.Suffix) == 1 && c.Suffix[0] >= '0' && c.Suffix[0] <= '9' {
		return c.BasePrefix + c.Suffix
	}
	if len(c.Suffix) > 1 && !secondarySuffixes[c.Suffix] {
		return c.Suffix
	}
	if c.HostPrefix != "" {
		return c.HostPrefix
	}
	return c.Normalized
}

// WPXPrefix derives the contest prefix used for WPX-style scoring.
func (c Callsign) WPXPrefix() string {
	if !c.valid {
		return ""
	}

	if len(c.Suffix) == 1 && c.Suffix[0] >= '0' && c.Suffix[0] <= '9' {
		return c.BasePrefix + c.Suffix
	}
	if len(c.Suffix) > 1 && !secondarySuffixes[c.Suffix] {
		last := c.Suffix[len(c.Suffix)-1]
		if last >= '0' && last <= '9' {
			return c.Suffix
		}
		return c.Suffix + "0"
	}
	if c.HostPrefix != "" {
		last := c.HostPrefix[len(c.HostPrefix)-1]
		if last >= '0' && last <= '9' {
			return c.HostPrefix
		}
		return c.HostPrefix + "0"
	}
	if c.BasePrefixNumber != "" {
		return c.BasePrefix + c.BasePrefixNumber
	}
	return c.BasePrefix + "0"
}
