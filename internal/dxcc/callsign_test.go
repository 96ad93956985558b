package dxcc

import "testing"

func TestParseCallsign(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		valid      bool
		hostPrefix string
		base       string
		suffix     string
		basePrefix string
	}{
		{"plain call", "OK1ABC", true, "", "OK1ABC", "", "OK"},
		{"lowercase with spaces", "  ok1abc ", true, "", "OK1ABC", "", "OK"},
		{"host prefix form", "SP/OK1ABC", true, "SP", "OK1ABC", "", "OK"},
		{"call area suffix", "OK1ABC/4", true, "", "OK1ABC", "4", "OK"},
		{"portable suffix", "OK1ABC/P", true, "", "OK1ABC", "P", "OK"},
		{"maritime mobile", "OK1ABC/MM", true, "", "OK1ABC", "MM", "OK"},
		{"host and suffix", "SP/OK1ABC/P", true, "SP", "OK1ABC", "P", "OK"},
		{"leading digit prefix", "3DA0RS", true, "", "3DA0RS", "", "3DA"},
		{"guantanamo 2x1", "KG4AA", true, "", "KG4AA", "", "KG"},
		{"us style 2x3", "KG4ABC", true, "", "KG4ABC", "", "KG"},
		{"empty", "", false, "", "", "", ""},
		{"illegal character", "OK1-ABC", false, "", "", "", ""},
		{"empty segment", "OK1ABC//P", false, "", "", "", ""},
		{"too many segments", "A/B/C/D", false, "", "", "", ""},
		{"digits only", "12345", false, "", "", "", ""},
		{"no trailing letter", "OK1", false, "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := ParseCallsign(tt.raw)
			if cs.IsValid() != tt.valid {
				t.Fatalf("IsValid() = %v, want %v", cs.IsValid(), tt.valid)
			}
			if !tt.valid {
				return
			}
			if cs.HostPrefix != tt.hostPrefix {
				t.Errorf("HostPrefix = %q, want %q", cs.HostPrefix, tt.hostPrefix)
			}
			if cs.Base != tt.base {
				t.Errorf("Base = %q, want %q", cs.Base, tt.base)
			}
			if cs.Suffix != tt.suffix {
				t.Errorf("Suffix = %q, want %q", cs.Suffix, tt.suffix)
			}
			if cs.BasePrefix != tt.basePrefix {
				t.Errorf("BasePrefix = %q, want %q", cs.BasePrefix, tt.basePrefix)
			}
		})
	}
}

func TestEntityLookupKey(t *testing.T) {
	tests := []struct {
		raw string
		key string
	}{
		{"OK1ABC", "OK1ABC"},        // plain call, matched as-is
		{"OK1ABC/4", "OK4"},         // call area splices onto the base prefix
		{"SP/OK1ABC", "SP"},         // visited entity wins
		{"OK1ABC/P", "OK1ABC/P"},    // marker suffixes fall through to the full call
		{"OK1ABC/MM", "OK1ABC/MM"},  //
		{"OK1ABC/QRP", "OK1ABC/QRP"},
		{"W1AW/KH6", "KH6"},         // multi-char suffix outside the marker set
		{"SP/OK1ABC/P", "SP"},       // marker suffix falls through to the host
		{"3DA0RS", "3DA0RS"},
		{"not a call!", "NOT A CALL!"}, // invalid input falls back to the raw string
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseCallsign(tt.raw).EntityLookupKey()
			if got != tt.key {
				t.Errorf("EntityLookupKey(%q) = %q, want %q", tt.raw, got, tt.key)
			}
		})
	}
}

func TestWPXPrefix(t *testing.T) {
	tests := []struct {
		raw    string
		prefix string
	}{
		{"OK1ABC", "OK1"},
		{"OK1ABC/4", "OK4"},
		{"SP/OK1ABC", "SP0"},
		{"SP9/OK1ABC", "SP9"},
		{"3DA0RS", "3DA0"},
		{"N8BJQ/KH9", "KH9"},
		{"OK1ABC/P", "OK1"},
		{"bogus//", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseCallsign(tt.raw).WPXPrefix()
			if got != tt.prefix {
				t.Errorf("WPXPrefix(%q) = %q, want %q", tt.raw, got, tt.prefix)
			}
		})
	}
}
