package main

import (
	"strings"
	"testing"
)

func TestNewMemberCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := newMemberCode()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != codeLength {
			t.Fatalf("expected %d characters, got %q", codeLength, code)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = struct{}{}
	}
	// 200 draws from a 31^6 space colliding down to a handful would mean a
	// broken generator.
	if len(seen) < 190 {
		t.Errorf("expected mostly unique codes, got %d unique of 200", len(seen))
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := normalizeCode("  ab2c3d "); got != "AB2C3D" {
		t.Errorf("expected AB2C3D, got %q", got)
	}
}

func TestValidCode(t *testing.T) {
	valid := []string{"AAAAAA", "AB2C3D", "ZZZZZZ", "234567"}
	for _, code := range valid {
		if !validCode(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}

	invalid := []string{
		"",
		"AAAAA",    // too short
		"AAAAAAA",  // too long
		"AAAAA0",   // ambiguous zero
		"AAAAAO",   // ambiguous O
		"AAAAA1",   // ambiguous one
		"AAAAAI",   // ambiguous I
		"AAAAAL",   // ambiguous L
		"aaaaaa",   // callers normalize before validating
		"AAA AA",   // whitespace
	}
	for _, code := range invalid {
		if validCode(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}
