package gen_test

import (
	"regexp"
	"testing"

	"melodygram/pkg/gen"
)

var reFingerprint = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "plain", query: "shape of you ed sheeran", want: "shape of you ed sheeran"},
		{name: "extraSpaces", query: "  shape  of\tyou ", want: "shape of you"},
		{name: "empty", query: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gen.Normalize(tt.query); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "basic", query: "never gonna give you up rick astley"},
		{name: "unicode", query: "despacito luis fonsi é ñ"},
		{name: "empty", query: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gen.Fingerprint(tt.query)
			if !reFingerprint.MatchString(got) {
				t.Fatalf("Fingerprint(%q) = %q, want 8 lowercase hex chars", tt.query, got)
			}

			if again := gen.Fingerprint(tt.query); again != got {
				t.Fatalf("Fingerprint not idempotent: %q vs %q", got, again)
			}
		})
	}
}

func TestFingerprintDistinct(t *testing.T) {
	queries := []string{
		"shape of you ed sheeran",
		"shape of you ed sheeran live",
		"shape of me ed sheeran",
		"blinding lights the weeknd",
	}

	seen := make(map[string]string, len(queries))

	for _, q := range queries {
		fp := gen.Fingerprint(q)
		if prev, ok := seen[fp]; ok {
			t.Fatalf("fingerprint collision: %q and %q both map to %s", prev, q, fp)
		}

		seen[fp] = q
	}
}

func TestFingerprintWhitespaceInsensitive(t *testing.T) {
	a := gen.Fingerprint("shape of you  ed sheeran")
	b := gen.Fingerprint(" shape of you ed sheeran ")

	if a != b {
		t.Fatalf("fingerprints differ across whitespace variants: %q vs %q", a, b)
	}
}
