package utils

import "testing"

func TestGenerateReference(t *testing.T) {
	tests := []struct {
		prefix string
		number int
		want   string
	}{
		{"PI", 1, "PI-000001"},
		{"AGR", 42, "AGR-000042"},
		{"PRJ", 123456, "PRJ-123456"},
		{"PI", 1234567, "PI-1234567"},
	}
	for _, tt := range tests {
		if got := GenerateReference(tt.prefix, tt.number); got != tt.want {
			t.Errorf("GenerateReference(%q, %d) = %q, want %q", tt.prefix, tt.number, got, tt.want)
		}
	}
}
