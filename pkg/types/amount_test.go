package types

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestCoins(t *testing.T) {
	if !Coins(0).IsZero() {
		t.Errorf("Coins(0) = %s, want 0", Coins(0))
	}
	if !Coins(1).Eq(OneCoin()) {
		t.Errorf("Coins(1) = %s, want %s", Coins(1), OneCoin())
	}

	want := uint256.MustFromDecimal("50000000000000000000000000") // 50M * 10^18
	if !Coins(50_000_000).Eq(want) {
		t.Errorf("Coins(50M) = %s, want %s", Coins(50_000_000), want)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string // base units, decimal
	}{
		{"0", "0"},
		{"1", "1000000000000000000"},
		{"12.5", "12500000000000000000"},
		{"0.000000000000000001", "1"},
		{".5", "500000000000000000"},
		{"  3 ", "3000000000000000000"},
		{"100000000", "100000000000000000000000000"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if err != nil {
			t.Errorf("ParseAmount(%q) error: %v", tt.input, err)
			continue
		}
		if got.Dec() != tt.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got.Dec(), tt.want)
		}
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	tests := []string{
		"",                      // empty
		"abc",                   // not a number
		"1.2.3",                 // double point
		"0.0000000000000000001", // 19 fractional digits
		"-5",                    // negative
	}
	for _, input := range tests {
		if _, err := ParseAmount(input); err == nil {
			t.Errorf("ParseAmount(%q) should fail", input)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input string // base units, decimal
		want  string
	}{
		{"0", "0"},
		{"1000000000000000000", "1"},
		{"12500000000000000000", "12.5"},
		{"1", "0.000000000000000001"},
		{"50000000000000000000000000", "50000000"},
	}
	for _, tt := range tests {
		v := uint256.MustFromDecimal(tt.input)
		if got := FormatAmount(v); got != tt.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if got := FormatAmount(nil); got != "0" {
		t.Errorf("FormatAmount(nil) = %q, want \"0\"", got)
	}
}

func TestAmountRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "12.5", "0.000000000000000001", "99999999.875"} {
		v, err := ParseAmount(s)
		if err != nil {
			t.Fatalf("ParseAmount(%q) error: %v", s, err)
		}
		if got := FormatAmount(v); got != s {
			t.Errorf("round trip %q = %q", s, got)
		}
	}
}
