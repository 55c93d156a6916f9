package format

import "testing"

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.99, "999.99"},
		{1000, "1.000k"},
		{1_500_000, "1.500M"},
		{2.5e9, "2.500B"},
		{7.2e12, "7.200T"},
		{-1234, "-1.234k"},
		{1e27, "1.00e+27"},
	}
	for _, tc := range tests {
		if got := Number(tc.in); got != tc.want {
			t.Fatalf("Number(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{9999.99, "$9999.99"},
		{12_345, "$12.345k"},
		{-42.5, "$-42.50"},
	}
	for _, tc := range tests {
		if got := Currency(tc.in); got != tc.want {
			t.Fatalf("Currency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCryptoAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{1.23456789, "1.2346"},
		{123.456, "123.46"},
		{0.00123, "0.0012300"},
		{100_000, "100000.00"},
		{0.00005, "5.00e-05"},
	}
	for _, tc := range tests {
		if got := CryptoAmount(tc.in); got != tc.want {
			t.Fatalf("CryptoAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
