package helpers

import (
	"math/big"
	"testing"
)

func TestEthToWei(t *testing.T) {
	wei, err := EthToWei("1.5")
	if err != nil {
		t.Fatal(err)
	}
	want := new(big.Int).Mul(big.NewInt(15), big.NewInt(1e17))
	if wei.Cmp(want) != 0 {
		t.Fatalf("1.5 eth = %s wei, want %s", wei, want)
	}

	if _, err := EthToWei("-1"); err == nil {
		t.Fatal("negative amounts must be rejected")
	}
	if _, err := EthToWei(""); err == nil {
		t.Fatal("empty input must be rejected")
	}
}

func TestParseBips(t *testing.T) {
	cases := map[string]int{
		"50":     50,
		"50bips": 50,
		"0.5%":   50,
		"1%":     100,
	}
	for in, want := range cases {
		got, err := ParseBips(in)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseBips(%q) = %d, want %d", in, got, want)
		}
	}
	if _, err := ParseBips("lots"); err == nil {
		t.Fatal("garbage must be rejected")
	}
}

func TestFormatEth(t *testing.T) {
	cases := []struct {
		wei  *big.Int
		want string
	}{
		{nil, "0"},
		{new(big.Int).Mul(big.NewInt(15), big.NewInt(1e17)), "1.5000"}, // 1.5 ETH
		{big.NewInt(5e17), "0.500000"},
		{new(big.Int).Mul(big.NewInt(250), big.NewInt(1e18)), "250.00"},
	}
	for _, tc := range cases {
		if got := FormatEth(tc.wei); got != tc.want {
			t.Fatalf("FormatEth(%v) = %q, want %q", tc.wei, got, tc.want)
		}
	}
}
