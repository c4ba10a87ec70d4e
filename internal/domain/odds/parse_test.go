package odds

import "testing"

func TestParseMoneyline(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"+130", 130},
		{"130", 130},
		{"-150", -150},
		{"−150", -150},
		{" +105 ", 105},
	}
	for _, tc := range cases {
		got, err := ParseMoneyline(tc.raw)
		if err != nil {
			t.Fatalf("ParseMoneyline(%q) failed: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMoneyline(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseMoneyline_Invalid(t *testing.T) {
	for _, raw := range []string{"", "EVEN", "+1.5.3", "abc"} {
		if _, err := ParseMoneyline(raw); err == nil {
			t.Fatalf("ParseMoneyline(%q) should fail", raw)
		}
	}
}

func TestParseTotal(t *testing.T) {
	got, err := ParseTotal(" 47.5 ")
	if err != nil {
		t.Fatalf("ParseTotal failed: %v", err)
	}
	if got != 47.5 {
		t.Fatalf("ParseTotal = %v, want 47.5", got)
	}
	if _, err := ParseTotal("O/U"); err == nil {
		t.Fatal("expected parse failure for non-numeric total")
	}
}

func TestNormalizeSpread(t *testing.T) {
	if got := NormalizeSpread("  −3  |  +3  "); got != "-3 | +3" {
		t.Fatalf("unexpected normalized spread: %q", got)
	}
}
