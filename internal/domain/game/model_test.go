package game

import (
	"errors"
	"testing"
)

func TestResolveID_NicknamedForm(t *testing.T) {
	id, err := ResolveID("Kansas City Chiefs", "Buffalo Bills", "8:20PM")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if id != "Bills@Chiefs 8:20PM" {
		t.Fatalf("unexpected id: %s", id)
	}
}

func TestResolveID_PureFunction(t *testing.T) {
	first, err := ResolveID("Green Bay Packers", "Chicago Bears", "1:00PM")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	second, err := ResolveID("Green Bay Packers", "Chicago Bears", "1:00PM")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if first != second {
		t.Fatalf("resolving twice diverged: %q vs %q", first, second)
	}
}

func TestResolveID_CaseAndWhitespaceInsensitiveTime(t *testing.T) {
	lower, err := ResolveID("Kansas City Chiefs", "Buffalo Bills", "8:20pm")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	spaced, err := ResolveID("Kansas City Chiefs", "Buffalo Bills", " 8:20 PM ")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if lower != "Bills@Chiefs 8:20PM" || spaced != lower {
		t.Fatalf("time token not normalized: %q vs %q", lower, spaced)
	}
}

func TestResolveID_MissingTimeFallsBackToTBD(t *testing.T) {
	id, err := ResolveID("New York Yankees", "Boston Red Sox", "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if id != "Sox@Yankees TBD" {
		t.Fatalf("unexpected id: %s", id)
	}
}

func TestResolveID_EmptyTeamIsIdentityError(t *testing.T) {
	if _, err := ResolveID("", "Buffalo Bills", "8:20PM"); !errors.Is(err, ErrIdentity) {
		t.Fatalf("expected ErrIdentity, got %v", err)
	}
	if _, err := ResolveID("Kansas City Chiefs", "   ", "8:20PM"); !errors.Is(err, ErrIdentity) {
		t.Fatalf("expected ErrIdentity, got %v", err)
	}
}

func TestNickname(t *testing.T) {
	cases := map[string]string{
		"Kansas City Chiefs": "Chiefs",
		"Chiefs":             "Chiefs",
		"  Green Bay Packers  ": "Packers",
		"": "",
	}
	for input, want := range cases {
		if got := Nickname(input); got != want {
			t.Fatalf("Nickname(%q) = %q, want %q", input, got, want)
		}
	}
}
