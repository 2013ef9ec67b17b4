package narrative

import (
	"strings"
	"testing"
)

func TestNarrator_English(t *testing.T) {
	n, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		name string
		got  string
		want string
	}{
		{"started", n.Started("fix printer"), "Started working on: fix printer"},
		{"stopped", n.Stopped("fix printer", "01:15"), "Worked on: fix printer (01:15)"},
		{"manual", n.Manual("call", "00:30"), "Registered time on: call (00:30)"},
		{"edited", n.Edited("call", "00:45"), "Corrected time on: call (00:45)"},
		{"no description", n.NoDescription(), "(no description)"},
		{"personal message", n.PersonalMessage(), "Personal message"},
		{"uncategorized", n.Uncategorized(), "Uncategorized"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestNarrator_UnknownLocaleFallsBack(t *testing.T) {
	n, err := New("xx")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n.Locale() != DefaultLocale {
		t.Errorf("locale = %q, want %q", n.Locale(), DefaultLocale)
	}
	if got := n.Uncategorized(); got != "Uncategorized" {
		t.Errorf("Uncategorized = %q", got)
	}
}

// Every catalogue must translate every key; gotext echoes the key otherwise.
func TestNarrator_AllCataloguesComplete(t *testing.T) {
	locales := Locales()
	if len(locales) < 2 {
		t.Fatalf("expected several catalogues, got %v", locales)
	}
	for _, locale := range locales {
		n, err := New(locale)
		if err != nil {
			t.Fatalf("%s: %v", locale, err)
		}
		if n.Locale() != locale {
			t.Errorf("%s: loaded %s instead", locale, n.Locale())
		}
		for _, text := range []string{
			n.Started("x"), n.Stopped("x", "00:01"), n.Manual("x", "00:01"), n.Edited("x", "00:01"),
			n.NoDescription(), n.PersonalMessage(), n.Uncategorized(),
		} {
			if strings.HasPrefix(text, "time_registration.") {
				t.Errorf("%s: untranslated key %q", locale, text)
			}
		}
	}
}
