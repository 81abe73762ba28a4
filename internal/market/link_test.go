package market

import (
	"net/url"
	"strings"
	"testing"
)

func TestMultisellURL(t *testing.T) {
	got := MultisellURL([]string{"Spectrum 2 Case", "Horizon Case"})
	want := "https://steamcommunity.com/market/multisell?appid=730&contextid=2" +
		"&items%5B%5D=Spectrum%202%20Case&items%5B%5D=Horizon%20Case"
	if got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestMultisellURL_Empty(t *testing.T) {
	if got := MultisellURL(nil); got != BaseURL {
		t.Errorf("expected bare base URL, got %s", got)
	}
}

func TestMultisellURL_Escaping(t *testing.T) {
	got := MultisellURL([]string{"Dreams & Nightmares Case", "CS:GO Weapon Case"})

	if !strings.Contains(got, "items%5B%5D=Dreams%20%26%20Nightmares%20Case") {
		t.Errorf("expected ampersand to be escaped, got %s", got)
	}
	if !strings.Contains(got, "items%5B%5D=CS%3AGO%20Weapon%20Case") {
		t.Errorf("expected colon to be escaped, got %s", got)
	}

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("generated URL does not parse: %v", err)
	}
	items := parsed.Query()["items[]"]
	if len(items) != 2 || items[0] != "Dreams & Nightmares Case" || items[1] != "CS:GO Weapon Case" {
		t.Errorf("expected names to round-trip, got %q", items)
	}
}

func TestMultisellURL_Repeats(t *testing.T) {
	got := MultisellURL([]string{"Gamma Case", "Gamma Case", "Gamma Case"})
	if n := strings.Count(got, "items%5B%5D=Gamma%20Case"); n != 3 {
		t.Errorf("expected 3 repeated entries, got %d", n)
	}
}

func TestMultisellURLFrom(t *testing.T) {
	got := MultisellURLFrom("http://localhost/multisell?appid=1&contextid=1", []string{"X"})
	if got != "http://localhost/multisell?appid=1&contextid=1&items%5B%5D=X" {
		t.Errorf("unexpected URL: %s", got)
	}
}

func TestEncodeComponent(t *testing.T) {
	tests := map[string]string{
		"Gamma Case":               "Gamma%20Case",
		"Dreams & Nightmares Case": "Dreams%20%26%20Nightmares%20Case",
		"Sticker | Team (Foil)":    "Sticker%20%7C%20Team%20(Foil)",
		"It's *new*!":              "It's%20*new*!",
		"a+b/c?d=e":                "a%2Bb%2Fc%3Fd%3De",
		"Ünïcödé":                  "%C3%9Cn%C3%AFc%C3%B6d%C3%A9",
	}
	for input, expected := range tests {
		if got := encodeComponent(input); got != expected {
			t.Errorf("encodeComponent(%q): expected %q, got %q", input, expected, got)
		}
	}
}
