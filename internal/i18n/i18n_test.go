package i18n

import (
	"testing"
	"testing/fstest"
)

func TestDefaultCatalogHasBaseLocaleFirst(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	locales := c.Locales()
	if len(locales) < 2 || locales[0] != BaseLocale {
		t.Fatalf("locales = %v", locales)
	}
}

func TestMatchPrefersRegionalBase(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]string{
		"nl":    "nl",
		"nl-BE": "nl",
		"en-GB": "en",
		"ja":    "en",
		"":      "en",
		"!!":    "en",
	}
	for req, want := range cases {
		if got := c.Match(req); got != want {
			t.Fatalf("Match(%q) = %q, want %q", req, got, want)
		}
	}
}

func TestLocalesShareKeys(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	for key := range c.locales[BaseLocale] {
		for _, locale := range c.Locales() {
			if _, ok := c.locales[locale][key]; !ok {
				t.Fatalf("locale %s is missing %q", locale, key)
			}
		}
	}
}

func TestTranslatorFallsBack(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  a: \"A\"\n  b: \"B\"\n")},
		"locales/nl.yaml": {Data: []byte("locale: nl\nmessages:\n  a: \"Aa\"\n")},
	}
	c, err := LoadFS(fsys)
	if err != nil {
		t.Fatal(err)
	}
	tr := c.Translator("nl")
	if tr.T("a") != "Aa" {
		t.Fatalf("T(a) = %q", tr.T("a"))
	}
	if tr.T("b") != "B" {
		t.Fatalf("T(b) should fall back to base, got %q", tr.T("b"))
	}
	if tr.T("zzz") != "zzz" {
		t.Fatalf("unknown key should echo, got %q", tr.T("zzz"))
	}
}

func TestLoadRejectsMismatchedLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: nl\nmessages:\n  a: \"A\"\n")},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatal("expected locale/file name mismatch error")
	}
}

func TestLoadRequiresBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/nl.yaml": {Data: []byte("locale: nl\nmessages:\n  a: \"A\"\n")},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatal("expected missing base locale error")
	}
}
