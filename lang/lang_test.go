package lang

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		spelling  string
		canonical string
		ok        bool
	}{
		{name: "canonical portuguese", spelling: "tratar_outliers", canonical: "tratar_outliers", ok: true},
		{name: "english alias", spelling: "handle_outliers", canonical: "tratar_outliers", ok: true},
		{name: "chinese alias", spelling: "处理异常值", canonical: "tratar_outliers", ok: true},
		{name: "hindi alias", spelling: "outliers_hataye", canonical: "tratar_outliers", ok: true},
		{name: "surrounding spaces", spelling: "  auto_ml ", canonical: "auto_ml", ok: true},
		{name: "unknown spelling", spelling: "make_coffee", canonical: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.spelling)
			if ok != tt.ok {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.spelling, ok, tt.ok)
			}
			if got != tt.canonical {
				t.Errorf("Resolve(%q) = %q, want %q", tt.spelling, got, tt.canonical)
			}
		})
	}
}

func TestCommandsPerLanguage(t *testing.T) {
	want := len(Canonicals())
	for _, code := range Supported() {
		cmds := Commands(code)
		if len(cmds) != want {
			t.Errorf("Commands(%q) returned %d entries, want %d", code, len(cmds), want)
		}
		for _, cmd := range cmds {
			if _, ok := Resolve(cmd); !ok {
				t.Errorf("Commands(%q) lists %q, which Resolve does not know", code, cmd)
			}
		}
	}
}

func TestCatalogKeyParity(t *testing.T) {
	// Every language must carry exactly the Portuguese key set, so a
	// localized lookup never silently changes meaning across profiles.
	ptKeys := catalog["pt"]
	for _, code := range Supported() {
		if len(catalog[code]) != len(ptKeys) {
			t.Errorf("catalog[%q] has %d keys, want %d", code, len(catalog[code]), len(ptKeys))
		}
		for key := range ptKeys {
			if _, ok := catalog[code][key]; !ok {
				t.Errorf("catalog[%q] is missing key %q", code, key)
			}
		}
	}
}

func TestFormat(t *testing.T) {
	got := Format("en", "filter", Args{"query": "idade > 30", "before": 10, "after": 4})
	want := "[FILTER] 'idade > 30': 10 -> 4 rows."
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestMessageFallback(t *testing.T) {
	if got := Message("xx", "load_ok"); !strings.Contains(got, "[LOAD]") {
		t.Errorf("unknown language should fall back to English, got %q", got)
	}
	if got := Message("pt", "no_such_key"); got != "" {
		t.Errorf("unknown key should return empty string, got %q", got)
	}
}

func TestDefaultCurrency(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{lang: "pt", want: "BRL"},
		{lang: "en", want: "USD"},
		{lang: "zh", want: "CNY"},
		{lang: "hi", want: "INR"},
		{lang: "fr", want: "USD"},
	}
	for _, tt := range tests {
		if got := DefaultCurrency(tt.lang); got != tt.want {
			t.Errorf("DefaultCurrency(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}
