package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestBundle(t *testing.T, lang string) *Bundle {
	t.Helper()
	b, err := NewBundle(lang)
	if err != nil {
		t.Fatalf("NewBundle(%q) error = %v", lang, err)
	}
	return b
}

func TestBuiltinCatalogsAreComplete(t *testing.T) {
	for lang, messages := range builtin {
		for key := range builtin["en"] {
			if _, ok := messages[key]; !ok {
				t.Errorf("catalog %q is missing key %q", lang, key)
			}
		}
	}
}

func TestNewBundle(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		wantLang string
		wantErr  bool
	}{
		{name: "English", lang: "en", wantLang: "en"},
		{name: "German", lang: "de", wantLang: "de"},
		{name: "RegionStripped", lang: "de-AT", wantLang: "de"},
		{name: "Unsupported", lang: "fr", wantErr: true},
		{name: "Invalid", lang: "not a tag", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBundle(tt.lang)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBundle() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := b.Default().Language().String(); got != tt.wantLang {
				t.Errorf("Default().Language() = %q, want %q", got, tt.wantLang)
			}
		})
	}
}

func TestBundle_Match(t *testing.T) {
	b := newTestBundle(t, "en")

	tests := []struct {
		accept string
		want   string
	}{
		{accept: "", want: "en"},
		{accept: "de", want: "de"},
		{accept: "de-CH,de;q=0.9,en;q=0.8", want: "de"},
		{accept: "fr-FR,en;q=0.5", want: "en"},
		{accept: "ja", want: "en"},
		{accept: ";;;", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			if got := b.Match(tt.accept).Language().String(); got != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.accept, got, tt.want)
			}
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	b := newTestBundle(t, "en")

	if got := b.Match("de").Lookup(KeySuccess); got != "Abfrage erfolgreich geparst" {
		t.Errorf("de Lookup(KeySuccess) = %q", got)
	}
	if got := b.Default().Lookup("query.unknown"); got != "query.unknown" {
		t.Errorf("Lookup of a missing key = %q, want the key", got)
	}
}

func TestBundle_LoadFile(t *testing.T) {
	b := newTestBundle(t, "en")

	path := filepath.Join(t.TempDir(), "catalog.toml")
	data := `
[en]
"query.success" = "Query compiled"

[fr]
"query.success" = "Requête analysée"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if err := b.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	got := map[string]string{
		"en success": b.Match("en").Lookup(KeySuccess),
		"en failure": b.Match("en").Lookup(KeyFailure),
		"fr success": b.Match("fr").Lookup(KeySuccess),
		"fr warning": b.Match("fr").Lookup(KeyWarning),
	}
	want := map[string]string{
		"en success": "Query compiled",
		"en failure": "Query parsing failed",
		"fr success": "Requête analysée",
		"fr warning": "Warning",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catalog after LoadFile mismatch (-want +got):\n%s", diff)
	}
}

func TestBundle_LoadErrors(t *testing.T) {
	b := newTestBundle(t, "en")

	if err := b.Load([]byte("not = [valid")); err == nil {
		t.Error("Load() expected decode error")
	}
	if err := b.Load([]byte("[\"x y z\"]\nkey = \"v\"\n")); err == nil {
		t.Error("Load() expected invalid language error")
	}
	if err := b.LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadFile() expected error for a missing file")
	}
}
