package i18n

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		requested string
		want      string
	}{
		{"", "en-US"},
		{"en-US", "en-US"},
		{"en", "en-US"},
		{"en-GB", "en-US"},
		{"ru-RU", "ru-RU"},
		{"ru", "ru-RU"},
		{"ru-RU,ru;q=0.9,en;q=0.5", "ru-RU"},
		{"fr-FR", "en-US"},
		{"not a locale", "en-US"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.requested); got != tt.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tt.requested, got, tt.want)
		}
	}
}

func TestSupportedIncludesBase(t *testing.T) {
	locales := Supported()
	if len(locales) == 0 || locales[0] != BaseLocale {
		t.Fatalf("supported = %v, want %s first", locales, BaseLocale)
	}
}
