package config

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalLanguage(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "canonical code", in: "en", want: "en"},
		{name: "canonical multi-segment code", in: "chinese_cht", want: "chinese_cht"},
		{name: "alias", in: "chinese", want: "ch"},
		{name: "iso alias", in: "ja", want: "japan"},
		{name: "uppercase folds", in: "FRENCH", want: "french"},
		{name: "surrounding whitespace trimmed", in: "  en  ", want: "en"},
		{name: "bcp47 tag with region", in: "zh-Hans", want: "ch"},
		{name: "bcp47 tag with country", in: "pt-BR", want: "portuguese"},
		{name: "empty", in: "", wantErr: true},
		{name: "unknown", in: "klingon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalLanguage(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSupportedLanguage(t *testing.T) {
	assert.True(t, IsSupportedLanguage("en"))
	assert.True(t, IsSupportedLanguage("chinese"))
	assert.False(t, IsSupportedLanguage("klingon"))
	assert.False(t, IsSupportedLanguage(""))
}

func TestLanguageCodes(t *testing.T) {
	codes := LanguageCodes()
	assert.Len(t, codes, len(SupportedLanguages))
	assert.True(t, sort.StringsAreSorted(codes))
	assert.Contains(t, codes, "ch")
}

func TestLanguageAliasesResolve(t *testing.T) {
	// Every alias must point at a canonical code, or normalization would
	// produce keys the engine bindings cannot translate.
	for alias, canonical := range LanguageAliases() {
		_, ok := SupportedLanguages[canonical]
		assert.True(t, ok, "alias %q points at unknown code %q", alias, canonical)
	}
}

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, IsSupportedImage("scan.png"))
	assert.True(t, IsSupportedImage("SCAN.JPG"))
	assert.True(t, IsSupportedImage("/abs/path/page.tiff"))
	assert.False(t, IsSupportedImage("document.pdf"))
	assert.False(t, IsSupportedImage("noextension"))
	assert.False(t, IsSupportedImage("archive.png.zip"))
}

func TestImageExtensions(t *testing.T) {
	exts := ImageExtensions()
	assert.Contains(t, exts, ".png")
	assert.Contains(t, exts, ".webp")
	for _, ext := range exts {
		assert.True(t, IsSupportedImage("x"+ext))
	}
}
