package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		flags    []string
		wantLang string
		wantStr  string
		wantErr  bool
	}{
		{
			name:     "canonical code passes through",
			lang:     "en",
			wantLang: "en",
			wantStr:  "en",
		},
		{
			name:     "alias folds to canonical",
			lang:     "chinese",
			wantLang: "ch",
			wantStr:  "ch",
		},
		{
			name:     "case insensitive",
			lang:     "EN",
			wantLang: "en",
			wantStr:  "en",
		},
		{
			name:     "bcp47 tag folds to canonical",
			lang:     "zh",
			wantLang: "ch",
			wantStr:  "ch",
		},
		{
			name:     "flags sorted and deduplicated",
			lang:     "en",
			flags:    []string{FlagUnwarp, FlagOrientationClassify, FlagUnwarp},
			wantLang: "en",
			wantStr:  "en+orientation-classify+unwarp",
		},
		{
			name:     "blank flags dropped",
			lang:     "en",
			flags:    []string{"", "  ", FlagUnwarp},
			wantLang: "en",
			wantStr:  "en+unwarp",
		},
		{
			name:    "unknown language rejected",
			lang:    "klingon",
			wantErr: true,
		},
		{
			name:    "empty language rejected",
			lang:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NormalizeKey(tt.lang, tt.flags...)
			if tt.wantErr {
				require.Error(t, err)
				var configErr *ConfigError
				require.ErrorAs(t, err, &configErr)
				assert.Equal(t, tt.lang, configErr.Key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLang, key.Lang)
			assert.Equal(t, tt.wantStr, key.String())
		})
	}
}

func TestKeyEquality(t *testing.T) {
	// Flag order and aliasing must not affect cache identity.
	a := MustKey("chinese", FlagUnwarp, FlagOrientationClassify)
	b := MustKey("ch", FlagOrientationClassify, FlagUnwarp)
	assert.Equal(t, a, b)

	c := MustKey("ch")
	assert.NotEqual(t, a, c)
}

func TestKeyFlags(t *testing.T) {
	key := MustKey("en", FlagUnwarp, FlagOrientationClassify)
	assert.Equal(t, []string{FlagOrientationClassify, FlagUnwarp}, key.Flags())
	assert.True(t, key.HasFlag(FlagUnwarp))
	assert.False(t, key.HasFlag(FlagTextlineOrientation))

	bare := MustKey("en")
	assert.Nil(t, bare.Flags())
	assert.False(t, bare.HasFlag(FlagUnwarp))
}

func TestMustKeyPanicsOnUnknownLanguage(t *testing.T) {
	assert.Panics(t, func() { MustKey("klingon") })
}
