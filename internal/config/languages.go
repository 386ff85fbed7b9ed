package config

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// SupportedLanguages maps canonical engine language codes to human-readable
// names. These codes are the only values a ConfigurationKey may carry; cache
// identity depends on them being canonical.
var SupportedLanguages = map[string]string{ //nolint:gochecknoglobals // Static language table
	// East Asian
	"ch":          "Chinese (simplified + traditional + English)",
	"chinese_cht": "Traditional Chinese",
	"en":          "English",
	"japan":       "Japanese",
	"korean":      "Korean",
	// European
	"french":     "French",
	"german":     "German",
	"italian":    "Italian",
	"spanish":    "Spanish",
	"portuguese": "Portuguese",
	"russian":    "Russian",
	"uk":         "Ukrainian",
	"be":         "Belarusian",
	"latin":      "Latin",
	// Middle Eastern
	"arabic": "Arabic",
	"fa":     "Persian",
	"ug":     "Uyghur",
	// South Asian
	"hi": "Hindi",
	"mr": "Marathi",
	"ne": "Nepali",
	"te": "Telugu",
	"ka": "Kannada",
	"ta": "Tamil",
	// Southeast Asian
	"th": "Thai",
	"vi": "Vietnamese",
	"ms": "Malay",
	"id": "Indonesian",
	// Script families
	"cyrillic":   "Cyrillic",
	"devanagari": "Devanagari",
}

// languageAliases folds common spellings and ISO codes to canonical engine
// codes.
var languageAliases = map[string]string{ //nolint:gochecknoglobals // Static alias table
	"chinese":  "ch",
	"zh":       "ch",
	"english":  "en",
	"japanese": "japan",
	"ja":       "japan",
	"korea":    "korean",
	"ko":       "korean",
	"de":       "german",
	"fr":       "french",
	"it":       "italian",
	"es":       "spanish",
	"pt":       "portuguese",
	"ru":       "russian",
	"ar":       "arabic",
}

// bcp47Base maps BCP-47 base languages to canonical engine codes, used as a
// fallback so inputs like "zh-Hans" or "ja-JP" normalize without an explicit
// alias entry.
var bcp47Base = map[string]string{ //nolint:gochecknoglobals // Static fallback table
	"zh": "ch",
	"en": "en",
	"ja": "japan",
	"ko": "korean",
	"fr": "french",
	"de": "german",
	"it": "italian",
	"es": "spanish",
	"pt": "portuguese",
	"ru": "russian",
	"ar": "arabic",
	"hi": "hi",
	"th": "th",
	"vi": "vi",
	"ms": "ms",
	"id": "id",
	"ta": "ta",
	"te": "te",
	"uk": "uk",
	"be": "be",
	"fa": "fa",
	"mr": "mr",
	"ne": "ne",
}

// CanonicalLanguage resolves a language code or alias to its canonical engine
// code. Resolution order: exact canonical code, explicit alias, BCP-47 parse
// of the base language (so "zh-Hans" folds to "ch"). Returns an error for
// anything it cannot resolve.
func CanonicalLanguage(lang string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(lang))
	if code == "" {
		return "", fmt.Errorf("language code is empty")
	}

	if _, ok := SupportedLanguages[code]; ok {
		return code, nil
	}
	if canonical, ok := languageAliases[code]; ok {
		return canonical, nil
	}

	if tag, err := language.Parse(code); err == nil {
		base, conf := tag.Base()
		if conf >= language.High {
			if canonical, ok := bcp47Base[base.String()]; ok {
				return canonical, nil
			}
		}
	}

	return "", fmt.Errorf("unsupported language %q", lang)
}

// IsSupportedLanguage reports whether lang resolves to a canonical code.
func IsSupportedLanguage(lang string) bool {
	_, err := CanonicalLanguage(lang)
	return err == nil
}

// LanguageCodes returns all canonical language codes in sorted order, for
// display and validation messages.
func LanguageCodes() []string {
	codes := make([]string, 0, len(SupportedLanguages))
	for code := range SupportedLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// LanguageAliases returns a copy of the alias table in sorted-key order,
// for the languages listing command.
func LanguageAliases() map[string]string {
	aliases := make(map[string]string, len(languageAliases))
	for alias, canonical := range languageAliases {
		aliases[alias] = canonical
	}
	return aliases
}
