package engine

import (
	"sort"
	"strings"

	"github.com/StephenKaylonChan/ocrkit/internal/config"
)

// Key identifies an engine configuration for cache purposes: a canonical
// language code plus a normalized feature-flag set. Keys are comparable
// value types; equality defines cache identity.
type Key struct {
	// Lang is a canonical language code from config.SupportedLanguages.
	Lang string

	// flags is the sorted, deduplicated feature flag list joined with "+".
	// Kept pre-joined so Key stays comparable.
	flags string
}

// Feature flags recognized by the engine bindings. Mirrors the boolean
// toggles the upstream engine constructor accepts.
const (
	FlagOrientationClassify = "orientation-classify"
	FlagUnwarp              = "unwarp"
	FlagTextlineOrientation = "textline-orientation"
)

// NormalizeKey builds a Key from a language code or alias plus feature
// flags. The language is folded to its canonical form; an unrecognized
// language yields a *ConfigError. Flags are lowercased, deduplicated and
// sorted so that equal configurations always produce equal keys.
func NormalizeKey(lang string, flags ...string) (Key, error) {
	canonical, err := config.CanonicalLanguage(lang)
	if err != nil {
		return Key{}, &ConfigError{Key: lang, Msg: err.Error()}
	}

	seen := make(map[string]struct{}, len(flags))
	normalized := make([]string, 0, len(flags))
	for _, flag := range flags {
		f := strings.ToLower(strings.TrimSpace(flag))
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		normalized = append(normalized, f)
	}
	sort.Strings(normalized)

	return Key{Lang: canonical, flags: strings.Join(normalized, "+")}, nil
}

// MustKey is NormalizeKey for statically known-good inputs; it panics on
// error. Intended for tests and built-in candidate lists.
func MustKey(lang string, flags ...string) Key {
	key, err := NormalizeKey(lang, flags...)
	if err != nil {
		panic(err)
	}
	return key
}

// Flags returns the normalized feature flags.
func (k Key) Flags() []string {
	if k.flags == "" {
		return nil
	}
	return strings.Split(k.flags, "+")
}

// HasFlag reports whether the normalized flag set contains flag.
func (k Key) HasFlag(flag string) bool {
	for _, f := range k.Flags() {
		if f == flag {
			return true
		}
	}
	return false
}

// String renders the key as "lang" or "lang+flag1+flag2", the form used in
// logs and reports.
func (k Key) String() string {
	if k.flags == "" {
		return k.Lang
	}
	return k.Lang + "+" + k.flags
}
