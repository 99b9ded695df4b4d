// Package locale validates the locale requested for generated names and
// addresses against the supported allowlist.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Default is used whenever the requested locale is empty or unsupported.
const Default = "en_US"

var supported = []string{
	"en_US", // American English
	"en_GB", // British English
	"fr_FR", // French
	"de_DE", // German
	"es_ES", // Spanish
	"it_IT", // Italian
	"pt_BR", // Brazilian Portuguese
	"nl_NL", // Dutch
	"pl_PL", // Polish
	"ru_RU", // Russian
	"ja_JP", // Japanese
	"ko_KR", // Korean
	"zh_CN", // Chinese (Simplified)
	"ar_SA", // Arabic
	"es_MX", // Mexican Spanish
	"fr_CA", // Canadian French
}

var supportedSet = func() map[string]bool {
	set := make(map[string]bool, len(supported))
	for _, l := range supported {
		set[l] = true
	}
	return set
}()

// Supported returns the allowlist in display order.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// Normalize converts a BCP 47 or POSIX style identifier ("en-us", "en_US")
// to the "ll_RR" form used by the allowlist. It returns false when the
// identifier is not a well-formed language tag with a region.
func Normalize(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(id, "_", "-"))
	if err != nil {
		return "", false
	}
	base, baseConf := tag.Base()
	region, regionConf := tag.Region()
	if baseConf != language.Exact || regionConf != language.Exact {
		return "", false
	}
	return base.String() + "_" + region.String(), true
}

// IsSupported reports whether id names a supported locale.
func IsSupported(id string) bool {
	normalized, ok := Normalize(id)
	return ok && supportedSet[normalized]
}

// Resolve returns the normalized locale to use for id and whether id was
// accepted. Unsupported identifiers resolve to Default.
func Resolve(id string) (string, bool) {
	normalized, ok := Normalize(id)
	if ok && supportedSet[normalized] {
		return normalized, true
	}
	return Default, false
}
