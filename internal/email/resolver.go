// Package email recovers email addresses from plain and obfuscated contact
// text. Recovery is heuristic: the resolver returns an empty string rather
// than guessing on ambiguous input.
package email

import (
	"regexp"
	"strings"
)

var (
	plainRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// Obfuscated form: a local part, an "at" separator, then domain labels
	// joined by literal dots or "dot" separators.
	obfuscatedRe = regexp.MustCompile(
		`(?i)([a-z0-9._%+-]+)\s*(?:\[\s*at\s*\]|\(\s*at\s*\)|\bat\b)\s*` +
			`((?:[a-z0-9-]+\s*(?:\[\s*dot\s*\]|\(\s*dot\s*\)|\bdot\b|\.)\s*)+[a-z]{2,})`)

	dotSepRe = regexp.MustCompile(`(?i)\s*(?:\[\s*dot\s*\]|\(\s*dot\s*\)|\bdot\b)\s*`)
	wsRe     = regexp.MustCompile(`\s+`)
)

// Resolve scans text fragments for an email address. Plain addresses win;
// otherwise obfuscated patterns are reconstructed. The first high-confidence
// match is returned, or the empty string when none is found.
func Resolve(fragments []string) string {
	for _, text := range fragments {
		if addr := plainRe.FindString(text); addr != "" {
			return addr
		}
	}
	for _, text := range fragments {
		if addr := deobfuscate(text); addr != "" {
			return addr
		}
	}
	return ""
}

// deobfuscate reconstructs the canonical form of an obfuscated address and
// validates the result against the plain email shape.
func deobfuscate(text string) string {
	m := obfuscatedRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	local := m[1]
	domain := dotSepRe.ReplaceAllString(m[2], ".")
	domain = wsRe.ReplaceAllString(domain, "")

	addr := local + "@" + domain
	// The rebuilt address must be the whole match, not a substring of
	// something bigger; anything else is too ambiguous to report.
	if plainRe.FindString(addr) != addr {
		return ""
	}
	if strings.Count(addr, "@") != 1 {
		return ""
	}
	return addr
}
