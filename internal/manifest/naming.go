package manifest

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	yearTokenRegexp         = regexp.MustCompile(`(?:^|[^0-9])((?:19|20)[0-9]{2})(?:[^0-9]|$)`)
	whitespaceCollapseRegex = regexp.MustCompile(`\s+`)
)

// DisplayName turns a kebab-case skin id into a display name.
func DisplayName(id string) string {
	name := strings.TrimSpace(strings.ReplaceAll(id, "-", " "))
	return cases.Title(language.Und, cases.NoLower).String(name)
}

// TitleFromFileName strips the extension and turns - and _ into spaces.
func TitleFromFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = whitespaceCollapseRegex.ReplaceAllString(base, " ")
	return strings.TrimSpace(base)
}

// YearFromID extracts the first 19xx/20xx token bounded by non-digits.
func YearFromID(id string) (int, bool) {
	m := yearTokenRegexp.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}
