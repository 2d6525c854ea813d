package manifest

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xxxsen/skingallery/internal/model"
)

var (
	bracketTokenRegexp    = regexp.MustCompile(`\[([^\[\]]+)\]`)
	underscoreTokenRegexp = regexp.MustCompile(`__([A-Za-z0-9-]+)`)
	nonAlnumRegexp        = regexp.MustCompile(`[^a-z0-9]+`)
)

// TagsFromDirName harvests tags from a tag subdirectory name. The whole name,
// the name without separators and every alphanumeric part are candidates.
func TagsFromDirName(name string) []string {
	return NormalizeTags(tokenCandidates(name))
}

// TagsFromFileName harvests tags from [token] and __token markers.
func TagsFromFileName(name string) []string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	var tokens []string
	for _, m := range bracketTokenRegexp.FindAllStringSubmatch(base, -1) {
		tokens = append(tokens, tokenCandidates(m[1])...)
	}
	for _, m := range underscoreTokenRegexp.FindAllStringSubmatch(base, -1) {
		tokens = append(tokens, tokenCandidates(m[1])...)
	}
	return NormalizeTags(tokens)
}

// NormalizeTags lower-cases tokens, maps them to tag slugs, drops unknown
// tokens and duplicates. The first-seen order is kept.
func NormalizeTags(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tag, ok := CanonicalTag(tok)
		if !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// MergeTags unions tag lists in order and appends the tag implied by the
// folder type for chroma and form folders, whatever the file's final type.
func MergeTags(folderType model.MediaType, lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	switch folderType {
	case model.MediaChroma:
		all = append(all, model.TagChroma)
	case model.MediaForm:
		all = append(all, model.TagForm)
	}
	return NormalizeTags(all)
}

func tokenCandidates(raw string) []string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return nil
	}
	out := []string{lower}
	if joined := nonAlnumRegexp.ReplaceAllString(lower, ""); joined != lower && joined != "" {
		out = append(out, joined)
	}
	for _, part := range nonAlnumRegexp.Split(lower, -1) {
		if part != "" && part != lower {
			out = append(out, part)
		}
	}
	return out
}
