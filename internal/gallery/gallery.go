package gallery

import (
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/xxxsen/skingallery/internal/manifest"
	"github.com/xxxsen/skingallery/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Item is one media entry flattened together with its skin.
type Item struct {
	SkinID    string          `json:"skinId"`
	SkinName  string          `json:"skinName"`
	Year      int             `json:"year,omitempty"`
	Type      model.MediaType `json:"type"`
	Title     string          `json:"title"`
	Path      string          `json:"path,omitempty"`
	YouTubeID string          `json:"youtubeId,omitempty"`
	Thumb     string          `json:"thumb,omitempty"`
	Tags      []string        `json:"tags"`
}

// Sort keys.
const (
	SortSkin  = "skin"
	SortTitle = "title"
	SortType  = "type"
	SortYear  = "year"
)

// Flatten turns a manifest into gallery items in manifest order.
func Flatten(m *model.Manifest) []Item {
	if m == nil {
		return nil
	}
	var items []Item
	for _, skin := range m.Skins {
		name := skin.Name
		if name == "" {
			name = skin.ID
		}
		for _, media := range skin.Media {
			title := media.Title
			if title == "" {
				title = inferTitle(media.Path, media.YouTubeID)
			}
			tags := media.Tags
			if tags == nil {
				tags = []string{}
			}
			items = append(items, Item{
				SkinID:    skin.ID,
				SkinName:  name,
				Year:      skin.Year(),
				Type:      media.Type,
				Title:     title,
				Path:      media.Path,
				YouTubeID: media.YouTubeID,
				Thumb:     media.Thumb,
				Tags:      tags,
			})
		}
	}
	return items
}

func inferTitle(p, youtubeID string) string {
	if youtubeID != "" {
		return "YouTube " + youtubeID
	}
	if p == "" {
		return ""
	}
	base := path.Base(p)
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.NewReplacer("-", " ", "_", " ").Replace(base)
}

// Filter selects gallery items. Zero values match everything.
type Filter struct {
	// Skin is a skin id; "" and "all" mean every skin.
	Skin string
	// Types is the set of visible types; empty means all.
	Types map[model.MediaType]bool
	// Tags must all be present on an item.
	Tags []string
	// Search is matched case-insensitively against title, skin name, type and year.
	Search string
}

// Match reports whether the item passes the filter.
func (f Filter) Match(it Item) bool {
	if f.Skin != "" && f.Skin != "all" && it.SkinID != f.Skin {
		return false
	}
	if len(f.Types) > 0 && !f.Types[it.Type] {
		return false
	}
	for _, tag := range f.Tags {
		if !hasTag(it.Tags, tag) {
			return false
		}
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	year := ""
	if it.Year > 0 {
		year = strconv.Itoa(it.Year)
	}
	return strings.Contains(strings.ToLower(it.Title), q) ||
		strings.Contains(strings.ToLower(it.SkinName), q) ||
		strings.Contains(strings.ToLower(string(it.Type)), q) ||
		strings.Contains(year, q)
}

// Apply returns the matching items, leaving the input untouched.
func (f Filter) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Sort orders items in place by key. Unknown keys sort by skin.
func Sort(items []Item, key string) {
	col := collate.New(language.English)
	cmp := func(a, b string) int { return col.CompareString(a, b) }

	var less func(a, b Item) bool
	switch key {
	case SortTitle:
		less = func(a, b Item) bool { return cmp(a.Title, b.Title) < 0 }
	case SortType:
		less = func(a, b Item) bool { return cmp(string(a.Type), string(b.Type)) < 0 }
	case SortYear:
		less = func(a, b Item) bool {
			if a.Year != b.Year {
				return a.Year > b.Year
			}
			return cmp(a.Title, b.Title) < 0
		}
	default:
		less = func(a, b Item) bool {
			if c := cmp(a.SkinName, b.SkinName); c != 0 {
				return c < 0
			}
			if c := cmp(string(a.Type), string(b.Type)); c != 0 {
				return c < 0
			}
			return cmp(a.Title, b.Title) < 0
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// SkinOption is an entry of the skin selector.
type SkinOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SkinOptions returns the distinct skins sorted by display name.
func SkinOptions(items []Item) []SkinOption {
	seen := make(map[string]struct{})
	var out []SkinOption
	for _, it := range items {
		if _, ok := seen[it.SkinID]; ok {
			continue
		}
		seen[it.SkinID] = struct{}{}
		out = append(out, SkinOption{ID: it.SkinID, Name: it.SkinName})
	}
	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool { return col.CompareString(out[i].Name, out[j].Name) < 0 })
	return out
}

// ParseTypes turns type names into a filter set. Folder aliases such as
// "chromas" or "key-art" are accepted; anything else is reported as unknown.
func ParseTypes(names []string) (map[model.MediaType]bool, []string) {
	set := make(map[model.MediaType]bool, len(names))
	var unknown []string
	for _, n := range names {
		t := model.MediaType(strings.ToLower(strings.TrimSpace(n)))
		if t == "" {
			continue
		}
		if !t.Valid() {
			alias, ok := manifest.CanonicalMediaType(string(t))
			if !ok {
				unknown = append(unknown, n)
				continue
			}
			t = alias
		}
		set[t] = true
	}
	return set, unknown
}

// WatchURL links to the YouTube watch page of a video.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
