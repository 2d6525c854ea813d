package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xxxsen/skingallery/internal/model"
)

const defaultYouTubeTitle = "YouTube"

var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{6,})`),
	regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{6,})`),
}

// ExtractYouTubeID returns the video id of a short link or a watch URL.
func ExtractYouTubeID(s string) (string, bool) {
	for _, re := range youtubeIDPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ThumbnailURL returns the canonical high quality thumbnail of a video.
func ThumbnailURL(id string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", id)
}

// ParseYouTubeLine parses "url", "url | title" or "title | url". Lines
// without an extractable video id are rejected.
func ParseYouTubeLine(line string) (model.MediaItem, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.MediaItem{}, false
	}

	url, title := line, ""
	if strings.Contains(line, "|") {
		parts := strings.SplitN(line, "|", 2)
		left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if isHTTPURL(right) && !isHTTPURL(left) {
			url, title = right, left
		} else {
			url, title = left, right
		}
	}

	id, ok := ExtractYouTubeID(url)
	if !ok {
		return model.MediaItem{}, false
	}
	title = unquote(title)
	if title == "" {
		title = defaultYouTubeTitle
	}
	return model.MediaItem{
		Type:      model.MediaYouTube,
		Title:     title,
		YouTubeID: id,
		Thumb:     ThumbnailURL(id),
		Tags:      []string{},
	}, true
}

// ParseYouTubeList parses every line of a youtube.txt body. Lines may end
// with \n or \r\n and have no length limit.
func ParseYouTubeList(body string) []model.MediaItem {
	var items []model.MediaItem
	for _, line := range strings.Split(body, "\n") {
		if item, ok := ParseYouTubeLine(strings.TrimSuffix(line, "\r")); ok {
			items = append(items, item)
		}
	}
	return items
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
