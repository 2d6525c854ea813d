package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest is the document consumed by the gallery front end.
type Manifest struct {
	Meta  Meta   `json:"meta"`
	Skins []Skin `json:"skins"`
}

// Meta describes the archive subject and the generation date.
type Meta struct {
	Champion  string `json:"champion"`
	Generated string `json:"generated"`
}

// Skin groups every media item of a single cosmetic variant.
type Skin struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ReleaseYear *int        `json:"release_year,omitempty"`
	Media       []MediaItem `json:"media"`
}

// MediaItem captures a single local asset or YouTube link.
type MediaItem struct {
	Type      MediaType `json:"type"`
	Title     string    `json:"title"`
	Path      string    `json:"path,omitempty"`
	YouTubeID string    `json:"youtubeId,omitempty"`
	Thumb     string    `json:"thumb,omitempty"`
	Tags      []string  `json:"tags"`
}

// HasTag reports whether the item carries the given slug.
func (m MediaItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Year returns the release year or 0 when unknown.
func (s Skin) Year() int {
	if s.ReleaseYear == nil {
		return 0
	}
	return *s.ReleaseYear
}

// Marshal encodes the manifest with two-space indentation. Nil slices are
// emitted as empty arrays so consumers never see null.
func (m *Manifest) Marshal() ([]byte, error) {
	out := *m
	if out.Skins == nil {
		out.Skins = []Skin{}
	}
	skins := make([]Skin, len(out.Skins))
	for i, skin := range out.Skins {
		if skin.Media == nil {
			skin.Media = []MediaItem{}
		}
		media := make([]MediaItem, len(skin.Media))
		for j, item := range skin.Media {
			if item.Tags == nil {
				item.Tags = []string{}
			}
			media[j] = item
		}
		skin.Media = media
		skins[i] = skin
	}
	out.Skins = skins
	return json.MarshalIndent(out, "", "  ")
}

// LoadManifest reads and decodes a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return &m, nil
}
