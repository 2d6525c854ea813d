package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

const (
	youtubeListFile   = "youtube.txt"
	titleOverrideFile = "titles.json"
	tagOverrideFile   = "tags.json"
)

var skinMetaFiles = []string{"meta.json", "meta.yaml", "meta.yml"}

// skinMeta holds explicit overrides read from a skin's sidecar file.
type skinMeta struct {
	Name        string
	ReleaseYear int
}

// The helpers below are advisory: any failure means "absent".

func readFileOptional(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

func readDirOptional(path string) ([]os.DirEntry, bool) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, false
	}
	return entries, true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func readSkinMeta(skinDir string) (skinMeta, bool) {
	for _, name := range skinMetaFiles {
		data, ok := readFileOptional(filepath.Join(skinDir, name))
		if !ok {
			continue
		}
		raw := make(map[string]interface{})
		var err error
		if strings.HasSuffix(name, ".json") {
			err = json.Unmarshal(data, &raw)
		} else {
			err = yaml.Unmarshal(data, &raw)
		}
		if err != nil {
			return skinMeta{}, false
		}
		return skinMetaFromRaw(raw), true
	}
	return skinMeta{}, false
}

func skinMetaFromRaw(raw map[string]interface{}) skinMeta {
	var meta skinMeta
	if name, ok := raw["name"].(string); ok {
		meta.Name = strings.TrimSpace(name)
	}
	if year, ok := coerceYear(raw["release_year"]); ok {
		meta.ReleaseYear = year
	}
	return meta
}

func coerceYear(v interface{}) (int, bool) {
	switch val := v.(type) {
	case float64:
		if val > 0 && val == float64(int(val)) {
			return int(val), true
		}
	case int:
		if val > 0 {
			return val, true
		}
	case string:
		if year, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && year > 0 {
			return year, true
		}
	}
	return 0, false
}

func readTitleOverrides(typeDir string) map[string]string {
	data, ok := readFileOptional(filepath.Join(typeDir, titleOverrideFile))
	if !ok {
		return nil
	}
	out := make(map[string]string)
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func readTagOverrides(typeDir string) map[string][]string {
	data, ok := readFileOptional(filepath.Join(typeDir, tagOverrideFile))
	if !ok {
		return nil
	}
	out := make(map[string][]string)
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

// overrideKeys returns the lookup keys of a file, most specific first.
func overrideKeys(subdir, file string) []string {
	if subdir == "" {
		return []string{file}
	}
	return []string{subdir + "/" + file, file}
}

func lookupTitle(overrides map[string]string, subdir, file string) (string, bool) {
	for _, key := range overrideKeys(subdir, file) {
		if title, ok := overrides[key]; ok && strings.TrimSpace(title) != "" {
			return strings.TrimSpace(title), true
		}
	}
	return "", false
}

func lookupTags(overrides map[string][]string, subdir, file string) ([]string, bool) {
	for _, key := range overrideKeys(subdir, file) {
		if tags, ok := overrides[key]; ok {
			return tags, true
		}
	}
	return nil, false
}
