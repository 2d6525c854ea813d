package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xxxsen/skingallery/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, time.March, 9, 18, 30, 0, 0, time.UTC) }

func touch(t *testing.T, path string) {
	t.Helper()
	writeFile(t, path, "x")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestBuilder(repo string) *Builder {
	return NewBuilder(Options{
		Champion:   "Ezreal",
		Candidates: DefaultCandidates(repo, "assets", "ezreal"),
		RepoRoot:   repo,
		Now:        fixedNow,
	})
}

func build(t *testing.T, repo string) *model.Manifest {
	t.Helper()
	m, err := newTestBuilder(repo).Build(context.Background())
	require.NoError(t, err)
	return m
}

func findSkin(m *model.Manifest, id string) *model.Skin {
	for i := range m.Skins {
		if m.Skins[i].ID == id {
			return &m.Skins[i]
		}
	}
	return nil
}

func TestBuildFullSkin(t *testing.T) {
	repo := t.TempDir()
	skin := filepath.Join(repo, "assets", "ezreal", "skins", "pool-party-2016")

	writeFile(t, filepath.Join(skin, "meta.json"), `{"release_year": 2015}`)
	touch(t, filepath.Join(skin, "splash", "pool-party_splash.jpg"))
	touch(t, filepath.Join(skin, "splash", "teaser.webm"))
	touch(t, filepath.Join(skin, "splash", "notes.txt"))
	touch(t, filepath.Join(skin, "key-art", "teamfight-tactics", "little legend.png"))
	touch(t, filepath.Join(skin, "concept", "sketch [foo].psd"))
	touch(t, filepath.Join(skin, "chromas", "ruby.png"))
	touch(t, filepath.Join(skin, "videos", "login.mp4"))
	touch(t, filepath.Join(skin, "wallpapers", "ignored.jpg"))
	writeFile(t, filepath.Join(skin, "youtube.txt"), "https://youtu.be/dQw4w9WgXcQ | \"Teaser\"\n")

	m := build(t, repo)
	assert.Equal(t, model.Meta{Champion: "Ezreal", Generated: "2024-03-09"}, m.Meta)
	require.Len(t, m.Skins, 1)

	s := m.Skins[0]
	assert.Equal(t, "pool-party-2016", s.ID)
	assert.Equal(t, "Pool Party 2016", s.Name)
	require.NotNil(t, s.ReleaseYear)
	assert.Equal(t, 2015, *s.ReleaseYear)

	base := "assets/ezreal/skins/pool-party-2016/"
	want := []model.MediaItem{
		{Type: model.MediaSplash, Title: "pool party splash", Path: base + "splash/pool-party_splash.jpg", Tags: []string{}},
		{Type: model.MediaVideo, Title: "teaser", Path: base + "splash/teaser.webm", Tags: []string{}},
		{Type: model.MediaPromo, Title: "little legend", Path: base + "key-art/teamfight-tactics/little legend.png", Tags: []string{"tft"}},
		{Type: model.MediaChroma, Title: "ruby", Path: base + "chromas/ruby.png", Tags: []string{"chroma"}},
		{Type: model.MediaVideo, Title: "login", Path: base + "videos/login.mp4", Tags: []string{}},
		{Type: model.MediaYouTube, Title: "Teaser", YouTubeID: "dQw4w9WgXcQ", Thumb: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", Tags: []string{}},
	}
	assert.Equal(t, want, s.Media)
}

func TestBuildSkipsEmptySkins(t *testing.T) {
	repo := t.TempDir()
	root := filepath.Join(repo, "assets", "ezreal", "skins")

	touch(t, filepath.Join(root, "debonair", "splash", "debonair.jpg"))
	touch(t, filepath.Join(root, "unsupported-only", "splash", "layered.psd"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty-dir", "splash"), 0o755))
	writeFile(t, filepath.Join(root, "bad-links", "youtube.txt"), "nothing here\nhttps://vimeo.com/1234567\n")
	touch(t, filepath.Join(root, "stray-file.jpg"))

	m := build(t, repo)
	require.Len(t, m.Skins, 1)
	assert.Equal(t, "debonair", m.Skins[0].ID)
	assert.Nil(t, m.Skins[0].ReleaseYear)
}

func TestBuildMissingRoot(t *testing.T) {
	repo := t.TempDir()

	m := build(t, repo)
	assert.Equal(t, "Ezreal", m.Meta.Champion)
	assert.Equal(t, "2024-03-09", m.Meta.Generated)
	assert.NotNil(t, m.Skins)
	assert.Empty(t, m.Skins)
}

func TestBuildFallsBackToSubjectDir(t *testing.T) {
	repo := t.TempDir()
	touch(t, filepath.Join(repo, "assets", "ezreal", "frosted", "icon", "frosted.png"))

	m := build(t, repo)
	require.Len(t, m.Skins, 1)
	assert.Equal(t, "assets/ezreal/frosted/icon/frosted.png", m.Skins[0].Media[0].Path)
	assert.Equal(t, model.MediaIcon, m.Skins[0].Media[0].Type)
}

func TestBuildChromaFolderAlwaysTagged(t *testing.T) {
	repo := t.TempDir()
	skin := filepath.Join(repo, "assets", "ezreal", "skins", "arcade")
	touch(t, filepath.Join(skin, "chroma", "plain.png"))
	touch(t, filepath.Join(skin, "chroma", "spin.mp4"))
	touch(t, filepath.Join(skin, "chroma", "tagged [chroma].png"))
	touch(t, filepath.Join(skin, "chroma", "wild-rift", "mobile__wr.jpg"))
	touch(t, filepath.Join(skin, "forms", "stage.webm"))
	touch(t, filepath.Join(skin, "forms", "stage2.webp"))

	m := build(t, repo)
	s := findSkin(m, "arcade")
	require.NotNil(t, s)
	require.Len(t, s.Media, 6)
	for _, item := range s.Media[:4] {
		assert.True(t, item.HasTag(model.TagChroma), item.Path)
	}

	base := "assets/ezreal/skins/arcade/"
	assert.Equal(t, model.MediaChroma, s.Media[0].Type)
	assert.Equal(t, model.MediaVideo, s.Media[1].Type)
	assert.Equal(t, base+"chroma/spin.mp4", s.Media[1].Path)
	assert.Equal(t, []string{"chroma"}, s.Media[1].Tags)
	assert.Equal(t, model.MediaChroma, s.Media[2].Type)
	assert.Equal(t, model.MediaChroma, s.Media[3].Type)
	assert.Equal(t, []string{"wr", "chroma"}, s.Media[3].Tags)

	assert.Equal(t, model.MediaVideo, s.Media[4].Type)
	assert.Equal(t, base+"forms/stage.webm", s.Media[4].Path)
	assert.Equal(t, []string{"form"}, s.Media[4].Tags)
	assert.Equal(t, model.MediaForm, s.Media[5].Type)
	assert.Equal(t, []string{"form"}, s.Media[5].Tags)
}

func TestBuildAbsoluteRootWithRelativeRepo(t *testing.T) {
	repo := t.TempDir()
	root := filepath.Join(repo, "assets", "ezreal", "skins")
	touch(t, filepath.Join(root, "arcade", "splash", "a.jpg"))
	t.Chdir(repo)

	m, err := NewBuilder(Options{
		Champion:   "Ezreal",
		Candidates: []string{root},
		RepoRoot:   ".",
		Now:        fixedNow,
	}).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Skins, 1)
	assert.Equal(t, "assets/ezreal/skins/arcade/splash/a.jpg", m.Skins[0].Media[0].Path)
}

func TestBuildRootOutsideRepo(t *testing.T) {
	base := t.TempDir()
	repo := filepath.Join(base, "site")
	require.NoError(t, os.MkdirAll(repo, 0o755))
	root := filepath.Join(base, "art", "skins")
	touch(t, filepath.Join(root, "arcade", "splash", "a.jpg"))

	m, err := NewBuilder(Options{
		Candidates: []string{root},
		RepoRoot:   repo,
		Now:        fixedNow,
	}).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Skins, 1)
	assert.Equal(t, "../art/skins/arcade/splash/a.jpg", m.Skins[0].Media[0].Path)
}

func TestBuildOverrides(t *testing.T) {
	repo := t.TempDir()
	skin := filepath.Join(repo, "assets", "ezreal", "skins", "star-guardian")
	splash := filepath.Join(skin, "splash")

	touch(t, filepath.Join(splash, "sg_splash_v1.jpg"))
	touch(t, filepath.Join(splash, "sg_splash_v2.jpg"))
	touch(t, filepath.Join(splash, "lor", "card.png"))
	writeFile(t, filepath.Join(splash, "titles.json"), `{
		"sg_splash_v1.jpg": "Original Splash",
		"lor/card.png": "Runeterra Card",
		"card.png": "Generic Card"
	}`)
	writeFile(t, filepath.Join(splash, "tags.json"), `{
		"sg_splash_v2.jpg": ["Legendary", "bogus", "teamfight-tactics"],
		"card.png": ["wr"]
	}`)
	writeFile(t, filepath.Join(skin, "meta.json"), `{"name": "Star Guardian Ezreal", "release_year": "2017"}`)

	m := build(t, repo)
	s := findSkin(m, "star-guardian")
	require.NotNil(t, s)
	assert.Equal(t, "Star Guardian Ezreal", s.Name)
	require.NotNil(t, s.ReleaseYear)
	assert.Equal(t, 2017, *s.ReleaseYear)

	require.Len(t, s.Media, 3)
	assert.Equal(t, "Runeterra Card", s.Media[0].Title)
	assert.Equal(t, []string{"lor", "wr"}, s.Media[0].Tags)
	assert.Equal(t, "Original Splash", s.Media[1].Title)
	assert.Equal(t, "sg splash v2", s.Media[2].Title)
	assert.Equal(t, []string{"legendary", "tft"}, s.Media[2].Tags)
}

func TestBuildMalformedSidecarsFallBack(t *testing.T) {
	repo := t.TempDir()
	skin := filepath.Join(repo, "assets", "ezreal", "skins", "pulsefire-2012")
	touch(t, filepath.Join(skin, "splash", "pulsefire.jpg"))
	writeFile(t, filepath.Join(skin, "meta.json"), `{"name": `)
	writeFile(t, filepath.Join(skin, "splash", "titles.json"), `not json`)
	writeFile(t, filepath.Join(skin, "splash", "tags.json"), `{"pulsefire.jpg": "tft"}`)

	m := build(t, repo)
	s := findSkin(m, "pulsefire-2012")
	require.NotNil(t, s)
	assert.Equal(t, "Pulsefire 2012", s.Name)
	require.NotNil(t, s.ReleaseYear)
	assert.Equal(t, 2012, *s.ReleaseYear)
	assert.Equal(t, "pulsefire", s.Media[0].Title)
	assert.Empty(t, s.Media[0].Tags)
}

func TestBuildYAMLSidecar(t *testing.T) {
	repo := t.TempDir()
	skin := filepath.Join(repo, "assets", "ezreal", "skins", "frosted")
	touch(t, filepath.Join(skin, "loading", "frosted.jpg"))
	writeFile(t, filepath.Join(skin, "meta.yaml"), "name: Frosted Ezreal\nrelease_year: 2010\n")

	m := build(t, repo)
	s := findSkin(m, "frosted")
	require.NotNil(t, s)
	assert.Equal(t, "Frosted Ezreal", s.Name)
	require.NotNil(t, s.ReleaseYear)
	assert.Equal(t, 2010, *s.ReleaseYear)
}

func TestBuildIsDeterministic(t *testing.T) {
	repo := t.TempDir()
	root := filepath.Join(repo, "assets", "ezreal", "skins")
	for _, id := range []string{"zeta", "alpha", "mid-2019"} {
		touch(t, filepath.Join(root, id, "splash", "b.jpg"))
		touch(t, filepath.Join(root, id, "splash", "a.png"))
		touch(t, filepath.Join(root, id, "icons", "tft", "i.png"))
	}

	first := build(t, repo)
	second := build(t, repo)
	assert.Equal(t, first.Skins, second.Skins)

	ids := make([]string, 0, len(first.Skins))
	for _, s := range first.Skins {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"alpha", "mid-2019", "zeta"}, ids)
	assert.Equal(t, "a", first.Skins[0].Media[0].Title)
	assert.Equal(t, "b", first.Skins[0].Media[1].Title)

	a, err := first.Marshal()
	require.NoError(t, err)
	b, err := second.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestBuildCanceledContext(t *testing.T) {
	repo := t.TempDir()
	touch(t, filepath.Join(repo, "assets", "ezreal", "skins", "debonair", "splash", "x.jpg"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestBuilder(repo).Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteFile(t *testing.T) {
	repo := t.TempDir()
	touch(t, filepath.Join(repo, "assets", "ezreal", "skins", "debonair", "splash", "debonair.jpg"))
	m := build(t, repo)

	out := filepath.Join(repo, "data", "manifest.json")
	require.NoError(t, WriteFile(out, m))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	skins := decoded["skins"].([]interface{})
	require.Len(t, skins, 1)
	skin := skins[0].(map[string]interface{})
	_, hasYear := skin["release_year"]
	assert.False(t, hasYear)
	media := skin["media"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, []interface{}{}, media["tags"])
	_, hasYT := media["youtubeId"]
	assert.False(t, hasYT)

	leftovers, err := filepath.Glob(filepath.Join(repo, "data", "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	res, err := Validate(data)
	require.NoError(t, err)
	assert.True(t, res.Valid, "%+v", res.Issues)
}

func TestWriteFileFailsOnUnwritableTarget(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	touch(t, blocker)

	err := WriteFile(filepath.Join(blocker, "manifest.json"), &model.Manifest{})
	assert.Error(t, err)
}
