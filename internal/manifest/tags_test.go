package manifest

import (
	"testing"

	"github.com/xxxsen/skingallery/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestTagsFromFileName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name string
		want []string
	}{
		"bracket token":       {name: "splash [tft].jpg", want: []string{"tft"}},
		"underscore token":    {name: "splash__wr.png", want: []string{"wr"}},
		"unknown token":       {name: "splash [foo].png", want: []string{}},
		"bracket alias":       {name: "art [Teamfight-Tactics].webp", want: []string{"tft"}},
		"several markers":     {name: "x [lor]__tft__wr.jpg", want: []string{"lor", "tft", "wr"}},
		"duplicate markers":   {name: "x [tft]__tft.jpg", want: []string{"tft"}},
		"no markers":          {name: "pool_party_splash.jpg", want: []string{}},
		"single underscore":   {name: "splash_wr.jpg", want: []string{}},
		"extension not token": {name: "splash__legendary.jpg", want: []string{"legendary"}},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, TagsFromFileName(tc.name))
		})
	}
}

func TestTagsFromDirName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"lor"}, TagsFromDirName("legends-of-runeterra"))
	assert.Equal(t, []string{"tft"}, TagsFromDirName("teamfight_tactics"))
	assert.Equal(t, []string{"wr"}, TagsFromDirName("Wild-Rift"))
	assert.Equal(t, []string{"tft", "wr"}, TagsFromDirName("tft+wr"))
	assert.Equal(t, []string{}, TagsFromDirName("misc"))
	assert.Equal(t, []string{}, TagsFromDirName(""))
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	got := NormalizeTags([]string{"TFT", " wr ", "foo", "teamfighttactics", "Legends-Of-Runeterra"})
	assert.Equal(t, []string{"tft", "wr", "lor"}, got)
}

func TestMergeTagsAddsTypeImpliedTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"chroma"}, MergeTags(model.MediaChroma))
	assert.Equal(t, []string{"tft", "form"}, MergeTags(model.MediaForm, []string{"tft"}))
	assert.Equal(t, []string{"chroma", "tft"}, MergeTags(model.MediaChroma, []string{"chroma"}, []string{"tft"}))
	assert.Equal(t, []string{}, MergeTags(model.MediaSplash))
}

func TestCanonicalMediaType(t *testing.T) {
	t.Parallel()

	mt, ok := CanonicalMediaType("Key-Art")
	assert.True(t, ok)
	assert.Equal(t, model.MediaPromo, mt)

	mt, ok = CanonicalMediaType("chromas")
	assert.True(t, ok)
	assert.Equal(t, model.MediaChroma, mt)

	_, ok = CanonicalMediaType("wallpapers")
	assert.False(t, ok)

	for _, alias := range mediaFolderAliases {
		assert.True(t, alias.Type.Valid(), "alias table type %s", alias.Type)
	}
}

func TestClassifyExt(t *testing.T) {
	t.Parallel()

	mt, ok := classifyExt(model.MediaSplash, ".JPG")
	assert.True(t, ok)
	assert.Equal(t, model.MediaSplash, mt)

	mt, ok = classifyExt(model.MediaSplash, ".webm")
	assert.True(t, ok)
	assert.Equal(t, model.MediaVideo, mt)

	_, ok = classifyExt(model.MediaSplash, ".psd")
	assert.False(t, ok)
}
