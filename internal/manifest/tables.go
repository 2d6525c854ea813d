package manifest

import (
	"strings"

	"github.com/xxxsen/skingallery/internal/model"
)

type typeAlias struct {
	Type    model.MediaType
	Folders []string
}

// mediaFolderAliases maps each canonical type to the folder names accepted for it.
// youtube has no folder: it is read from youtube.txt.
var mediaFolderAliases = []typeAlias{
	{Type: model.MediaSplash, Folders: []string{"splash", "splashart", "splash-art", "splashes"}},
	{Type: model.MediaIcon, Folders: []string{"icon", "icons"}},
	{Type: model.MediaPromo, Folders: []string{"promo", "promoart", "key-art", "keyart"}},
	{Type: model.MediaConcept, Folders: []string{"concept", "conceptart", "concept-art", "concepts"}},
	{Type: model.MediaLoading, Folders: []string{"loading", "loadingscreen", "loading-screen"}},
	{Type: model.MediaModel, Folders: []string{"model", "models", "3d"}},
	{Type: model.MediaModelFace, Folders: []string{"model-face", "modelface", "face"}},
	{Type: model.MediaChroma, Folders: []string{"chroma", "chromas"}},
	{Type: model.MediaForm, Folders: []string{"form", "forms"}},
	{Type: model.MediaVideo, Folders: []string{"video", "videos"}},
	{Type: model.MediaEmote, Folders: []string{"emote", "emotes"}},
}

type tagAlias struct {
	Tag    string
	Tokens []string
}

var tagTokenAliases = []tagAlias{
	{Tag: model.TagChroma, Tokens: []string{"chroma", "chromas"}},
	{Tag: model.TagForm, Tokens: []string{"form", "forms"}},
	{Tag: model.TagTFT, Tokens: []string{"tft", "teamfighttactics", "teamfight-tactics"}},
	{Tag: model.TagWildRift, Tokens: []string{"wr", "wildrift", "wild-rift"}},
	{Tag: model.TagRuneterra, Tokens: []string{"lor", "runeterra", "legendsofruneterra", "legends-of-runeterra"}},
	{Tag: model.TagLeague, Tokens: []string{"lol", "leagueoflegends", "league-of-legends"}},
	{Tag: model.TagPrestige, Tokens: []string{"prestige"}},
	{Tag: model.TagLegendary, Tokens: []string{"legendary"}},
	{Tag: model.TagUltimate, Tokens: []string{"ultimate"}},
	{Tag: model.TagMythic, Tokens: []string{"mythic"}},
	{Tag: model.TagAnimated, Tokens: []string{"animated", "anim"}},
	{Tag: model.TagCinematic, Tokens: []string{"cinematic", "cinematics"}},
}

var (
	imageExts = map[string]struct{}{
		".png": {}, ".jpg": {}, ".jpeg": {}, ".webp": {}, ".gif": {},
	}
	videoExts = map[string]struct{}{
		".mp4": {}, ".webm": {}, ".mov": {}, ".m4v": {},
	}
	tokenToTag = buildTokenIndex()
)

func buildTokenIndex() map[string]string {
	idx := make(map[string]string)
	for _, a := range tagTokenAliases {
		for _, tok := range a.Tokens {
			idx[tok] = a.Tag
		}
	}
	return idx
}

// CanonicalTag maps a raw token to its tag slug.
func CanonicalTag(token string) (string, bool) {
	tag, ok := tokenToTag[strings.ToLower(strings.TrimSpace(token))]
	return tag, ok
}

// CanonicalMediaType maps a folder name to its canonical type.
func CanonicalMediaType(folder string) (model.MediaType, bool) {
	folder = strings.ToLower(folder)
	for _, a := range mediaFolderAliases {
		for _, f := range a.Folders {
			if f == folder {
				return a.Type, true
			}
		}
	}
	return "", false
}

// classifyExt resolves the media type of a file inside a folder declared as
// the given type. Video extensions force the video type.
func classifyExt(declared model.MediaType, ext string) (model.MediaType, bool) {
	ext = strings.ToLower(ext)
	if _, ok := videoExts[ext]; ok {
		return model.MediaVideo, true
	}
	if _, ok := imageExts[ext]; ok {
		return declared, true
	}
	return "", false
}
