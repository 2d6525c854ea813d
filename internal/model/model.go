package model

// MediaType is one of the canonical media kinds.
type MediaType string

const (
	MediaSplash    MediaType = "splash"
	MediaIcon      MediaType = "icon"
	MediaPromo     MediaType = "promo"
	MediaConcept   MediaType = "concept"
	MediaLoading   MediaType = "loading"
	MediaModel     MediaType = "model"
	MediaModelFace MediaType = "model-face"
	MediaChroma    MediaType = "chroma"
	MediaForm      MediaType = "form"
	MediaVideo     MediaType = "video"
	MediaEmote     MediaType = "emote"
	MediaYouTube   MediaType = "youtube"
)

var mediaTypes = []MediaType{
	MediaSplash,
	MediaIcon,
	MediaPromo,
	MediaConcept,
	MediaLoading,
	MediaModel,
	MediaModelFace,
	MediaChroma,
	MediaForm,
	MediaVideo,
	MediaEmote,
	MediaYouTube,
}

// MediaTypes returns the canonical types in manifest order.
func MediaTypes() []MediaType {
	out := make([]MediaType, len(mediaTypes))
	copy(out, mediaTypes)
	return out
}

// Valid reports whether t is a canonical media type.
func (t MediaType) Valid() bool {
	for _, c := range mediaTypes {
		if c == t {
			return true
		}
	}
	return false
}

// Tag slugs.
const (
	TagChroma    = "chroma"
	TagForm      = "form"
	TagTFT       = "tft"
	TagWildRift  = "wr"
	TagRuneterra = "lor"
	TagLeague    = "lol"
	TagPrestige  = "prestige"
	TagLegendary = "legendary"
	TagUltimate  = "ultimate"
	TagMythic    = "mythic"
	TagAnimated  = "animated"
	TagCinematic = "cinematic"
)

var tagSlugs = []string{
	TagChroma,
	TagForm,
	TagTFT,
	TagWildRift,
	TagRuneterra,
	TagLeague,
	TagPrestige,
	TagLegendary,
	TagUltimate,
	TagMythic,
	TagAnimated,
	TagCinematic,
}

// TagSlugs returns the canonical tag vocabulary.
func TagSlugs() []string {
	out := make([]string, len(tagSlugs))
	copy(out, tagSlugs)
	return out
}
