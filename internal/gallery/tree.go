package gallery

import (
	"path"

	"github.com/xxxsen/skingallery/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

// TreeSkin is the top level of the file tree.
type TreeSkin struct {
	Name  string
	Types []TreeType
}

// TreeType groups the leaves of one media type.
type TreeType struct {
	Type   model.MediaType
	Leaves []TreeLeaf
}

// TreeLeaf is a single file or video link.
type TreeLeaf struct {
	Label     string
	Path      string
	YouTubeID string
}

// BuildTree groups items by skin name, then type, keeping first-seen order.
func BuildTree(items []Item) []TreeSkin {
	var skins []TreeSkin
	skinIdx := make(map[string]int)
	typeIdx := make(map[string]map[model.MediaType]int)

	for _, it := range items {
		si, ok := skinIdx[it.SkinName]
		if !ok {
			si = len(skins)
			skinIdx[it.SkinName] = si
			typeIdx[it.SkinName] = make(map[model.MediaType]int)
			skins = append(skins, TreeSkin{Name: it.SkinName})
		}
		types := typeIdx[it.SkinName]
		ti, ok := types[it.Type]
		if !ok {
			ti = len(skins[si].Types)
			types[it.Type] = ti
			skins[si].Types = append(skins[si].Types, TreeType{Type: it.Type})
		}
		skins[si].Types[ti].Leaves = append(skins[si].Types[ti].Leaves, TreeLeaf{
			Label:     leafLabel(it),
			Path:      it.Path,
			YouTubeID: it.YouTubeID,
		})
	}
	return skins
}

func leafLabel(it Item) string {
	switch {
	case it.Path != "":
		return path.Base(it.Path)
	case it.YouTubeID != "":
		return it.YouTubeID
	default:
		return it.Title
	}
}

var (
	skinStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8B500"))
	typeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	enumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D")).MarginRight(1)
)

// RenderTree draws the file tree, one root per skin.
func RenderTree(skins []TreeSkin) string {
	root := tree.New().Enumerator(tree.RoundedEnumerator).EnumeratorStyle(enumStyle)
	for _, s := range skins {
		skinNode := tree.Root(skinStyle.Render(s.Name)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(enumStyle)
		for _, tt := range s.Types {
			typeNode := tree.Root(typeStyle.Render(string(tt.Type))).
				Enumerator(tree.RoundedEnumerator).
				EnumeratorStyle(enumStyle)
			for _, leaf := range tt.Leaves {
				typeNode.Child(leaf.Label + " " + dimStyle.Render(leafTarget(leaf)))
			}
			skinNode.Child(typeNode)
		}
		root.Child(skinNode)
	}
	return root.String()
}

func leafTarget(leaf TreeLeaf) string {
	if leaf.Path != "" {
		return leaf.Path
	}
	if leaf.YouTubeID != "" {
		return WatchURL(leaf.YouTubeID)
	}
	return ""
}
