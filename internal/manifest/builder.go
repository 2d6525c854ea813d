package manifest

import (
	"context"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/xxxsen/skingallery/internal/model"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const generatedLayout = "2006-01-02"

// Options controls where the builder looks for assets and how it labels them.
type Options struct {
	// Champion is written to meta.champion.
	Champion string
	// Candidates are tried in order; the first existing directory is the skins root.
	Candidates []string
	// RepoRoot is the directory media paths are made relative to.
	RepoRoot string
	// Now defaults to time.Now.
	Now func() time.Time
}

// DefaultCandidates returns <repo>/<assets>/<subject>/skins and <repo>/<assets>/<subject>.
func DefaultCandidates(repoRoot, assetsDir, subject string) []string {
	base := filepath.Join(repoRoot, assetsDir, subject)
	return []string{filepath.Join(base, "skins"), base}
}

// ResolveRoot returns the first candidate that exists and is a directory.
func ResolveRoot(candidates []string) (string, bool) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if isDir(c) {
			return c, true
		}
	}
	return "", false
}

// Builder turns an assets tree into a manifest. Filesystem problems never
// abort a build: whatever cannot be read is treated as absent.
type Builder struct {
	opts Options
}

// NewBuilder creates a builder.
func NewBuilder(opts Options) *Builder {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RepoRoot == "" {
		opts.RepoRoot = "."
	}
	return &Builder{opts: opts}
}

// Build scans the first resolvable root. The only error returned is the
// context's.
func (b *Builder) Build(ctx context.Context) (*model.Manifest, error) {
	logger := logutil.GetLogger(ctx)
	m := &model.Manifest{
		Meta: model.Meta{
			Champion:  b.opts.Champion,
			Generated: b.opts.Now().Format(generatedLayout),
		},
		Skins: []model.Skin{},
	}

	root, ok := ResolveRoot(b.opts.Candidates)
	if !ok {
		logger.Warn("no assets root found, writing empty manifest",
			zap.Strings("candidates", b.opts.Candidates),
		)
		return m, nil
	}
	logger.Info("scanning assets root", zap.String("root", root))

	prefix := b.pathPrefix(ctx, root)
	entries, _ := readDirOptional(root)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		skin, ok := b.buildSkin(filepath.Join(root, id), path.Join(prefix, id), id)
		if !ok {
			logger.Debug("skin has no media, skipped", zap.String("skin", id))
			continue
		}
		logger.Debug("skin processed",
			zap.String("skin", id),
			zap.Int("media", len(skin.Media)),
		)
		m.Skins = append(m.Skins, skin)
	}
	return m, nil
}

// pathPrefix returns root relative to the repo root with forward slashes.
func (b *Builder) pathPrefix(ctx context.Context, root string) string {
	logger := logutil.GetLogger(ctx)
	absRepo, err := filepath.Abs(b.opts.RepoRoot)
	if err != nil {
		logger.Warn("resolve repo root failed, media paths use the assets root as given",
			zap.String("repo", b.opts.RepoRoot), zap.Error(err))
		return filepath.ToSlash(root)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		logger.Warn("resolve assets root failed, media paths use the assets root as given",
			zap.String("root", root), zap.Error(err))
		return filepath.ToSlash(root)
	}
	rel, err := filepath.Rel(absRepo, absRoot)
	if err != nil {
		logger.Warn("assets root not reachable from repo root, media paths use the assets root as given",
			zap.String("repo", absRepo), zap.String("root", absRoot), zap.Error(err))
		return filepath.ToSlash(root)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		logger.Warn("assets root is outside the repo root",
			zap.String("repo", absRepo), zap.String("root", absRoot), zap.String("prefix", filepath.ToSlash(rel)))
	}
	return filepath.ToSlash(rel)
}

func (b *Builder) buildSkin(dir, relDir, id string) (model.Skin, bool) {
	skin := model.Skin{ID: id}

	meta, _ := readSkinMeta(dir)
	if meta.ReleaseYear > 0 {
		year := meta.ReleaseYear
		skin.ReleaseYear = &year
	} else if year, ok := YearFromID(id); ok {
		skin.ReleaseYear = &year
	}
	skin.Name = meta.Name
	if skin.Name == "" {
		skin.Name = DisplayName(id)
	}

	for _, alias := range mediaFolderAliases {
		for _, folder := range alias.Folders {
			items := collectFolder(filepath.Join(dir, folder), path.Join(relDir, folder), alias.Type)
			skin.Media = append(skin.Media, items...)
		}
	}

	if body, ok := readFileOptional(filepath.Join(dir, youtubeListFile)); ok {
		skin.Media = append(skin.Media, ParseYouTubeList(string(body))...)
	}

	if len(skin.Media) == 0 {
		return model.Skin{}, false
	}
	return skin, true
}

// collectFolder classifies the files of one alias folder and of its direct
// subdirectories.
func collectFolder(dir, relDir string, declared model.MediaType) []model.MediaItem {
	entries, ok := readDirOptional(dir)
	if !ok {
		return nil
	}
	titles := readTitleOverrides(dir)
	tags := readTagOverrides(dir)

	var items []model.MediaItem
	for _, entry := range entries {
		if !entry.IsDir() {
			if item, ok := classifyFile(relDir, "", entry.Name(), declared, nil, titles, tags); ok {
				items = append(items, item)
			}
			continue
		}
		sub := entry.Name()
		subEntries, ok := readDirOptional(filepath.Join(dir, sub))
		if !ok {
			continue
		}
		dirTags := TagsFromDirName(sub)
		for _, se := range subEntries {
			if se.IsDir() {
				continue
			}
			if item, ok := classifyFile(relDir, sub, se.Name(), declared, dirTags, titles, tags); ok {
				items = append(items, item)
			}
		}
	}
	return items
}

func classifyFile(relDir, subdir, name string, declared model.MediaType, dirTags []string,
	titles map[string]string, tagOverrides map[string][]string) (model.MediaItem, bool) {
	mediaType, ok := classifyExt(declared, filepath.Ext(name))
	if !ok {
		return model.MediaItem{}, false
	}

	title, ok := lookupTitle(titles, subdir, name)
	if !ok {
		title = TitleFromFileName(name)
	}

	explicit, _ := lookupTags(tagOverrides, subdir, name)

	return model.MediaItem{
		Type:  mediaType,
		Title: title,
		Path:  path.Join(relDir, subdir, name),
		Tags:  MergeTags(declared, dirTags, TagsFromFileName(name), NormalizeTags(explicit)),
	}, true
}
