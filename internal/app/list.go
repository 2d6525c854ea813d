package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xxxsen/skingallery/internal/gallery"
	"github.com/xxxsen/skingallery/internal/manifest"
	"github.com/xxxsen/skingallery/internal/model"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// ListCommand filters and sorts gallery items the way the front end does.
type ListCommand struct {
	manifestPath string
	skin         string
	types        []string
	tags         []string
	search       string
	sortBy       string
	asJSON       bool
	skinsOnly    bool

	filter gallery.Filter
	out    io.Writer
}

func (c *ListCommand) Name() string { return "list" }

func (c *ListCommand) Desc() string {
	return "List gallery items with the front end's filters and sort orders"
}

func NewListCommand() *ListCommand { return &ListCommand{out: os.Stdout} }

func (c *ListCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.manifestPath, "manifest", defaultManifestPath, "manifest file to read")
	f.StringVar(&c.skin, "skin", "all", "skin id, or all")
	f.StringSliceVar(&c.types, "type", nil, "media types to show; empty means all")
	f.StringSliceVar(&c.tags, "tag", nil, "tags every item must carry")
	f.StringVar(&c.search, "search", "", "case-insensitive text search")
	f.StringVar(&c.sortBy, "sort", gallery.SortSkin, "sort key: skin, title, type or year")
	f.BoolVar(&c.asJSON, "json", false, "print JSON instead of a table")
	f.BoolVar(&c.skinsOnly, "skins", false, "print the skin selector options instead of media")
}

func (c *ListCommand) PreRun(ctx context.Context) error {
	if strings.TrimSpace(c.manifestPath) == "" {
		return errors.New("list requires --manifest")
	}
	switch c.sortBy {
	case gallery.SortSkin, gallery.SortTitle, gallery.SortType, gallery.SortYear:
	default:
		return fmt.Errorf("unknown sort key %q", c.sortBy)
	}
	types, unknown := gallery.ParseTypes(c.types)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown media type(s): %s", strings.Join(unknown, ", "))
	}
	tags := make([]string, 0, len(c.tags))
	for _, t := range c.tags {
		if strings.TrimSpace(t) == "" {
			continue
		}
		tag, ok := manifest.CanonicalTag(t)
		if !ok {
			return fmt.Errorf("unknown tag %q, known tags: %s", t, strings.Join(model.TagSlugs(), ", "))
		}
		tags = append(tags, tag)
	}
	c.filter = gallery.Filter{Skin: c.skin, Types: types, Tags: tags, Search: c.search}

	logutil.GetLogger(ctx).Debug("starting list",
		zap.String("manifest", c.manifestPath),
		zap.String("skin", c.skin),
		zap.Strings("types", c.types),
		zap.String("sort", c.sortBy),
	)
	return nil
}

func (c *ListCommand) Run(ctx context.Context) error {
	m, err := model.LoadManifest(c.manifestPath)
	if err != nil {
		return err
	}
	items := c.filter.Apply(gallery.Flatten(m))
	gallery.Sort(items, c.sortBy)

	logutil.GetLogger(ctx).Debug("list filtered", zap.Int("items", len(items)))

	if c.skinsOnly {
		return c.printSkins(gallery.SkinOptions(items))
	}
	if c.asJSON {
		return c.printJSON(items)
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(c.out, "No media match the current filters.")
		return err
	}
	_, err = fmt.Fprintln(c.out, gallery.RenderTable(items))
	return err
}

func (c *ListCommand) printSkins(opts []gallery.SkinOption) error {
	if c.asJSON {
		if opts == nil {
			opts = []gallery.SkinOption{}
		}
		return c.printJSON(opts)
	}
	for _, opt := range opts {
		if _, err := fmt.Fprintf(c.out, "%s\t%s\n", opt.ID, opt.Name); err != nil {
			return err
		}
	}
	return nil
}

func (c *ListCommand) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal list result: %w", err)
	}
	_, err = fmt.Fprintln(c.out, string(data))
	return err
}

func (c *ListCommand) PostRun(ctx context.Context) error { return nil }

func init() {
	RegisterRunner("list", func() IRunner { return NewListCommand() })
}
