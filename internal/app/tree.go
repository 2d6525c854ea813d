package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xxxsen/skingallery/internal/gallery"
	"github.com/xxxsen/skingallery/internal/model"

	"github.com/spf13/pflag"
)

// TreeCommand prints the manifest as a skin > type > file tree.
type TreeCommand struct {
	manifestPath string
	skin         string

	out io.Writer
}

func (c *TreeCommand) Name() string { return "tree" }

func (c *TreeCommand) Desc() string {
	return "Print the manifest as a file tree grouped by skin and type"
}

func NewTreeCommand() *TreeCommand { return &TreeCommand{out: os.Stdout} }

func (c *TreeCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.manifestPath, "manifest", defaultManifestPath, "manifest file to read")
	f.StringVar(&c.skin, "skin", "all", "skin id, or all")
}

func (c *TreeCommand) PreRun(ctx context.Context) error {
	if strings.TrimSpace(c.manifestPath) == "" {
		return errors.New("tree requires --manifest")
	}
	return nil
}

func (c *TreeCommand) Run(ctx context.Context) error {
	m, err := model.LoadManifest(c.manifestPath)
	if err != nil {
		return err
	}
	items := gallery.Filter{Skin: c.skin}.Apply(gallery.Flatten(m))
	_, err = fmt.Fprintln(c.out, gallery.RenderTree(gallery.BuildTree(items)))
	return err
}

func (c *TreeCommand) PostRun(ctx context.Context) error { return nil }

func init() {
	RegisterRunner("tree", func() IRunner { return NewTreeCommand() })
}
