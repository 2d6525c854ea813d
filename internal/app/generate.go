package app

import (
	"context"
	"fmt"
	"time"

	"github.com/xxxsen/skingallery/internal/config"
	"github.com/xxxsen/skingallery/internal/manifest"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// GenerateCommand scans the assets tree and writes the gallery manifest.
type GenerateCommand struct {
	configPath string
	repoRoot   string
	assetsRoot string
	output     string
	champion   string
	subject    string

	cfg *config.Config
	now func() time.Time
}

func (c *GenerateCommand) Name() string { return "generate" }

func (c *GenerateCommand) Desc() string {
	return "Scan the skin assets tree and write the gallery manifest"
}

func NewGenerateCommand() *GenerateCommand { return &GenerateCommand{now: time.Now} }

func (c *GenerateCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.configPath, configFlag, "", "config file (json or yaml)")
	f.StringVar(&c.repoRoot, "repo", "", "repository root media paths are relative to")
	f.StringVar(&c.assetsRoot, "assets-root", "", "skins root directory, skips candidate resolution")
	f.StringVar(&c.output, "out", "", "manifest output path")
	f.StringVar(&c.champion, "champion", "", "champion name written to meta.champion")
	f.StringVar(&c.subject, "subject", "", "subject folder under the assets dir")
}

func (c *GenerateCommand) PreRun(ctx context.Context) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	overrideString(&cfg.RepoRoot, c.repoRoot)
	overrideString(&cfg.AssetsRoot, c.assetsRoot)
	overrideString(&cfg.Output, c.output)
	overrideString(&cfg.Champion, c.champion)
	overrideString(&cfg.Subject, c.subject)
	c.cfg = cfg

	logutil.GetLogger(ctx).Info("starting generate",
		zap.String("repo", cfg.RepoRoot),
		zap.String("assets_root", cfg.AssetsRoot),
		zap.String("subject", cfg.Subject),
		zap.String("out", cfg.Output),
	)
	return nil
}

func (c *GenerateCommand) Run(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)
	cfg := c.cfg

	candidates := manifest.DefaultCandidates(cfg.RepoRoot, cfg.AssetsDir, cfg.Subject)
	if cfg.AssetsRoot != "" {
		candidates = []string{resolvePath(cfg.RepoRoot, cfg.AssetsRoot)}
	}

	builder := manifest.NewBuilder(manifest.Options{
		Champion:   cfg.Champion,
		Candidates: candidates,
		RepoRoot:   cfg.RepoRoot,
		Now:        c.now,
	})
	m, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	out := resolvePath(cfg.RepoRoot, cfg.Output)
	if err := manifest.WriteFile(out, m); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	media := 0
	for _, s := range m.Skins {
		media += len(s.Media)
	}
	logger.Info("manifest written",
		zap.String("out", out),
		zap.Int("skins", len(m.Skins)),
		zap.Int("media", media),
	)
	return nil
}

func (c *GenerateCommand) PostRun(ctx context.Context) error { return nil }

func overrideString(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

func init() {
	RegisterRunner("generate", func() IRunner { return NewGenerateCommand() })
}
