package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xxxsen/skingallery/internal/config"
	"github.com/xxxsen/skingallery/internal/model"
	"github.com/xxxsen/skingallery/internal/storage"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// PublishCommand uploads a manifest and the local assets it references.
type PublishCommand struct {
	configPath   string
	manifestPath string
	repoRoot     string

	cfg   *config.Config
	store storage.Client
}

func (c *PublishCommand) Name() string { return "publish" }

func (c *PublishCommand) Desc() string {
	return "Upload the manifest and every referenced asset to the S3 bucket"
}

func NewPublishCommand() *PublishCommand { return &PublishCommand{} }

func (c *PublishCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.configPath, configFlag, "", "config file (json or yaml)")
	f.StringVar(&c.manifestPath, "manifest", "", "manifest file to publish, defaults to the configured output")
	f.StringVar(&c.repoRoot, "repo", "", "repository root media paths are relative to")
}

func (c *PublishCommand) PreRun(ctx context.Context) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	overrideString(&cfg.RepoRoot, c.repoRoot)
	if c.manifestPath == "" {
		c.manifestPath = resolvePath(cfg.RepoRoot, cfg.Output)
	}
	if strings.TrimSpace(c.manifestPath) == "" {
		return errors.New("publish requires --manifest")
	}
	c.cfg = cfg

	store := storage.DefaultClient()
	if store == nil {
		store, err = storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("init s3 client: %w", err)
		}
		storage.SetDefaultClient(store)
	}
	c.store = store

	logutil.GetLogger(ctx).Info("starting publish",
		zap.String("manifest", c.manifestPath),
		zap.String("bucket", cfg.S3.Bucket),
	)
	return nil
}

func (c *PublishCommand) Run(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)
	m, err := model.LoadManifest(c.manifestPath)
	if err != nil {
		return err
	}

	uploaded, skipped := 0, 0
	seen := make(map[string]struct{})
	for _, skin := range m.Skins {
		for _, item := range skin.Media {
			if item.Path == "" {
				continue
			}
			key := strings.TrimPrefix(filepath.ToSlash(item.Path), "/")
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			local := resolvePath(c.cfg.RepoRoot, filepath.FromSlash(item.Path))
			if _, err := os.Stat(local); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					logger.Warn("referenced file missing, skip", zap.String("skin", skin.ID), zap.String("path", local))
					skipped++
					continue
				}
				return fmt.Errorf("stat %s: %w", local, err)
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.store.UploadFile(ctx, key, local, storage.ContentType(local)); err != nil {
				return fmt.Errorf("upload %s: %w", key, err)
			}
			uploaded++
			logger.Debug("asset uploaded", zap.String("key", key), zap.String("url", c.store.ObjectURL(key)))
		}
	}

	manifestKey := c.cfg.S3.ManifestKey
	if manifestKey == "" {
		manifestKey = defaultManifestPath
	}
	if err := c.store.UploadFile(ctx, manifestKey, c.manifestPath, "application/json"); err != nil {
		return fmt.Errorf("upload manifest: %w", err)
	}

	logger.Info("publish finished",
		zap.Int("uploaded", uploaded),
		zap.Int("skipped", skipped),
		zap.String("manifest_url", c.store.ObjectURL(manifestKey)),
	)
	return nil
}

func (c *PublishCommand) PostRun(ctx context.Context) error { return nil }

func init() {
	RegisterRunner("publish", func() IRunner { return NewPublishCommand() })
}
