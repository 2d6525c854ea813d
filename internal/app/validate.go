package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xxxsen/skingallery/internal/manifest"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// ValidateCommand checks an emitted manifest against the consumer contract.
type ValidateCommand struct {
	manifestPath string
}

func (c *ValidateCommand) Name() string { return "validate" }

func (c *ValidateCommand) Desc() string {
	return "Check a generated manifest against the gallery schema"
}

func NewValidateCommand() *ValidateCommand { return &ValidateCommand{} }

func (c *ValidateCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.manifestPath, "manifest", defaultManifestPath, "manifest file to check")
}

func (c *ValidateCommand) PreRun(ctx context.Context) error {
	if strings.TrimSpace(c.manifestPath) == "" {
		return errors.New("validate requires --manifest")
	}
	logutil.GetLogger(ctx).Info("starting validate", zap.String("manifest", c.manifestPath))
	return nil
}

func (c *ValidateCommand) Run(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)
	res, err := manifest.ValidateFile(c.manifestPath)
	if err != nil {
		return err
	}
	if res.Valid {
		logger.Info("manifest is valid", zap.String("manifest", c.manifestPath))
		return nil
	}
	for _, issue := range res.Issues {
		logger.Error("manifest issue",
			zap.String("path", issue.Path),
			zap.String("keyword", issue.Keyword),
			zap.String("message", issue.Message),
		)
	}
	return fmt.Errorf("manifest %s has %d issue(s)", c.manifestPath, len(res.Issues))
}

func (c *ValidateCommand) PostRun(ctx context.Context) error { return nil }

func init() {
	RegisterRunner("validate", func() IRunner { return NewValidateCommand() })
}
