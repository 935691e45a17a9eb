// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/chapter-merge/internal/convert"
	"github.com/pdiddy/chapter-merge/internal/merge"
	"github.com/pdiddy/chapter-merge/internal/watch"
	"github.com/pdiddy/chapter-merge/pkg/types"
)

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return runMerge(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runMerge merges once, or keeps merging on changes when watch mode is on.
func runMerge(ctx context.Context, cfg types.Config, stdout, stderr io.Writer) error {
	var conv convert.Converter
	if len(cfg.Merge.Formats) > 0 {
		c, err := convert.New(cfg.Converter, stderr)
		if err != nil {
			// Conversions are optional; the markdown is still written and
			// each format is reported as failed.
			fmt.Fprintf(stderr, "warning: %v\n", err)
		} else {
			conv = c
		}
	}

	merger := merge.NewMerger(conv, stdout, stderr)

	if !cfg.Watch.Enabled {
		_, err := merger.Run(ctx, cfg.Merge)
		return err
	}

	w, err := watch.New(watch.Options{
		Root:     cfg.Merge.SourceDir,
		Interval: cfg.Watch.Interval,
		Ignore:   watch.IgnoreOutputs(cfg.Merge.OutputDir, cfg.Merge.Title),
		Diag:     stderr,
	}, func() {
		if _, err := merger.Run(ctx, cfg.Merge); err != nil {
			fmt.Fprintf(stdout, "failure: %v\n", err)
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Watching %s (interval %s), press Ctrl-C to stop\n", cfg.Merge.SourceDir, cfg.Watch.Interval)
	return w.Run(ctx)
}
