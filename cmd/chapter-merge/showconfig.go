// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chapter-merge/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	Long: `Config resolves flags, CHAPTER_MERGE_* environment variables, and the
--config file exactly like a merge would, then prints the result without
merging anything. Use it to check what a config file actually sets.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return writeConfigYAML(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configView is the printed form of types.Config. Durations are shown as
// strings ("1s") rather than nanosecond counts.
type configView struct {
	Merge types.MergeRequest `yaml:"merge"`
	Watch struct {
		Enabled  bool   `yaml:"enabled"`
		Interval string `yaml:"interval"`
	} `yaml:"watch"`
	Converter types.ConverterConfig `yaml:"converter"`
}

func writeConfigYAML(w io.Writer, cfg types.Config) error {
	view := configView{Merge: cfg.Merge, Converter: cfg.Converter}
	view.Watch.Enabled = cfg.Watch.Enabled
	view.Watch.Interval = cfg.Watch.Interval.String()

	data, err := yaml.Marshal(view)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
