// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/chapter-merge/internal/convert"
	"github.com/pdiddy/chapter-merge/pkg/types"
)

const envPrefix = "CHAPTER_MERGE"

// addMergeFlags registers the merge options on fs. Empty string defaults
// are resolved against the working directory by loadConfig.
func addMergeFlags(fs *pflag.FlagSet) {
	fs.StringP("title", "t", "", "document title and output file name (default: name of the current directory)")
	fs.StringP("directory", "d", "", "book directory containing the numbered chapter directories (default: current directory)")
	fs.String("final-folder", "", "output directory, alias -ff (default: current directory)")
	fs.String("pandoc-format", "", "comma-separated formats to convert the merged document to, alias -pf (e.g. docx,epub)")
	fs.BoolP("watch", "w", false, "merge again whenever the book directory changes")
	fs.Int("watch-interval", int(types.DefaultWatchInterval/time.Millisecond), "quiet period in milliseconds before a watch re-run, alias -wi")
	fs.Bool("add-headers", false, `prefix every chapter file with "## <n>" from its file name, alias -ah`)
	fs.StringP("subtitle", "s", "", "file whose contents become the line under the title")
	fs.StringP("config", "c", "", "JSON config file whose keys pre-populate these options")
	fs.String("converter", string(types.BackendAuto), "conversion backend: auto, pandoc, container, or builtin")
	fs.String("converter-image", types.DefaultConverterImage, "pandoc image for the container backend")
	fs.String("order", string(types.OrderListing), "chapter order: listing (directory order), name, or numeric")
}

// loadConfig resolves the merge configuration. Precedence: explicitly set
// flags, CHAPTER_MERGE_* environment variables, the --config file, then
// flag defaults.
func loadConfig(fs *pflag.FlagSet, diag io.Writer) (types.Config, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return types.Config{}, fmt.Errorf("binding flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return types.Config{}, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		fmt.Fprintln(diag, "Using config file:", v.ConfigFileUsed())

		// Older config files use camelCase keys (finalFolder, addHeaders).
		for camel, key := range camelAliases {
			if v.InConfig(camel) && !v.InConfig(key) {
				v.SetDefault(key, v.Get(camel))
			}
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return types.Config{}, fmt.Errorf("getting working directory: %w", err)
	}

	order, err := types.ParseChapterOrder(v.GetString("order"))
	if err != nil {
		return types.Config{}, err
	}
	backend, err := types.ParseConverterBackend(v.GetString("converter"))
	if err != nil {
		return types.Config{}, err
	}

	intervalMS := v.GetInt("watch-interval")
	if intervalMS < 0 {
		return types.Config{}, fmt.Errorf("watch-interval must not be negative, got %d", intervalMS)
	}

	cfg := types.Config{
		Merge: types.MergeRequest{
			Title:        v.GetString("title"),
			SourceDir:    v.GetString("directory"),
			OutputDir:    v.GetString("final-folder"),
			Formats:      parseFormats(v.Get("pandoc-format")),
			AddHeaders:   v.GetBool("add-headers"),
			SubtitlePath: v.GetString("subtitle"),
			Order:        order,
		},
		Watch: types.WatchConfig{
			Enabled:  v.GetBool("watch"),
			Interval: time.Duration(intervalMS) * time.Millisecond,
		},
		Converter: types.ConverterConfig{
			Backend: backend,
			Image:   v.GetString("converter-image"),
		},
	}
	if cfg.Merge.Title == "" {
		cfg.Merge.Title = filepath.Base(cwd)
	}
	if cfg.Merge.SourceDir == "" {
		cfg.Merge.SourceDir = cwd
	}
	if cfg.Merge.OutputDir == "" {
		cfg.Merge.OutputDir = cwd
	}
	return cfg, nil
}

// parseFormats accepts a comma-separated string (flag or env) or a list
// (JSON array in a config file).
func parseFormats(raw any) []string {
	return convert.SplitFormats(strings.Join(cast.ToStringSlice(raw), ","))
}
