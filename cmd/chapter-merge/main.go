// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the chapter-merge CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd merges the chapters of a book, or keeps merging them with --watch.
var rootCmd = &cobra.Command{
	Use:   "chapter-merge",
	Short: "Merge numbered chapter directories of markdown into one document",
	Long: `chapter-merge concatenates the markdown files found in the numbered
subdirectories of a book directory (ch1/, ch2/, part10/ ...) into a single
<title>.md under a "# <title>" heading, and optionally converts the result
with pandoc into other formats (docx, epub, html, pdf ...).

With --watch it stays running and merges again whenever the book changes.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	addMergeFlags(rootCmd.PersistentFlags())
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
}

// shorthandAliases maps the multi-letter single-dash shorthands accepted by
// the CLI to their long flag names. pflag only supports one-letter
// shorthands, so these are rewritten before parsing.
var shorthandAliases = map[string]string{
	"ff": "final-folder",
	"pf": "pandoc-format",
	"wi": "watch-interval",
	"ah": "add-headers",
}

// camelAliases maps camelCase flag and config key names to their flag names.
var camelAliases = map[string]string{
	"finalFolder":    "final-folder",
	"pandocFormat":   "pandoc-format",
	"watchInterval":  "watch-interval",
	"addHeaders":     "add-headers",
	"converterImage": "converter-image",
}

// normalizeArgs rewrites -ff, -pf, -wi and -ah (with or without "=value")
// to their long forms. Arguments after "--" are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") {
			name, value, hasValue := strings.Cut(a[1:], "=")
			if long, ok := shorthandAliases[name]; ok {
				a = "--" + long
				if hasValue {
					a += "=" + value
				}
			}
		}
		out = append(out, a)
	}
	return out
}

// normalizeFlagName lets --finalFolder and friends resolve to --final-folder.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if long, ok := camelAliases[name]; ok {
		name = long
	}
	return pflag.NormalizedName(name)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// execute runs the root command with args and returns the process exit
// code. Any error is reported as a single "failure:" line on stdout.
func execute(ctx context.Context, args []string, stdout io.Writer) int {
	rootCmd.SetOut(stdout)
	rootCmd.SetArgs(normalizeArgs(args))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stdout, "failure: %v\n", err)
		return 1
	}
	return 0
}
