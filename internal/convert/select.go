// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"

	"github.com/pdiddy/chapter-merge/internal/container"
	"github.com/pdiddy/chapter-merge/pkg/types"
)

// backends holds the constructors New chooses between. Tests replace them.
type backends struct {
	pandoc    func() (Converter, error)
	container func(image string) (Converter, error)
	builtin   func() Converter
}

var defaultBackends = backends{
	pandoc: func() (Converter, error) {
		return NewPandocConverter()
	},
	container: func(image string) (Converter, error) {
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewContainerConverter(rt, image)
	},
	builtin: func() Converter {
		return NewBuiltinConverter()
	},
}

// New returns the converter for cfg.Backend. With types.BackendAuto it tries
// pandoc, then a container runtime, then falls back to the builtin HTML
// converter, printing the choice to diag.
func New(cfg types.ConverterConfig, diag io.Writer) (Converter, error) {
	return defaultBackends.choose(cfg, diag)
}

func (b backends) choose(cfg types.ConverterConfig, diag io.Writer) (Converter, error) {
	image := cfg.Image
	if image == "" {
		image = types.DefaultConverterImage
	}

	switch cfg.Backend {
	case types.BackendPandoc:
		return b.pandoc()
	case types.BackendContainer:
		return b.container(image)
	case types.BackendBuiltin:
		return b.builtin(), nil
	case "", types.BackendAuto:
	default:
		return nil, fmt.Errorf("unknown converter backend %q (want auto, pandoc, container, or builtin)", cfg.Backend)
	}

	if c, err := b.pandoc(); err == nil {
		return c, nil
	}
	if c, err := b.container(image); err == nil {
		fmt.Fprintf(diag, "pandoc not found, converting with %s\n", c.Name())
		return c, nil
	}
	fmt.Fprintln(diag, "pandoc not found, converting with the builtin renderer (html only)")
	return b.builtin(), nil
}
