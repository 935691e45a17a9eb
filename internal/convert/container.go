// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/chapter-merge/internal/container"
)

// ContainerConverter converts markdown by piping it through a pandoc
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
}

// NewContainerConverter creates a converter that uses the given container
// runtime to run image. It verifies that the image exists locally before
// returning.
func NewContainerConverter(rt container.Runtime, image string) (*ContainerConverter, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pandoc image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

// Name returns the runtime and image, e.g. "docker:pandoc/core:latest".
func (c *ContainerConverter) Name() string {
	return c.runtime.Name() + ":" + c.image
}

// Convert runs pandoc inside the container with the markdown on stdin and
// returns what it writes to stdout. pdf is refused: pandoc can only produce
// it through a PDF engine writing to a named file, and the stock image ships
// none.
func (c *ContainerConverter) Convert(ctx context.Context, markdown, format string) ([]byte, error) {
	if format == "pdf" {
		return nil, fmt.Errorf("%w %q: %s cannot write pdf to stdout", ErrUnsupportedFormat, format, c.Name())
	}
	args := []string{"-f", "markdown", "-t", format, "-o", "-"}

	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, args, strings.NewReader(markdown), &out); err != nil {
		return nil, err
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%s produced empty %s output", c.image, format)
	}
	return out.Bytes(), nil
}
