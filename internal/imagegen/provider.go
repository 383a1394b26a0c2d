// Package imagegen turns a text prompt into image bytes via a pretrained
// generative model hosted behind an API.
package imagegen

import (
	"context"
)

// Provider generates an image from a prompt and returns the encoded bytes.
// Implementations must be safe for concurrent use.
type Provider interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
