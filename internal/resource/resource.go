// Package resource resolves card art references into blobs that can be embedded in a
// set archive.
package resource

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sort"

	_ "golang.org/x/image/webp"
)

// ErrResourceUnavailable is returned when an art reference cannot be resolved
var ErrResourceUnavailable = errors.New("resource unavailable")

// Blob is one resolved resource. Blobs with the same Digest are the same resource no
// matter which card referenced them.
type Blob struct {
	Ref    string
	Ext    string
	Data   []byte
	Digest string
	Width  int
	Height int
}

// NewBlob computes the identity and, for images, the dimensions of data
func NewBlob(ref, ext string, data []byte) *Blob {
	sum := sha256.Sum256(data)
	b := &Blob{
		Ref:    ref,
		Ext:    ext,
		Data:   data,
		Digest: hex.EncodeToString(sum[:]),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		b.Width, b.Height = cfg.Width, cfg.Height
	}
	return b
}

// Vertical reports whether the image is taller than it is wide, which marks full-art
// frames
func (b *Blob) Vertical() bool {
	return b.Height > b.Width
}

// Provider resolves art references. Implementations must be safe for concurrent use.
type Provider interface {
	Fetch(ctx context.Context, ref string) (*Blob, error)
}

// Map serves blobs from memory, keyed by reference
type Map map[string][]byte

func (m Map) Fetch(ctx context.Context, ref string) (*Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := m[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceUnavailable, ref)
	}
	return NewBlob(ref, ".png", data), nil
}

// Refs lists the references in sorted order
func (m Map) Refs() []string {
	refs := make([]string, 0, len(m))
	for ref := range m {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}
