package resource

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nfnt/resize"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

var artExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// DirProvider looks card art up in a local directory, either by explicit file name or
// by card name with one of the usual image extensions
type DirProvider struct {
	Dir string

	// MaxHeight downscales taller images, re-encoding them as PNG. Zero keeps the
	// original file.
	MaxHeight int

	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]*Blob
}

// NewDirProvider returns a provider serving art from dir
func NewDirProvider(dir string, maxHeight int, logger *zap.Logger) *DirProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirProvider{
		Dir:       dir,
		MaxHeight: maxHeight,
		logger:    logger,
		cache:     make(map[string]*Blob),
	}
}

// Fetch resolves ref. Remote references are never fetched; retrieving art over the
// network is the job of a separate downloader.
func (p *DirProvider) Fetch(ctx context.Context, ref string) (*Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return nil, fmt.Errorf("%w: %s: remote art is not fetched", ErrResourceUnavailable, ref)
	}

	path, err := p.locate(ref)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if b, ok := p.cache[path]; ok {
		p.mu.Unlock()
		return b, nil
	}
	p.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrResourceUnavailable, ref, err)
	}
	ext := strings.ToLower(filepath.Ext(path))

	if p.MaxHeight > 0 {
		scaled, err := downscale(data, p.MaxHeight)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrResourceUnavailable, ref, err)
		}
		if scaled != nil {
			p.logger.Debug("downscaled art", zap.String("ref", ref), zap.Int("max_height", p.MaxHeight))
			data, ext = scaled, ".png"
		}
	}

	b := NewBlob(ref, ext, data)
	p.mu.Lock()
	p.cache[path] = b
	p.mu.Unlock()
	return b, nil
}

// locate finds the file for ref. Card names are tried in both NFC and NFD form since
// file systems differ in which one they hand back.
func (p *DirProvider) locate(ref string) (string, error) {
	if p.Dir == "" && !filepath.IsAbs(ref) {
		return "", fmt.Errorf("%w: %s: no art directory configured", ErrResourceUnavailable, ref)
	}

	var candidates []string
	base := ref
	if !filepath.IsAbs(ref) {
		base = filepath.Join(p.Dir, ref)
	}
	if filepath.Ext(ref) != "" {
		candidates = append(candidates, base)
	}
	for _, form := range []norm.Form{norm.NFC, norm.NFD} {
		name := form.String(base)
		for _, ext := range artExtensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s: not found in %s", ErrResourceUnavailable, ref, p.Dir)
}

// downscale returns nil when the image already fits
func downscale(data []byte, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}
	if img.Bounds().Dy() <= maxHeight {
		return nil, nil
	}

	resized := resize.Resize(0, uint(maxHeight), img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return nil, fmt.Errorf("failed to encode image: %v", err)
	}
	return buf.Bytes(), nil
}
