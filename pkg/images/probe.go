package images

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io/fs"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// ErrProbe is returned when an image's dimensions cannot be read.
var ErrProbe = errors.New("cannot read image dimensions")

// DefaultCacheSize is the number of probed images kept in memory.
const DefaultCacheSize = 1024

// Dimensions are pixel sizes.
type Dimensions struct {
	Width  int
	Height int
}

// Prober reads image dimensions from a file system, caching the results.
// It is safe for concurrent use.
type Prober struct {
	fsys  fs.FS
	cache *lru.Cache[string, Dimensions]
}

// NewProber creates a prober over fsys holding up to size results.
func NewProber(fsys fs.FS, size int) (*Prober, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, Dimensions](size)
	if err != nil {
		return nil, fmt.Errorf("create probe cache: %w", err)
	}
	return &Prober{fsys: fsys, cache: cache}, nil
}

// Probe returns the dimensions of the image at name.
func (p *Prober) Probe(name string) (Dimensions, error) {
	if dims, ok := p.cache.Get(name); ok {
		return dims, nil
	}

	f, err := p.fsys.Open(name)
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %s: %w", ErrProbe, name, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %s: %w", ErrProbe, name, err)
	}

	dims := Dimensions{Width: cfg.Width, Height: cfg.Height}
	p.cache.Add(name, dims)
	return dims, nil
}
