// Package images tracks the image files of a content tree: which exist,
// which are referenced from documents, and what their pixel dimensions are.
package images

import (
	"path"
	"sort"
	"sync"
)

// Catalog is the set of image files found in a content tree together with a
// referenced flag per image. It is safe for concurrent use.
type Catalog struct {
	mu     sync.Mutex
	images map[string]bool
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{images: make(map[string]bool)}
}

// Add records an image at a slash-separated path relative to the content
// root. Adding an image that is already present keeps its referenced flag.
func (c *Catalog) Add(name string) {
	name = path.Clean(name)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.images[name]; !ok {
		c.images[name] = false
	}
}

// MarkReferenced flags the image as referenced. It returns false, and
// records nothing, when the image does not exist.
func (c *Catalog) MarkReferenced(name string) bool {
	name = path.Clean(name)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.images[name]; !ok {
		return false
	}
	c.images[name] = true
	return true
}

// Unreferenced returns the images that were never referenced, sorted.
func (c *Catalog) Unreferenced() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var names []string
	for name, referenced := range c.images {
		if !referenced {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of images in the catalog.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}
