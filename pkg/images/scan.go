package images

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

//nolint:gochecknoglobals // Read-only lookup table.
var imageExtensions = map[string]bool{
	".gif":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".svg":  true,
	".webp": true,
	".bmp":  true,
}

// IsImagePath reports whether name has an image file extension.
func IsImagePath(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))] || enry.IsImage(name)
}

// Scan walks fsys and returns a catalog of every image file in it. Hidden
// and vendored directories are skipped.
func Scan(ctx context.Context, fsys fs.FS) (*Catalog, error) {
	catalog := NewCatalog()

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if entry.IsDir() {
			if name != "." && (enry.IsDotFile(name) || enry.IsVendor(name+"/")) {
				return fs.SkipDir
			}
			return nil
		}

		if enry.IsDotFile(name) || !IsImagePath(name) {
			return nil
		}
		catalog.Add(name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan images: %w", err)
	}

	return catalog, nil
}
