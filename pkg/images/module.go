package images

import (
	"errors"
	"path"
	"regexp"
	"strings"
)

// ErrAbsoluteTarget is returned for image targets that start with "/".
var ErrAbsoluteTarget = errors.New("absolute image target")

//nolint:gochecknoglobals // Compiled pattern is read-only.
var moduleTargetRE = regexp.MustCompile(`^([^:/]+):(.+)$`)

// ModuleRoot returns the module directory of a document: the parent of its
// nearest "pages" or "partials" ancestor. Documents outside any such
// directory use their own directory.
func ModuleRoot(docPath string) string {
	dir := path.Dir(path.Clean(docPath))
	for cur := dir; cur != "." && cur != "/"; cur = path.Dir(cur) {
		switch path.Base(cur) {
		case "pages", "partials":
			return path.Dir(cur)
		}
	}
	return dir
}

// Resolve maps an image macro target to a content-tree path. Plain targets
// live in the document module's images directory; "module:file" targets
// live in the images directory of the named sibling module.
func Resolve(docPath, target string) (string, error) {
	if strings.HasPrefix(target, "/") {
		return "", ErrAbsoluteTarget
	}

	root := ModuleRoot(docPath)
	if m := moduleTargetRE.FindStringSubmatch(target); m != nil {
		return path.Join(path.Dir(root), m[1], "images", m[2]), nil
	}
	return path.Join(root, "images", target), nil
}

// IsExternal reports whether a target refers to a remote or inline image
// that is never looked up in the content tree.
func IsExternal(target string) bool {
	return externalRE.MatchString(target) || strings.HasPrefix(target, "data:")
}

//nolint:gochecknoglobals // Compiled pattern is read-only.
var externalRE = regexp.MustCompile(`^(?:ht|f)tps?://`)
