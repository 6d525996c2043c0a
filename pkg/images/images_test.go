package images_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/images"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	catalog := images.NewCatalog()
	catalog.Add("modules/ROOT/images/a.png")
	catalog.Add("modules/ROOT/images/b.png")
	catalog.Add("./modules/ROOT/images/b.png")

	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, []string{"modules/ROOT/images/a.png", "modules/ROOT/images/b.png"}, catalog.Unreferenced())

	assert.True(t, catalog.MarkReferenced("modules/ROOT/images/a.png"))
	assert.False(t, catalog.MarkReferenced("modules/ROOT/images/c.png"))
	assert.Equal(t, 2, catalog.Len(), "missing references are not recorded")

	catalog.Add("modules/ROOT/images/a.png")
	assert.Equal(t, []string{"modules/ROOT/images/b.png"}, catalog.Unreferenced())
}

func TestModuleRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		doc  string
		want string
	}{
		{"modules/ROOT/pages/index.adoc", "modules/ROOT"},
		{"modules/ROOT/pages/tools/print.adoc", "modules/ROOT"},
		{"modules/admin/partials/snippet.adoc", "modules/admin"},
		{"pages/index.adoc", "."},
		{"docs/readme.adoc", "docs"},
		{"readme.adoc", "."},
	}

	for _, tc := range tests {
		t.Run(tc.doc, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, images.ModuleRoot(tc.doc))
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	doc := "modules/ROOT/pages/tools/print.adoc"

	got, err := images.Resolve(doc, "tools/print-test.png")
	require.NoError(t, err)
	assert.Equal(t, "modules/ROOT/images/tools/print-test.png", got)

	got, err = images.Resolve(doc, "admin:diagram.png")
	require.NoError(t, err)
	assert.Equal(t, "modules/admin/images/diagram.png", got)

	_, err = images.Resolve(doc, "/abs/a.png")
	assert.ErrorIs(t, err, images.ErrAbsoluteTarget)
}

func TestIsExternal(t *testing.T) {
	t.Parallel()

	assert.True(t, images.IsExternal("https://example.com/a.png"))
	assert.True(t, images.IsExternal("http://example.com/a.png"))
	assert.True(t, images.IsExternal("ftp://example.com/a.png"))
	assert.True(t, images.IsExternal("data:image/png;base64,AAAA"))
	assert.False(t, images.IsExternal("admin:diagram.png"))
	assert.False(t, images.IsExternal("a.png"))
}

func TestScan(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"modules/ROOT/images/a.png":       {Data: []byte("x")},
		"modules/ROOT/images/b.SVG":       {Data: []byte("x")},
		"modules/ROOT/images/notes.txt":   {Data: []byte("x")},
		"modules/ROOT/pages/index.adoc":   {Data: []byte("x")},
		"modules/ROOT/images/.hidden.png": {Data: []byte("x")},
		".cache/c.png":                    {Data: []byte("x")},
		"node_modules/pkg/d.png":          {Data: []byte("x")},
	}

	catalog, err := images.Scan(context.Background(), fsys)
	require.NoError(t, err)

	assert.Equal(t, []string{"modules/ROOT/images/a.png", "modules/ROOT/images/b.SVG"}, catalog.Unreferenced())
}

func TestScan_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := images.Scan(ctx, fstest.MapFS{"a.png": {Data: []byte("x")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProber(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.png":   {Data: pngBytes(t, 300, 200)},
		"bad.png": {Data: []byte("not an image")},
	}

	prober, err := images.NewProber(fsys, 0)
	require.NoError(t, err)

	dims, err := prober.Probe("a.png")
	require.NoError(t, err)
	assert.Equal(t, images.Dimensions{Width: 300, Height: 200}, dims)

	// Cached results survive the file disappearing.
	delete(fsys, "a.png")
	dims, err = prober.Probe("a.png")
	require.NoError(t, err)
	assert.Equal(t, 300, dims.Width)

	_, err = prober.Probe("bad.png")
	assert.ErrorIs(t, err, images.ErrProbe)

	_, err = prober.Probe("missing.png")
	assert.ErrorIs(t, err, images.ErrProbe)
}
