package adoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/pkg/adoc"
)

func TestRewrites(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rewrite adoc.Rewrite
		input   string
		want    string
	}{
		{"bullet marker", adoc.ListMarker, "* Bulleted.", "Bulleted."},
		{"dash marker", adoc.ListMarker, "- Bulleted.", "Bulleted."},
		{"nested marker", adoc.ListMarker, "** Nested.", "Nested."},
		{"numbered marker", adoc.ListMarker, ". Numbered.", "Numbered."},
		{"inline bold is not a marker", adoc.ListMarker, "*Bold* start.", "*Bold* start."},
		{"line break", adoc.LineBreak, "First line +", "First line"},
		{"plus inside line kept", adoc.LineBreak, "C + C", "C + C"},
		{"local path", adoc.LocalPath, "see ./a.adoc and ./b.adoc", "see /a.adoc and /b.adoc"},
		{"xref without title", adoc.XrefPlain, "See <<network>>.", "See Xref."},
		{"xref with title", adoc.XrefTitled, "<<opt-in-example,See example.>>", "See example."},
		{"xref with spaced title", adoc.XrefTitled, "<<a, the title>>", "the title"},
		{"block image", adoc.ImageMacro, "image::tools/print.png[dashboard]", ""},
		{"inline image", adoc.ImageMacro, "Click image:gear.png[Gear] to start.", "Click  to start."},
		{"unterminated image", adoc.ImageMacro, "image::a.png[Alt,", ""},
		{"long macro label", adoc.LongMacro, "xref:page.adoc[A a page]", "A a page"},
		{"long macro empty label", adoc.LongMacro, "see xref:/controls.adoc[].", "see Title."},
		{"link macro", adoc.LongMacro, "Visit https://example.com[the site].", "Visit the site."},
		{"footnote without target", adoc.LongMacro, "Text.footnote:[A note.]", "Text.A note."},
		{"every match rewritten", adoc.LongMacro, "link:a[One] and link:b[Two]", "One and Two"},
		{"bare link", adoc.BareLink, "Visit https://example.com.", "Visit ."},
		{"short macro", adoc.ShortMacro, "Press kbd:[Ctrl+C] now.", "Press Ctrl+C now."},
		{"button macro", adoc.ShortMacro, "Click btn:[Save].", "Click Save."},
		{"monospace", adoc.Monospace, "Run `make` and `go`.", "Run  and ."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.rewrite.Apply(tc.input))
		})
	}
}

func TestViews(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		view  adoc.Pipeline
		input string
		want  string
	}{
		{
			name:  "prose view resolves relative xref",
			view:  adoc.ProseView,
			input: "NOTE: If you would like to change it, see xref:./controls.adoc[].",
			want:  "NOTE: If you would like to change it, see Title.",
		},
		{
			name:  "prose view keeps monospace",
			view:  adoc.ProseView,
			input: "Click btn:[`Do I have Java?`].",
			want:  "Click `Do I have Java?`.",
		},
		{
			name:  "style view drops monospace",
			view:  adoc.StyleView,
			input: "Click btn:[`Do I have Java?`].",
			want:  "Click .",
		},
		{
			name:  "prose view list item with macro",
			view:  adoc.ProseView,
			input: "* xref:dashboard/saved.adoc[] - Review your searches.",
			want:  "Title - Review your searches.",
		},
		{
			name:  "macro view leaves list markers",
			view:  adoc.MacroView,
			input: "* xref:page.adoc[A a page]",
			want:  "* A a page",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.view.Apply(tc.input))
		})
	}
}

func TestPipeline_Names(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"image", "long-macro", "short-macro"}, adoc.MacroView.Names())
	assert.Equal(t, "monospace", adoc.StyleView.Names()[len(adoc.StyleView)-1])
	assert.Len(t, adoc.StyleView, len(adoc.ProseView)+1)
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, adoc.IsBlank(""))
	assert.True(t, adoc.IsBlank("  \t"))
	assert.False(t, adoc.IsBlank(" x "))
}
