package pdf

import (
	"reflect"
	"testing"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"blank line separates paragraphs",
			"First paragraph.\n\nSecond paragraph.",
			[]string{"First paragraph.", "Second paragraph."},
		},
		{
			"single line breaks collapse to spaces",
			"A sentence wrapped\nacross two lines.\n\nNext one.",
			[]string{"A sentence wrapped across two lines.", "Next one."},
		},
		{
			"surrounding whitespace is trimmed",
			"\n  Indented text.  \n\n\n",
			[]string{"Indented text."},
		},
		{
			"empty page",
			"   \n\n  \n",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitParagraphs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitParagraphs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
