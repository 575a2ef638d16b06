package resolve

import (
	"math"
	"testing"

	"github.com/nao1215/imgsweep/internal/model"
)

func TestParseSrcSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		srcset string
		want   []model.Candidate
	}{
		{
			name:   "width descriptors",
			srcset: "small.jpg 100w, large.jpg 300w",
			want: []model.Candidate{
				{URL: "small.jpg", Width: 100, Sized: true},
				{URL: "large.jpg", Width: 300, Sized: true},
			},
		},
		{
			name:   "density descriptors parse their leading digits",
			srcset: "a.jpg 1x, b.jpg 2x, c.jpg 1.5x",
			want: []model.Candidate{
				{URL: "a.jpg", Width: 1, Sized: true},
				{URL: "b.jpg", Width: 2, Sized: true},
				{URL: "c.jpg", Width: 1, Sized: true},
			},
		},
		{
			name:   "missing size token is unsized",
			srcset: "a.jpg 300w, c.jpg",
			want: []model.Candidate{
				{URL: "a.jpg", Width: 300, Sized: true},
				{URL: "c.jpg", Width: model.UnsizedWidth},
			},
		},
		{
			name:   "non numeric size token is unsized",
			srcset: "a.jpg large",
			want: []model.Candidate{
				{URL: "a.jpg", Width: model.UnsizedWidth},
			},
		},
		{
			name:   "double space leaves an empty size token",
			srcset: "a.jpg  300w",
			want: []model.Candidate{
				{URL: "a.jpg", Width: model.UnsizedWidth},
			},
		},
		{
			name:   "surrounding whitespace and newlines are trimmed",
			srcset: "\n  a.jpg 100w,\n  b.jpg 200w\n",
			want: []model.Candidate{
				{URL: "a.jpg", Width: 100, Sized: true},
				{URL: "b.jpg", Width: 200, Sized: true},
			},
		},
		{
			name:   "empty entries are dropped",
			srcset: "a.jpg 100w, , b.jpg 200w,",
			want: []model.Candidate{
				{URL: "a.jpg", Width: 100, Sized: true},
				{URL: "b.jpg", Width: 200, Sized: true},
			},
		},
		{
			name:   "zero width is a valid size",
			srcset: "a.jpg 0w",
			want: []model.Candidate{
				{URL: "a.jpg", Width: 0, Sized: true},
			},
		},
		{
			name:   "negative width parses as a signed integer",
			srcset: "a.jpg 300w, b.jpg -5w",
			want: []model.Candidate{
				{URL: "a.jpg", Width: 300, Sized: true},
				{URL: "b.jpg", Width: -5, Sized: true},
			},
		},
		{
			name:   "explicit plus sign is accepted",
			srcset: "a.jpg +500w",
			want: []model.Candidate{
				{URL: "a.jpg", Width: 500, Sized: true},
			},
		},
		{
			name:   "sign without digits is unsized",
			srcset: "a.jpg -w",
			want: []model.Candidate{
				{URL: "a.jpg", Width: model.UnsizedWidth},
			},
		},
		{
			name:   "blank srcset has no candidates",
			srcset: "   ",
			want:   []model.Candidate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseSrcSet(tt.srcset)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d candidates, got %d: %+v", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("candidate %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseWidthSaturates(t *testing.T) {
	t.Parallel()

	width, ok := parseWidth("999999999999999999999999999w")
	if !ok {
		t.Fatal("expected digits to parse")
	}
	if width != model.UnsizedWidth {
		t.Errorf("expected saturation at UnsizedWidth, got %d", width)
	}
}

func TestParseWidthSaturatesNegative(t *testing.T) {
	t.Parallel()

	width, ok := parseWidth("-999999999999999999999999999w")
	if !ok {
		t.Fatal("expected digits to parse")
	}
	if width != math.MinInt {
		t.Errorf("expected saturation at math.MinInt, got %d", width)
	}
}

func TestLargest(t *testing.T) {
	t.Parallel()

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		if _, ok := Largest(nil); ok {
			t.Error("expected no candidate")
		}
	})

	t.Run("ties keep declaration order", func(t *testing.T) {
		t.Parallel()

		best, ok := Largest([]model.Candidate{
			{URL: "first.jpg", Width: 300, Sized: true},
			{URL: "second.jpg", Width: 300, Sized: true},
			{URL: "small.jpg", Width: 10, Sized: true},
		})
		if !ok {
			t.Fatal("expected a candidate")
		}
		if best.URL != "first.jpg" {
			t.Errorf("expected first.jpg, got %s", best.URL)
		}
	})

	t.Run("two unsized candidates resolve to the first", func(t *testing.T) {
		t.Parallel()

		best, _ := Largest(ParseSrcSet("x.jpg, y.jpg"))
		if best.URL != "x.jpg" {
			t.Errorf("expected x.jpg, got %s", best.URL)
		}
	})

	t.Run("does not reorder the input", func(t *testing.T) {
		t.Parallel()

		in := []model.Candidate{{URL: "a", Width: 1}, {URL: "b", Width: 2}}
		_, _ = Largest(in)
		if in[0].URL != "a" || in[1].URL != "b" {
			t.Errorf("input was modified: %+v", in)
		}
	})
}

func TestBestSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		desc model.ImageDescriptor
		want string
	}{
		{
			name: "largest width wins",
			desc: model.ImageDescriptor{Source: "src.jpg", SrcSet: "A 100w, B 300w"},
			want: "B",
		},
		{
			name: "unsized candidate beats sized candidates",
			desc: model.ImageDescriptor{Source: "src.jpg", SrcSet: "A 300w, C"},
			want: "C",
		},
		{
			name: "negative width loses to a positive one",
			desc: model.ImageDescriptor{Source: "src.jpg", SrcSet: "a.jpg 300w, b.jpg -5w"},
			want: "a.jpg",
		},
		{
			name: "plus signed width is compared as sized",
			desc: model.ImageDescriptor{Source: "src.jpg", SrcSet: "a.jpg 300w, b.jpg +500w"},
			want: "b.jpg",
		},
		{
			name: "srcset wins over current source",
			desc: model.ImageDescriptor{Source: "src.jpg", CurrentSource: "cur.jpg", SrcSet: "A 100w"},
			want: "A",
		},
		{
			name: "no srcset uses current source",
			desc: model.ImageDescriptor{Source: "src.jpg", CurrentSource: "cur.jpg"},
			want: "cur.jpg",
		},
		{
			name: "no srcset and no current source uses primary source",
			desc: model.ImageDescriptor{Source: "src.jpg"},
			want: "src.jpg",
		},
		{
			name: "srcset with only empty entries falls back",
			desc: model.ImageDescriptor{Source: "src.jpg", SrcSet: " , "},
			want: "src.jpg",
		},
		{
			name: "degenerate descriptor resolves to empty",
			desc: model.ImageDescriptor{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := BestSource(tt.desc); got != tt.want {
				t.Errorf("BestSource() = %q, want %q", got, tt.want)
			}
		})
	}
}
