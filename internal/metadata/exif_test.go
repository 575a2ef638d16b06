package metadata

import (
	"reflect"
	"testing"
)

func TestScanWithoutExif(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "png signature", data: []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}},
		{name: "plain text", data: []byte("not an image at all")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tags := Scan(tt.data); len(tags) != 0 {
				t.Errorf("expected no tags, got %+v", tags)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	tags := []Tag{
		{Name: "Model", Category: CategoryDevice},
		{Name: "GPSLatitude", Category: CategoryLocation},
		{Name: "Make", Category: CategoryDevice},
	}

	got := Categories(tags)
	want := []string{"device", "location"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}

	if len(Categories(nil)) != 0 {
		t.Error("expected no categories for nil tags")
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	got := Names([]Tag{{Name: "Artist"}, {Name: "Make"}})
	want := []string{"Artist", "Make"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
