package metadata

import (
	"sort"

	exif "github.com/dsoprea/go-exif/v3"
)

// Category groups identifying EXIF tags.
type Category string

// Tag categories, roughly ordered by how much they reveal.
const (
	CategoryLocation Category = "location"
	CategoryDevice   Category = "device"
	CategoryAuthor   Category = "author"
	CategorySoftware Category = "software"
	CategoryTime     Category = "time"
)

// identifyingTags maps EXIF tag names to their category.
var identifyingTags = map[string]Category{
	"GPSLatitude":        CategoryLocation,
	"GPSLongitude":       CategoryLocation,
	"GPSAltitude":        CategoryLocation,
	"Make":               CategoryDevice,
	"Model":              CategoryDevice,
	"SerialNumber":       CategoryDevice,
	"CameraSerialNumber": CategoryDevice,
	"BodySerialNumber":   CategoryDevice,
	"LensSerialNumber":   CategoryDevice,
	"HostComputer":       CategoryDevice,
	"Artist":             CategoryAuthor,
	"Author":             CategoryAuthor,
	"XPAuthor":           CategoryAuthor,
	"Copyright":          CategoryAuthor,
	"Software":           CategorySoftware,
	"ProcessingSoftware": CategorySoftware,
	"DateTimeOriginal":   CategoryTime,
	"DateTimeDigitized":  CategoryTime,
}

// Tag is one identifying EXIF entry found in an image.
type Tag struct {
	// Name is the EXIF tag name, e.g. "GPSLatitude".
	Name string

	// Value is the formatted tag value.
	Value string

	// Category classifies what the tag reveals.
	Category Category
}

// Scan returns the identifying EXIF tags in data, sorted by name.
// Images without EXIF, or with EXIF that cannot be parsed, yield nil.
func Scan(data []byte) []Tag {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var tags []Tag
	for _, entry := range entries {
		category, ok := identifyingTags[entry.TagName]
		if !ok || seen[entry.TagName] || entry.Formatted == "" {
			continue
		}
		seen[entry.TagName] = true
		tags = append(tags, Tag{
			Name:     entry.TagName,
			Value:    entry.Formatted,
			Category: category,
		})
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})
	return tags
}

// Categories returns the distinct categories present in tags, sorted.
func Categories(tags []Tag) []string {
	set := make(map[Category]bool)
	for _, tag := range tags {
		set[tag.Category] = true
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

// Names returns the tag names in order.
func Names(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.Name
	}
	return out
}
