// Package metadata reports identifying EXIF tags in exported images.
//
// Photos published on the web often still carry GPS coordinates, camera
// serial numbers or author names. imgsweep saves image bytes unchanged, so
// Scan lets the exporter tell the user when a saved file carries such tags.
// It never modifies the data.
package metadata
