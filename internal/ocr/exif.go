package ocr

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// MetadataReader extracts camera metadata from image bytes
type MetadataReader interface {
	// Read returns the EXIF tags of an image as a name→value map. Images
	// without EXIF data, and inputs that are not images at all, yield an
	// empty map rather than an error.
	Read(imageData []byte) map[string]string
}

// ExifReader implements MetadataReader using the image's EXIF block
type ExifReader struct{}

// NewExifReader creates a new ExifReader
func NewExifReader() *ExifReader {
	return &ExifReader{}
}

// tagCollector accumulates EXIF fields during a walk
type tagCollector struct {
	tags map[string]string
}

func (c *tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c.tags[string(name)] = tag.String()
	return nil
}

// Read extracts EXIF tags from the original upload bytes. It must run on
// the bytes as uploaded: re-encoding to PNG strips the EXIF block.
func (r *ExifReader) Read(imageData []byte) map[string]string {
	tags := make(map[string]string)

	x, err := exif.Decode(bytes.NewReader(imageData))
	if err != nil {
		return tags
	}

	collector := &tagCollector{tags: tags}
	if err := x.Walk(collector); err != nil {
		return tags
	}

	return tags
}
