package effective

import (
	"path/filepath"

	"github.com/vk/dxmodel/internal/descriptor"
)

// PathTranslator is the default descriptor.ModelPathTranslator.
type PathTranslator struct{}

// NewPathTranslator returns a PathTranslator.
func NewPathTranslator() *PathTranslator {
	return &PathTranslator{}
}

// Translate rewrites d.ProjectDirectory-relative fields to be absolute,
// so downstream consumers never need to re-derive a base directory. Only
// ProjectDirectory itself is normalized today; a richer descriptor with
// its own filesystem-relative build fields would extend this method.
func (t *PathTranslator) Translate(d *descriptor.Descriptor, projectDirectory string) {
	if d.ProjectDirectory == "" {
		d.ProjectDirectory = projectDirectory
	}
	if d.ProjectDirectory != "" && !filepath.IsAbs(d.ProjectDirectory) {
		if abs, err := filepath.Abs(d.ProjectDirectory); err == nil {
			d.ProjectDirectory = abs
		}
	}
}

var _ descriptor.ModelPathTranslator = (*PathTranslator)(nil)

// UrlNormalizer is the default descriptor.ModelUrlNormalizer.
type UrlNormalizer struct{}

// NewUrlNormalizer returns a UrlNormalizer.
func NewUrlNormalizer() *UrlNormalizer {
	return &UrlNormalizer{}
}

// NormalizeURLs trims a trailing slash from every repository URL, the one
// normalization rule relevant to the data this module carries.
func (u *UrlNormalizer) NormalizeURLs(d *descriptor.Descriptor) {
	for _, r := range d.Repositories {
		for len(r.URL) > 0 && r.URL[len(r.URL)-1] == '/' {
			r.URL = r.URL[:len(r.URL)-1]
		}
	}
}

var _ descriptor.ModelUrlNormalizer = (*UrlNormalizer)(nil)
