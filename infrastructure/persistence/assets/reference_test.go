package assets

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReferenceClassification(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
		kind Kind
	}{
		{"empty", "", false, KindLocal},
		{"relative", "/uploads/category/1_logo.png", true, KindRelativeURL},
		{"absolute http", "http://host:8080/uploads/product/2_a.jpg", true, KindAbsoluteURL},
		{"absolute https", "https://cdn.example.com/uploads/product/2_a.jpg", true, KindAbsoluteURL},
		{"bare path", "uploads/category/1_logo.png", true, KindLocal},
		{"filesystem path", "/var/data/uploads/category/1_logo.png", true, KindLocal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := ParseReference(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.kind, ref.Kind())
				assert.Equal(t, tt.raw, ref.String())
			}
		})
	}
}

func TestReferenceLocalPath(t *testing.T) {
	root := filepath.Join("var", "uploads")

	ref, ok := ParseReference("/uploads/category/1_logo.png")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "category", "1_logo.png"), ref.LocalPath(root))

	ref, ok = ParseReference("http://host/uploads/product/2_a.jpg")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "product", "2_a.jpg"), ref.LocalPath(root))

	// An absolute URL pointing somewhere else has no local counterpart.
	ref, ok = ParseReference("https://cdn.example.com/static/logo.png")
	assert.True(t, ok)
	assert.Equal(t, "", ref.LocalPath(root))

	// Bare local paths pass through untouched.
	ref, ok = ParseReference("/tmp/direct.png")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/direct.png", ref.LocalPath(root))
}

func TestReferenceAbsoluteURL(t *testing.T) {
	ref, _ := ParseReference("/uploads/category/1_logo.png")
	assert.Equal(t, "http://api.local/uploads/category/1_logo.png", ref.AbsoluteURL("http://api.local"))
	assert.Equal(t, "http://api.local/uploads/category/1_logo.png", ref.AbsoluteURL("http://api.local/"))
	assert.Equal(t, "/uploads/category/1_logo.png", ref.AbsoluteURL(""))

	// Already absolute references are never rewritten.
	ref, _ = ParseReference("https://cdn.example.com/uploads/p/1.jpg")
	assert.Equal(t, "https://cdn.example.com/uploads/p/1.jpg", ref.AbsoluteURL("http://api.local"))
}
