package assets

import (
	"path/filepath"
	"strings"
)

// urlPrefix is the public path prefix under which stored assets are served.
const urlPrefix = "/uploads/"

// Kind tags how an asset reference is spelled
type Kind int

const (
	// KindLocal is a bare filesystem path
	KindLocal Kind = iota
	// KindAbsoluteURL is a fully qualified URL containing /uploads/
	KindAbsoluteURL
	// KindRelativeURL is a root-relative path beginning with /uploads/
	KindRelativeURL
)

// Reference is a parsed asset reference. The kind is decided once, when the
// reference string is first seen, instead of re-sniffing prefixes at every
// resolve or delete call site.
type Reference struct {
	kind Kind
	raw  string
}

// ParseReference classifies a stored reference string. The second return is
// false for an empty reference (no asset attached).
func ParseReference(raw string) (Reference, bool) {
	if raw == "" {
		return Reference{}, false
	}
	switch {
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return Reference{kind: KindAbsoluteURL, raw: raw}, true
	case strings.HasPrefix(raw, urlPrefix):
		return Reference{kind: KindRelativeURL, raw: raw}, true
	default:
		return Reference{kind: KindLocal, raw: raw}, true
	}
}

// Kind returns the reference kind
func (r Reference) Kind() Kind {
	return r.kind
}

// String returns the reference as originally spelled
func (r Reference) String() string {
	return r.raw
}

// LocalPath resolves the reference to a path under uploadRoot. It returns ""
// when the reference cannot be mapped to a local file, such as an absolute
// URL that does not point into the uploads tree.
func (r Reference) LocalPath(uploadRoot string) string {
	switch r.kind {
	case KindLocal:
		return r.raw
	case KindRelativeURL:
		return filepath.Join(uploadRoot, filepath.FromSlash(strings.TrimPrefix(r.raw, urlPrefix)))
	case KindAbsoluteURL:
		_, after, found := strings.Cut(r.raw, urlPrefix)
		if !found {
			return ""
		}
		return filepath.Join(uploadRoot, filepath.FromSlash(after))
	}
	return ""
}

// AbsoluteURL renders the reference as a fully qualified URL under baseURL.
// References that are already absolute, or that do not live under the uploads
// prefix, come back unchanged.
func (r Reference) AbsoluteURL(baseURL string) string {
	if r.kind != KindRelativeURL || baseURL == "" {
		return r.raw
	}
	return strings.TrimSuffix(baseURL, "/") + r.raw
}
