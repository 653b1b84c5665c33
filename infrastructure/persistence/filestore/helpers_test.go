package filestore

import (
	"io"
	"os"
	"strings"

	"stockledger/infrastructure/persistence/assets"
)

func fakePayload() io.Reader {
	return strings.NewReader("fake image bytes")
}

// assetPathIfExists resolves ref and returns its local path only while the
// file is still on disk.
func assetPathIfExists(s *assets.Store, ref string) string {
	path := s.ResolvePath(ref)
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
