package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"stockledger/application/ports"
	"stockledger/infrastructure/config"
	"stockledger/infrastructure/persistence/assets"
)

// maxUploadSize bounds the in-memory part of multipart parsing
const maxUploadSize = 32 << 20

// requestBaseURL returns the base URL for building absolute asset URLs:
// the configured one when present, otherwise scheme and host taken from the
// incoming request.
func requestBaseURL(cfg *config.Config, r *http.Request) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// absolutizeImage renders a stored image reference as an absolute URL.
// References that are already absolute, or empty, pass through unchanged.
func absolutizeImage(imagePath, baseURL string) string {
	ref, ok := assets.ParseReference(imagePath)
	if !ok {
		return imagePath
	}
	return ref.AbsoluteURL(baseURL)
}

// saveUploadedImage stores the optional "image" part of a multipart request
// and returns its root-relative reference, or "" when no image was uploaded.
func saveUploadedImage(store ports.AssetStore, collection string, r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	return store.Save(collection, header.Filename, file)
}

// parseFormID reads a required int64 form field
func parseFormID(r *http.Request, key string) (int64, bool) {
	v, err := strconv.ParseInt(r.FormValue(key), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
