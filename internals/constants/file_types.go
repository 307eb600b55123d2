package constants

// MIME allow-lists for upload endpoints.

// MaterialMimeTypes covers documents, archives and images accepted as
// registration materials.
var MaterialMimeTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-powerpoint":                                             {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"application/zip":             {},
	"application/x-zip-compressed": {},
	"image/jpeg":                  {},
	"image/png":                   {},
	"image/webp":                  {},
}

// ImageMimeTypes is the allow-list for avatar / cover / certificate images.
var ImageMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// CertificateMimeTypes additionally allows PDF certificates.
var CertificateMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"image/webp":      {},
}

func IsAllowedMime(allowed map[string]struct{}, mime string) bool {
	_, ok := allowed[mime]
	return ok
}
