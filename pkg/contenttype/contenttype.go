// Package contenttype resolves MIME content types from file names.
package contenttype

import (
	"mime"
	"path/filepath"
	"strings"
)

// Default is returned for files whose extension is unknown.
const Default = "application/octet-stream"

// extra covers common download formats that the platform MIME tables do
// not always know about.
var extra = map[string]string{
	".7z":      "application/x-7z-compressed",
	".apk":     "application/vnd.android.package-archive",
	".csv":     "text/csv",
	".deb":     "application/vnd.debian.binary-package",
	".dmg":     "application/x-apple-diskimage",
	".doc":     "application/msword",
	".docx":    "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".epub":    "application/epub+zip",
	".exe":     "application/vnd.microsoft.portable-executable",
	".flac":    "audio/flac",
	".gz":      "application/gzip",
	".iso":     "application/x-iso9660-image",
	".log":     "text/plain",
	".md":      "text/markdown",
	".mkv":     "video/x-matroska",
	".mov":     "video/quicktime",
	".mp3":     "audio/mpeg",
	".mp4":     "video/mp4",
	".msi":     "application/x-msdownload",
	".odt":     "application/vnd.oasis.opendocument.text",
	".ppt":     "application/vnd.ms-powerpoint",
	".pptx":    "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".rar":     "application/vnd.rar",
	".rpm":     "application/x-rpm",
	".rtf":     "application/rtf",
	".tar":     "application/x-tar",
	".torrent": "application/x-bittorrent",
	".txt":     "text/plain",
	".wav":     "audio/wav",
	".xls":     "application/vnd.ms-excel",
	".xlsx":    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xz":      "application/x-xz",
	".yaml":    "application/yaml",
	".yml":     "application/yaml",
	".zip":     "application/zip",
}

func init() {
	for ext, typ := range extra {
		if mime.TypeByExtension(ext) == "" {
			_ = mime.AddExtensionType(ext, typ)
		}
	}
}

// Lookup returns the MIME type for path based on its extension, without
// parameters such as charset.
func Lookup(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return Default
	}
	typ := mime.TypeByExtension(ext)
	if typ == "" {
		return Default
	}
	if mediaType, _, err := mime.ParseMediaType(typ); err == nil {
		return mediaType
	}
	return strings.TrimSpace(strings.SplitN(typ, ";", 2)[0])
}

// Lookuper implements types.ContentTyper with Lookup.
type Lookuper struct{}

func (Lookuper) ContentType(path string) string { return Lookup(path) }
