package cache

import (
	"fmt"
	"path"
	"strings"
)

const (
	ImagePrefix    = "observation"
	ImageExtension = ".svg"
)

// ImageGlob matches every file name produced by ImageFileName.
const ImageGlob = ImagePrefix + "-*" + ImageExtension

// ImageFileName returns the zero-padded file name for a 1-based item index.
func ImageFileName(index int) string {
	return fmt.Sprintf("%s-%03d%s", ImagePrefix, index, ImageExtension)
}

// ImageURL joins a root-relative prefix and a file name.
func ImageURL(prefix, fileName string) string {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return path.Join(prefix, fileName)
}

// ImageNameFromURL returns the file name referenced by a root-relative image URL
// if it lies directly under prefix.
func ImageNameFromURL(prefix, url string) (string, bool) {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	prefix = strings.TrimSuffix(prefix, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, prefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
