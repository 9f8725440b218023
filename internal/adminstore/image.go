package adminstore

import (
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBytes is the largest image that can be embedded in a bundle.
const MaxImageBytes = 2 * 1024 * 1024

// ErrImageTooLarge is returned for images above MaxImageBytes.
var ErrImageTooLarge = errors.New("Image too large. Please choose a file under 2MB.")

// EncodeDataURL reads an image and returns it as a base64 data URL.
// The MIME type is sniffed from content, falling back to the file extension.
func EncodeDataURL(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	return "data:" + detectMIME(name, data) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func detectMIME(name string, data []byte) string {
	detected := mimetype.Detect(data)
	if !detected.Is("application/octet-stream") && !detected.Is("text/plain") {
		return baseType(detected.String())
	}
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		return baseType(byExt)
	}
	return baseType(detected.String())
}

// baseType drops MIME parameters such as charset.
func baseType(m string) string {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		return strings.TrimSpace(m[:i])
	}
	return m
}
