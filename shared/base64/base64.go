package base64

import (
	stdBase64 "encoding/base64"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

// GetContentType returns the media type of a data URL, or "" when the value is not a base64 data URL.
func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// DataURL wraps an already encoded payload into a data URL of the given media type.
func DataURL(contentType, payload string) string {
	return dataPrefix + contentType + base64Marker + payload
}

// Payload returns the encoded part of a data URL. Values without a base64 marker are returned unchanged.
func Payload(dataURL string) string {
	if !strings.HasPrefix(dataURL, dataPrefix) {
		return dataURL
	}

	idx := strings.Index(dataURL, base64Marker)
	if idx == -1 {
		return dataURL
	}

	return dataURL[idx+len(base64Marker):]
}

// Encode returns the standard base64 encoding of data.
func Encode(data []byte) string {
	return stdBase64.StdEncoding.EncodeToString(data)
}
