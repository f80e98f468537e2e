package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Photo is an image payload. Data is raw bytes; it is base64-encoded when
// serialized.
type Photo struct {
	MIMEType string `json:"mime_type" validate:"required"`
	Data     []byte `json:"data" validate:"required"`
}

// DataURL renders the photo as a data: URL.
func (p Photo) DataURL() string {
	return "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// ParseDataURL decodes a base64 data: URL such as the ones produced by a
// browser canvas or FileReader.
func ParseDataURL(s string) (Photo, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Photo{}, fmt.Errorf("parse data url: missing data: scheme")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Photo{}, fmt.Errorf("parse data url: missing payload")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return Photo{}, fmt.Errorf("parse data url: only base64 payloads are supported")
	}
	if mime == "" {
		mime = "application/octet-stream"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Photo{}, fmt.Errorf("parse data url: %w", err)
	}
	if len(data) == 0 {
		return Photo{}, fmt.Errorf("parse data url: empty payload")
	}
	return Photo{MIMEType: mime, Data: data}, nil
}
