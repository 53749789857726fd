package resource

import (
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"cellular/core/jsonvalue"
	"cellular/core/recon"
	"cellular/core/structure"
)

// Format selects the text notation a resource is decoded with.
type Format string

const (
	FormatJSON  Format = "json"
	FormatRecon Format = "recon"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatRecon:
		return f, nil
	default:
		return "", fmt.Errorf("unknown resource format %q (want json or recon)", s)
	}
}

// FormatFromName picks the format from the resource's extension.
func FormatFromName(name string) (Format, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, true
	case ".recon":
		return FormatRecon, true
	}
	return "", false
}

type parseFunc func(io.Reader) (structure.Value, error)

func (f Format) parser() (parseFunc, error) {
	switch f {
	case FormatJSON:
		return jsonvalue.ParseValue, nil
	case FormatRecon:
		return recon.ParseBlock, nil
	}
	return nil, fmt.Errorf("unknown resource format %q", string(f))
}

// ContentType returns the MIME type served for a resource name.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".recon":
		return "text/x-recon; charset=utf-8"
	case "":
		return "application/octet-stream"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
