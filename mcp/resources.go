package mcp

import (
	"bytes"
	"encoding/json"

	"github.com/jadwal/schedpdf/style"
)

// RegisterDefaultResources adds the font catalog and the default style
// preset as resources under the schedpdf:// scheme.
func RegisterDefaultResources(s *Server) {
	s.AddResource(Resource{
		URI:         "schedpdf://fonts",
		Name:        "Font catalog",
		Description: "Named fonts that style presets may select, with download URLs.",
		MIMEType:    "application/json",
		Handler:     handleFontsResource,
	})

	s.AddResource(Resource{
		URI:         "schedpdf://style/default",
		Name:        "Default style",
		Description: "The default style as a TOML preset, a starting point for custom presets.",
		MIMEType:    "application/toml",
		Handler:     handleDefaultStyleResource,
	})
}

func handleFontsResource(uri string) ([]ResourceContent, error) {
	data, err := json.MarshalIndent(style.Catalog, "", "  ")
	if err != nil {
		return nil, err
	}
	return []ResourceContent{{URI: uri, MIMEType: "application/json", Text: string(data)}}, nil
}

func handleDefaultStyleResource(uri string) ([]ResourceContent, error) {
	var buf bytes.Buffer
	if err := style.WritePreset(&buf, style.Default()); err != nil {
		return nil, err
	}
	return []ResourceContent{{URI: uri, MIMEType: "application/toml", Text: buf.String()}}, nil
}
