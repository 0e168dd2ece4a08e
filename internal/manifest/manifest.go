// Package manifest builds META-INF/manifest.xml, the list of parts in an
// OpenDocument package.
//
// It exists so that the workbook writer and its tests share one definition
// of the manifest XML; the tests parse it back with the same types.
package manifest

import (
	"encoding/xml"
	"fmt"
)

// Namespace is the manifest namespace URI.
const Namespace = "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"

// MediaTypeSpreadsheet is the media type of an ODS package.
const MediaTypeSpreadsheet = "application/vnd.oasis.opendocument.spreadsheet"

// Manifest is the root element of manifest.xml.
type Manifest struct {
	XMLName xml.Name    `xml:"manifest:manifest"`
	NS      string      `xml:"xmlns:manifest,attr"`
	Version string      `xml:"manifest:version,attr"`
	Entries []FileEntry `xml:"manifest:file-entry"`
}

// FileEntry is one part of the package.
type FileEntry struct {
	FullPath  string `xml:"manifest:full-path,attr"`
	MediaType string `xml:"manifest:media-type,attr"`
	Version   string `xml:"manifest:version,attr,omitempty"`
}

// New returns the manifest of a spreadsheet package holding parts, which
// are XML part paths such as "content.xml".
func New(parts ...string) Manifest {
	m := Manifest{NS: Namespace, Version: "1.2"}
	m.Entries = append(m.Entries, FileEntry{FullPath: "/", MediaType: MediaTypeSpreadsheet, Version: "1.2"})
	for _, p := range parts {
		m.Entries = append(m.Entries, FileEntry{FullPath: p, MediaType: "text/xml"})
	}
	return m
}

// Marshal returns the manifest with its XML declaration.
func (m Manifest) Marshal() ([]byte, error) {
	body, err := xml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("manifest: marshal: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// parsed mirrors Manifest with namespace-qualified tags for decoding.
type parsed struct {
	Entries []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"file-entry"`
}

// Parse returns full-path → media-type for the entries of a manifest.xml.
func Parse(data []byte) (map[string]string, error) {
	var p parsed
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("manifest: parse: %w", err)
	}
	out := make(map[string]string, len(p.Entries))
	for _, e := range p.Entries {
		out[e.FullPath] = e.MediaType
	}
	return out, nil
}
