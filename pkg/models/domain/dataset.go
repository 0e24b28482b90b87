package domain

import "strings"

type SourceKind string

const (
	SourceKindLocal  SourceKind = "local"
	SourceKindRemote SourceKind = "remote"
	SourceKindS3     SourceKind = "s3"
	SourceKindInline SourceKind = "inline"
)

// KindForLocation infers the source kind from the location prefix.
func KindForLocation(location string) SourceKind {
	switch {
	case strings.HasPrefix(location, "s3://"):
		return SourceKindS3
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return SourceKindRemote
	default:
		return SourceKindLocal
	}
}

// Source identifies a dataset to load. Location is a file path for
// local sources, a URL for remote ones and an s3://bucket/key URI for
// S3 objects. Inline sources carry the payload directly, e.g. an
// uploaded file.
type Source struct {
	Kind     SourceKind
	Name     string
	Location string
	Payload  []byte
}

// SourceProfile is a named dataset entry from the sources config file.
type SourceProfile struct {
	Name     string
	Kind     SourceKind
	Location string
	Schema   string
}

// Source converts the registry entry into a loadable source. The name
// is left for the loader to derive from the location so compression
// and delimiter sniffing still see the file extension.
func (p SourceProfile) Source() Source {
	return Source{Kind: p.Kind, Location: p.Location}
}

// RawTable is a parsed delimited file before validation: the header
// plus string cells exactly as they appeared in the source.
type RawTable struct {
	Name   string
	Header []string
	Rows   [][]string
}
