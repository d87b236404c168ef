// Package manifest reads the asset manifest that lists the build artifacts to
// publish and the CloudFormation parameters each one feeds.
//
// The manifest is a JSON (or YAML) sequence of entries:
//
//	[
//	  {
//	    "id": "icon",
//	    "path": "icon.png",
//	    "s3BucketParameter": "IconBucket",
//	    "s3KeyParameter": "IconKey",
//	    "artifactHashParameter": "IconHash"
//	  }
//	]
//
// Entries are validated one at a time as they are consumed so that a malformed
// entry only fails once the publisher reaches it.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/savaki/asset-publisher/internal/errors"
	"sigs.k8s.io/yaml"
)

// DefaultFilename is the manifest read when no other path is given
const DefaultFilename = "assets.json"

//go:embed entry.schema.json
var entrySchemaJSON string

var entrySchema = jsonschema.MustCompileString("entry.schema.json", entrySchemaJSON)

// Entry describes a single build artifact and the parameter names that
// receive its bucket, key and digest
type Entry struct {
	ID                    string `json:"id"`
	Path                  string `json:"path"`
	S3BucketParameter     string `json:"s3BucketParameter"`
	S3KeyParameter        string `json:"s3KeyParameter"`
	ArtifactHashParameter string `json:"artifactHashParameter"`
}

// Manifest holds the raw manifest entries in document order
type Manifest struct {
	entries []json.RawMessage
}

// Load reads and parses the manifest at path
func Load(fs billy.Filesystem, path string) (*Manifest, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to read asset manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a manifest document. JSON is decoded directly; anything else
// is treated as YAML and converted to JSON first.
func Parse(data []byte) (*Manifest, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err == nil && entries != nil {
		return &Manifest{entries: entries}, nil
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidManifest, err)
	}

	if bytes.Equal(bytes.TrimSpace(jsonData), []byte("null")) {
		return nil, fmt.Errorf("%w: document is empty", errors.ErrInvalidManifest)
	}

	if err := json.Unmarshal(jsonData, &entries); err != nil {
		return nil, fmt.Errorf("%w: expected a sequence of entries: %w", errors.ErrInvalidManifest, err)
	}

	return &Manifest{entries: entries}, nil
}

// Len returns the number of entries in the manifest
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Entry validates and decodes the entry at index i
func (m *Manifest) Entry(i int) (Entry, error) {
	if i < 0 || i >= len(m.entries) {
		return Entry{}, fmt.Errorf("%w: index %d out of range", errors.ErrInvalidEntry, i)
	}

	raw := m.entries[i]

	var document any
	if err := json.Unmarshal(raw, &document); err != nil {
		return Entry{}, fmt.Errorf("%w: entry %d: %w", errors.ErrInvalidEntry, i, err)
	}
	if err := entrySchema.Validate(document); err != nil {
		return Entry{}, fmt.Errorf("%w: entry %d: %w", errors.ErrInvalidEntry, i, err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, fmt.Errorf("%w: entry %d: %w", errors.ErrInvalidEntry, i, err)
	}
	return entry, nil
}
