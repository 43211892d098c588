// Package trackfile loads track lists from JSON, YAML or TOML documents.
//
// A document is either an object with a "tracks" list or, for JSON and YAML,
// a bare list. Keys may use wheel notation ("8A") or conventional names
// ("Am", "C Major").
package trackfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mixpath/harmonic"
	"github.com/katalvlaran/mixpath/track"
)

// ErrUnsupportedFormat is returned for file extensions other than .json,
// .yaml, .yml and .toml.
var ErrUnsupportedFormat = errors.New("trackfile: unsupported format")

// record is the on-disk shape of one track. Energy is a pointer so that an
// absent value falls back to track.DefaultEnergy.
type record struct {
	ID        string  `json:"id" yaml:"id" toml:"id"`
	Key       string  `json:"key" yaml:"key" toml:"key"`
	BPM       float64 `json:"bpm" yaml:"bpm" toml:"bpm"`
	Energy    *int    `json:"energy" yaml:"energy" toml:"energy"`
	Duration  float64 `json:"duration" yaml:"duration" toml:"duration"`
	Path      string  `json:"path" yaml:"path" toml:"path"`
	Title     string  `json:"title" yaml:"title" toml:"title"`
	Artist    string  `json:"artist" yaml:"artist" toml:"artist"`
	CatalogID string  `json:"catalog_id" yaml:"catalog_id" toml:"catalog_id"`
}

type document struct {
	Tracks []record `json:"tracks" yaml:"tracks" toml:"tracks"`
}

// Load reads the file at path and returns its validated tracks, in order.
func Load(path string) ([]track.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trackfile: reading %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	records, err := decode(ext, data)
	if err != nil {
		return nil, fmt.Errorf("trackfile: parsing %s: %w", filepath.Base(path), err)
	}

	return build(records)
}

// Parse decodes data in the given format ("json", "yaml", "yml" or "toml").
func Parse(format string, data []byte) ([]track.Track, error) {
	records, err := decode("."+strings.ToLower(strings.TrimPrefix(format, ".")), data)
	if err != nil {
		return nil, fmt.Errorf("trackfile: %w", err)
	}

	return build(records)
}

func decode(ext string, data []byte) ([]record, error) {
	switch ext {
	case ".json":
		if firstByte(data) == '[' {
			var list []record
			if err := json.Unmarshal(data, &list); err != nil {
				return nil, err
			}

			return list, nil
		}
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}

		return doc.Tracks, nil

	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) == 0 {
			return nil, nil
		}
		if node.Content[0].Kind == yaml.SequenceNode {
			var list []record
			if err := node.Decode(&list); err != nil {
				return nil, err
			}

			return list, nil
		}
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}

		return doc.Tracks, nil

	case ".toml":
		var doc document
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}

		return doc.Tracks, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func firstByte(data []byte) byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}

	return data[0]
}

// build converts records into Tracks, reporting the first invalid one.
func build(records []record) ([]track.Track, error) {
	out := make([]track.Track, 0, len(records))
	for i, r := range records {
		key, err := harmonic.FromMusicalKey(r.Key)
		if err != nil {
			key = r.Key // let track validation report it
		}

		opts := []track.Option{
			track.WithDuration(r.Duration),
			track.WithPath(r.Path),
			track.WithTitle(r.Title),
			track.WithArtist(r.Artist),
			track.WithCatalogID(r.CatalogID),
		}
		if r.Energy != nil {
			opts = append(opts, track.WithEnergy(*r.Energy))
		}

		t, err := track.New(r.ID, key, r.BPM, opts...)
		if err != nil {
			return nil, fmt.Errorf("trackfile: record %d: %w", i, err)
		}
		out = append(out, t)
	}

	return out, nil
}
