// Package batchfile reads and writes the JSON batch files the CLI
// feeds to the engine: the candidate entities, the street and city
// tables, and the view the batch was exported for.
package batchfile

import (
	"encoding/json"
	"os"

	"github.com/streetlab/assist/pkg/errors"
	"github.com/streetlab/assist/pkg/geomap"
)

// View describes the viewport a batch was exported for, in geographic
// coordinates.
type View struct {
	Bounds geomap.Bounds `json:"bounds"`
	Zoom   int           `json:"zoom"`
}

// File is one exported batch.
type File struct {
	View View `json:"view"`
	geomap.Batch
}

// Load reads a batch file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapIO("decode", path, err)
	}
	return &f, nil
}

// Save writes a batch file to disk.
func Save(path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
