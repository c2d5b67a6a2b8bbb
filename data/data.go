// Package data ships the default portal dataset. Both files can be replaced
// at startup with a path from config.
package data

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"

	"github.com/BearBump/DVCPortal/internal/models"
	"github.com/pkg/errors"
)

var (
	//go:embed services.json
	servicesJSON []byte

	//go:embed elections.json
	electionsJSON []byte
)

// LoadDataset reads the catalog from path, or the embedded copy when path is empty.
func LoadDataset(path string) (models.Dataset, error) {
	var ds models.Dataset
	if err := decode(path, servicesJSON, &ds); err != nil {
		return models.Dataset{}, errors.Wrap(err, "load services dataset")
	}
	return ds, nil
}

// LoadElections reads the election demo data, embedded when path is empty.
func LoadElections(path string) (models.ElectionData, error) {
	var ed models.ElectionData
	if err := decode(path, electionsJSON, &ed); err != nil {
		return models.ElectionData{}, errors.Wrap(err, "load elections dataset")
	}
	return ed, nil
}

func decode(path string, embedded []byte, dst any) error {
	b := embedded
	if path != "" {
		var err error
		b, err = os.ReadFile(path)
		if err != nil {
			return err
		}
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
