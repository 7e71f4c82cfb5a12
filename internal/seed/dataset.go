package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/empdirectory/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/employees.json
var defaultDataset []byte

// DefaultDataset returns the dataset bundled with the binary.
func DefaultDataset() ([]models.Employee, error) {
	return decodeJSON(defaultDataset)
}

// LoadDataset reads a dataset file. The format follows the extension:
// .json, .yaml or .yml.
func LoadDataset(path string) ([]models.Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
}

func decodeYAML(data []byte) ([]models.Employee, error) {
	var out []models.Employee
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return out, nil
}

func decodeJSON(data []byte) ([]models.Employee, error) {
	var out []models.Employee
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return out, nil
}
