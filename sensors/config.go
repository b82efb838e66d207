package sensors

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadCatalog reads a sensor catalog from a YAML file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("sensors: read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses a YAML sensor catalog:
//
//	sensors:
//	  - key: TC0P
//	    name: CPU proximity
//	    unit: celsius
//
// A missing name defaults to the key; a missing unit defaults to raw.
func ParseCatalog(data []byte) (Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("sensors: parse catalog: %w", err)
	}

	for i := range catalog.Sensors {
		if catalog.Sensors[i].Name == "" {
			catalog.Sensors[i].Name = catalog.Sensors[i].Key
		}
		if catalog.Sensors[i].Unit == "" {
			catalog.Sensors[i].Unit = Raw
		}
	}

	if err := catalog.Validate(); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}
