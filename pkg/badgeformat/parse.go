package badgeformat

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse parses a .badge file from a byte slice
func Parse(data []byte) (*Design, error) {
	var design Design
	if err := json.Unmarshal(data, &design); err != nil {
		return nil, fmt.Errorf("failed to parse design: %w", err)
	}

	// Older exports omit the background; treat it as white
	if design.Background == "" {
		design.Background = "#FFFFFF"
	}

	if err := Validate(&design); err != nil {
		return nil, err
	}

	return &design, nil
}

// ParseFile parses a .badge file from disk
func ParseFile(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read design file: %w", err)
	}

	return Parse(data)
}

// ToJSON converts a Design to JSON bytes
func (d *Design) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// SaveToFile saves a Design to a file
func (d *Design) SaveToFile(path string) error {
	data, err := d.ToJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
