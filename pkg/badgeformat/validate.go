package badgeformat

import (
	"fmt"
	"strings"
)

// Validate validates a Design structure
func Validate(d *Design) error {
	// Validate version
	if d.Version == "" {
		return fmt.Errorf("version is required")
	}
	if d.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected 1.0)", d.Version)
	}

	// Validate background
	if d.Background != "" && d.Background != BackgroundTransparent {
		if _, err := ParseHexColor(d.Background); err != nil {
			return fmt.Errorf("invalid background: %w", err)
		}
	}

	// Validate variables
	variableNames := make(map[string]bool)
	for i, v := range d.Variables {
		if v.Name == "" {
			return fmt.Errorf("variable[%d]: 'name' is required", i)
		}
		if variableNames[v.Name] {
			return fmt.Errorf("variable[%d]: duplicate variable name '%s'", i, v.Name)
		}
		variableNames[v.Name] = true
	}

	// Validate elements
	elementIDs := make(map[string]bool)
	for i, e := range d.Elements {
		if err := validateElement(&e); err != nil {
			return fmt.Errorf("element[%d]: %w", i, err)
		}
		if elementIDs[e.ID] {
			return fmt.Errorf("element[%d]: duplicate element id '%s'", i, e.ID)
		}
		elementIDs[e.ID] = true
	}

	return nil
}

func validateElement(e *Element) error {
	if e.ID == "" {
		return fmt.Errorf("element id is required")
	}

	switch e.Type {
	case TypeText:
		if strings.TrimSpace(e.Content) == "" {
			return fmt.Errorf("text element requires non-empty content")
		}
	case TypeImage, TypeQR:
		if e.Content == "" {
			return fmt.Errorf("%s element requires a content reference", e.Type)
		}
	default:
		return fmt.Errorf("unknown element type: %s", e.Type)
	}

	if e.Width < MinElementSize || e.Height < MinElementSize {
		return fmt.Errorf("element size %.0fx%.0f is below the %.0fpx minimum", e.Width, e.Height, MinElementSize)
	}

	return nil
}
