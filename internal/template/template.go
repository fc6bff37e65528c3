// Package template substitutes design variables into text elements, so
// one saved design can drive a personalized badge run (name badges,
// numbered editions).
package template

import (
	"fmt"
	"strings"

	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// Expand returns a copy of the design with every {{variable}} placeholder
// in text-element content replaced. Values win over declared defaults;
// an undeclared placeholder is left verbatim.
func Expand(design *badgeformat.Design, values map[string]string) *badgeformat.Design {
	resolved := make(map[string]string, len(design.Variables))
	for _, v := range design.Variables {
		resolved[v.Name] = v.DefaultValue
	}
	for name, value := range values {
		if _, declared := resolved[name]; declared {
			resolved[name] = value
		}
	}

	out := *design
	out.Elements = badgeformat.CloneElements(design.Elements)
	for i := range out.Elements {
		if out.Elements[i].Type != badgeformat.TypeText {
			continue
		}
		out.Elements[i].Content = substitute(out.Elements[i].Content, resolved)
	}
	return &out
}

// ExpandBatch expands the design once per value set, in order.
func ExpandBatch(design *badgeformat.Design, valueSets []map[string]string) []*badgeformat.Design {
	out := make([]*badgeformat.Design, len(valueSets))
	for i, values := range valueSets {
		expanded := Expand(design, values)
		if expanded.Name != "" {
			expanded.Name = fmt.Sprintf("%s (%d/%d)", expanded.Name, i+1, len(valueSets))
		}
		out[i] = expanded
	}
	return out
}

func substitute(content string, resolved map[string]string) string {
	for name, value := range resolved {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}
