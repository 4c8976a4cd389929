package form

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Template holds per-type presentation defaults.
type Template struct {
	DisplayName         string `yaml:"display_name"`
	DefaultTitle        string `yaml:"default_title"`
	DefaultInstructions string `yaml:"default_instructions"`
}

// Catalog maps form types to templates. Missing entries fall back to the
// built-in display names.
type Catalog struct {
	templates map[FormType]Template
}

func NewCatalog(templates map[FormType]Template) *Catalog {
	if templates == nil {
		templates = map[FormType]Template{}
	}
	return &Catalog{templates: templates}
}

// LoadCatalog reads a YAML document of the form:
//
//	forms:
//	  WINDOWS:
//	    display_name: Windows
//	    default_title: Window selection
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form catalog: %w", err)
	}
	var doc struct {
		Forms map[string]Template `yaml:"forms"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse form catalog: %w", err)
	}
	templates := make(map[FormType]Template, len(doc.Forms))
	for key, tpl := range doc.Forms {
		t := FormType(key)
		if !t.Valid() {
			return nil, fmt.Errorf("form catalog: unknown form type %q", key)
		}
		templates[t] = tpl
	}
	return NewCatalog(templates), nil
}

func (c *Catalog) DisplayName(t FormType) string {
	if c != nil {
		if tpl, ok := c.templates[t]; ok && tpl.DisplayName != "" {
			return tpl.DisplayName
		}
	}
	return t.DisplayName()
}

func (c *Catalog) Template(t FormType) Template {
	if c == nil {
		return Template{DisplayName: t.DisplayName()}
	}
	tpl := c.templates[t]
	if tpl.DisplayName == "" {
		tpl.DisplayName = t.DisplayName()
	}
	return tpl
}
