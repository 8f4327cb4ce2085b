package simplify

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed sections.yaml
var sectionsYAML []byte

type sectionsFile struct {
	SectionsToRemove map[string][]string `yaml:"sections_to_remove"`
}

// sectionsToRemove maps a language code to the set of section headings to
// strip. Built once at startup and never mutated afterwards.
var sectionsToRemove = mustLoadSections()

func mustLoadSections() map[string]map[string]struct{} {
	var file sectionsFile
	if err := yaml.Unmarshal(sectionsYAML, &file); err != nil {
		panic(fmt.Sprintf("sections.yaml is invalid yaml or the wrong structure: %v", err))
	}

	sections := make(map[string]map[string]struct{}, len(file.SectionsToRemove))
	for lang, titles := range file.SectionsToRemove {
		set := make(map[string]struct{}, len(titles))
		for _, title := range titles {
			set[title] = struct{}{}
		}
		sections[lang] = set
	}
	return sections
}
