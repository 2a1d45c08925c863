package plan

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a computed slideshow plan.
type Document struct {
	Version     string         `yaml:"version"`
	Segments    []Segment      `yaml:"segments"`
	Transitions TransitionPlan `yaml:"transitions"`
}

// WritePlan writes the computed plan to a YAML file.
func WritePlan(path string, segments []Segment, transitions TransitionPlan) error {
	doc := Document{
		Version:     "1.0",
		Segments:    segments,
		Transitions: transitions,
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
