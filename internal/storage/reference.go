package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
)

// Reference is the static data the editor works from: the exercise catalog,
// billing code lists and the groups a new flowsheet starts with.
type Reference struct {
	Catalog   []flowsheet.CatalogEntry `yaml:"catalog"`
	Codes     []flowsheet.CodeOption   `yaml:"codes"`
	EvalCodes []flowsheet.CodeOption   `yaml:"eval_codes"`
	Modifiers []flowsheet.CodeOption   `yaml:"modifiers"`
	Providers []string                 `yaml:"providers"`
	Groups    []flowsheet.SeedGroup    `yaml:"groups"`
}

// AllCodes returns the treatment codes followed by the evaluation codes, the
// list offered by the billing code field of a group.
func (r Reference) AllCodes() []flowsheet.CodeOption {
	out := make([]flowsheet.CodeOption, 0, len(r.Codes)+len(r.EvalCodes))
	out = append(out, r.Codes...)
	return append(out, r.EvalCodes...)
}

// FallbackCode is the billing code used for groups whose label holds none.
func (r Reference) FallbackCode() string {
	if all := r.AllCodes(); len(all) > 0 {
		return all[0].Code
	}
	return ""
}

// LoadReference reads reference.yaml from the workspace. A missing file yields
// the built-in defaults; sections left out of the file keep their defaults.
// An explicitly empty groups list starts the editor with no groups.
func (s *Store) LoadReference() (Reference, error) {
	data, err := os.ReadFile(s.ReferencePath())
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return Reference{}, fmt.Errorf("could not read reference data: %w", err)
	}

	var ref Reference
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return Reference{}, fmt.Errorf("could not parse reference data: %w", err)
	}
	var present struct {
		Groups *[]flowsheet.SeedGroup `yaml:"groups"`
	}
	if err := yaml.Unmarshal(data, &present); err != nil {
		return Reference{}, fmt.Errorf("could not parse reference data: %w", err)
	}

	def := Defaults()
	if len(ref.Catalog) == 0 {
		ref.Catalog = def.Catalog
	}
	if len(ref.Codes) == 0 {
		ref.Codes = def.Codes
	}
	if len(ref.EvalCodes) == 0 {
		ref.EvalCodes = def.EvalCodes
	}
	if len(ref.Modifiers) == 0 {
		ref.Modifiers = def.Modifiers
	}
	if len(ref.Providers) == 0 {
		ref.Providers = def.Providers
	}
	if present.Groups == nil {
		ref.Groups = def.Groups
	}
	return ref, nil
}

// WriteDefaults writes the built-in reference data to reference.yaml. An
// existing file is kept unless force is set. It reports whether it wrote.
func (s *Store) WriteDefaults(force bool) (bool, error) {
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return false, fmt.Errorf("could not encode reference data: %w", err)
	}
	return s.writeIfMissing(s.ReferencePath(), data, force)
}

// WriteConfig writes content to config.yaml, keeping an existing file unless
// force is set.
func (s *Store) WriteConfig(content string, force bool) (bool, error) {
	return s.writeIfMissing(s.ConfigPath(), []byte(content), force)
}

func (s *Store) writeIfMissing(path string, data []byte, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("could not write %s: %w", path, err)
	}
	return true, nil
}
