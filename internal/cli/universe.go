package cli

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/linkdiag/pkg/deps"
	"github.com/matzehuels/linkdiag/pkg/errors"
)

// universeFile is the YAML description of a module universe:
//
//	current: app
//	modules:
//	  - name: app
//	    dependencies: [liba]
//	  - name: liba
//	    version: "1.0"
//	    path: libs/liba.klib
type universeFile struct {
	Current string       `yaml:"current"`
	Modules []moduleSpec `yaml:"modules"`
}

type moduleSpec struct {
	Name         string   `yaml:"name"`
	Dependencies []string `yaml:"dependencies"`
	Version      string   `yaml:"version"`
	Path         string   `yaml:"path"`
}

// universe is a loaded module universe.
type universe struct {
	current string
	modules []deps.Module
	byName  map[string]deps.Module
}

// module returns the module called name, or the current module if name is
// empty.
func (u *universe) module(name string) (deps.Module, error) {
	if name == "" {
		name = u.current
	}
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no module given and the universe names no current module")
	}
	m, ok := u.byName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeModuleNotFound, "module %q is not part of the universe", name)
	}
	return m, nil
}

// loadUniverse reads a universe file. Relative artifact paths are resolved
// against the file's directory.
func loadUniverse(path string) (*universe, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--universe is required")
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "universe %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "universe %s", path)
	}
	defer f.Close()

	var file universeFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "universe %s", path)
	}

	dir := filepath.Dir(path)
	u := &universe{current: file.Current, byName: make(map[string]deps.Module, len(file.Modules))}
	for _, spec := range file.Modules {
		if err := validateSpec(spec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "universe %s", path)
		}
		if _, dup := u.byName[spec.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "universe %s: module %q listed twice", path, spec.Name)
		}

		artifact := spec.Path
		if artifact != "" && !filepath.IsAbs(artifact) {
			artifact = filepath.Join(dir, artifact)
		}
		m := deps.StaticLibrary{
			UniqueName:      spec.Name,
			DependsOn:       spec.Dependencies,
			DeclaredVersion: spec.Version,
			File:            artifact,
		}
		u.modules = append(u.modules, m)
		u.byName[spec.Name] = m
	}

	if u.current != "" {
		if _, ok := u.byName[u.current]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "universe %s: current module %q is not listed", path, u.current)
		}
	}
	return u, nil
}

func validateSpec(spec moduleSpec) error {
	if err := errors.ValidateModuleName(spec.Name); err != nil {
		return err
	}
	for _, d := range spec.Dependencies {
		if err := errors.ValidateModuleName(d); err != nil {
			return err
		}
	}
	if err := errors.ValidateVersion(spec.Version); err != nil {
		return err
	}
	if spec.Path != "" {
		return errors.ValidateArtifactPath(spec.Path)
	}
	return nil
}
