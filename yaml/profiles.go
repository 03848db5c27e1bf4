// Package yaml loads platform profiles from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/docscrape"
	"gopkg.in/yaml.v3"
)

// File is the layout of a profile file.
//
//	profiles:
//	  - name: zendesk           # overrides the built-in profile
//	    related_selector: ".see-also a"
//	  - name: acme
//	    extends: zendesk        # starts from a copy of zendesk
//	    hosts: [help.acme.test]
type File struct {
	Profiles []Entry `yaml:"profiles"`
}

// Entry is one profile in a file. Fields not set in the file keep the
// value of the base profile.
type Entry struct {
	// Extends names the profile to start from. Defaults to the built-in
	// profile of the same name, if any.
	Extends string `yaml:"extends"`

	docscrape.Profile `yaml:",inline"`
}

type header struct {
	Name    string `yaml:"name"`
	Extends string `yaml:"extends"`
}

// LoadProfiles reads profiles from r and merges them over base. A profile
// with the name of a base profile replaces it in place; other profiles are
// appended in file order. Base profiles are not modified.
func LoadProfiles(r io.Reader, base []*docscrape.Profile) ([]*docscrape.Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// Strict pass for unknown keys.
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, docscrape.Errorf(docscrape.EINVALID, "parsing profiles: %v", err)
	}

	var raw struct {
		Profiles []yaml.Node `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, docscrape.Errorf(docscrape.EINVALID, "parsing profiles: %v", err)
	}

	out := make([]*docscrape.Profile, len(base))
	index := make(map[string]int, len(base))
	for i, p := range base {
		out[i] = p
		index[p.Name] = i
	}

	for _, node := range raw.Profiles {
		p, err := decodeEntry(&node, out, index)
		if err != nil {
			return nil, err
		}
		if i, ok := index[p.Name]; ok {
			out[i] = p
			continue
		}
		index[p.Name] = len(out)
		out = append(out, p)
	}
	return out, nil
}

// decodeEntry decodes one profile over a copy of its base.
func decodeEntry(node *yaml.Node, profiles []*docscrape.Profile, index map[string]int) (*docscrape.Profile, error) {
	var h header
	if err := node.Decode(&h); err != nil {
		return nil, docscrape.Errorf(docscrape.EINVALID, "line %d: %v", node.Line, err)
	}
	if h.Name == "" {
		return nil, docscrape.Errorf(docscrape.EINVALID, "line %d: profile name required", node.Line)
	}

	baseName := h.Name
	if h.Extends != "" {
		baseName = h.Extends
		if _, ok := index[baseName]; !ok {
			return nil, docscrape.Errorf(docscrape.EINVALID, "profile %q extends unknown profile %q", h.Name, h.Extends)
		}
	}

	entry := Entry{}
	if i, ok := index[baseName]; ok {
		entry.Profile = *profiles[i]
	}
	if err := node.Decode(&entry); err != nil {
		return nil, docscrape.Errorf(docscrape.EINVALID, "profile %q: %v", h.Name, err)
	}

	p := entry.Profile
	p.Name = h.Name
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadProfilesFile reads profiles from the file at path. See LoadProfiles.
func LoadProfilesFile(path string, base []*docscrape.Profile) ([]*docscrape.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, docscrape.Errorf(docscrape.ENOTFOUND, "profile file %s not found", path)
		}
		return nil, err
	}
	defer f.Close()
	return LoadProfiles(f, base)
}
