package goquery

import (
	"github.com/fwojciec/docscrape"
)

var _ docscrape.ProfileRegistry = (*Registry)(nil)

// Registry holds platform profiles in registration order and detects
// which one applies to a page, falling back to the generic profile.
type Registry struct {
	detector *Detector
	profiles map[string]*docscrape.Profile
	order    []string
}

// NewRegistry creates a Registry holding the given profiles.
func NewRegistry(detector *Detector, profiles ...*docscrape.Profile) *Registry {
	r := &Registry{
		detector: detector,
		profiles: make(map[string]*docscrape.Profile),
	}
	for _, p := range profiles {
		r.Register(p)
	}
	return r
}

// Get returns the profile with the given name.
// Returns nil if no profile is registered under that name.
func (r *Registry) Get(name string) *docscrape.Profile {
	return r.profiles[name]
}

// Detect identifies the page's platform. Falls back to the registered
// generic profile, or a bare generic profile when none is registered.
func (r *Registry) Detect(pageURL, html string) *docscrape.Profile {
	if doc, err := parse(html); err == nil {
		if p := r.detector.Detect(doc, pageURL, r.ordered()); p != nil {
			return p
		}
	}
	if p, ok := r.profiles[docscrape.GenericProfile]; ok {
		return p
	}
	p := &docscrape.Profile{Name: docscrape.GenericProfile}
	p.ApplyDefaults()
	return p
}

// Register adds a profile. A profile with the same name is replaced and
// keeps its position.
func (r *Registry) Register(p *docscrape.Profile) {
	if _, ok := r.profiles[p.Name]; !ok {
		r.order = append(r.order, p.Name)
	}
	r.profiles[p.Name] = p
}

// List returns the registered profile names in registration order.
func (r *Registry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *Registry) ordered() []*docscrape.Profile {
	profiles := make([]*docscrape.Profile, 0, len(r.order))
	for _, name := range r.order {
		profiles = append(profiles, r.profiles[name])
	}
	return profiles
}
