package mock

import "github.com/fwojciec/docscrape"

var _ docscrape.ProfileRegistry = (*ProfileRegistry)(nil)

// ProfileRegistry is a mock implementation of docscrape.ProfileRegistry.
type ProfileRegistry struct {
	GetFn      func(name string) *docscrape.Profile
	DetectFn   func(pageURL, html string) *docscrape.Profile
	RegisterFn func(p *docscrape.Profile)
	ListFn     func() []string
}

func (r *ProfileRegistry) Get(name string) *docscrape.Profile {
	return r.GetFn(name)
}

func (r *ProfileRegistry) Detect(pageURL, html string) *docscrape.Profile {
	return r.DetectFn(pageURL, html)
}

func (r *ProfileRegistry) Register(p *docscrape.Profile) {
	r.RegisterFn(p)
}

func (r *ProfileRegistry) List() []string {
	return r.ListFn()
}
