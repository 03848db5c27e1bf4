package docscrape

import (
	"net/url"
	"strings"
	"time"
)

// HierarchySource selects where a profile takes page hierarchy from.
type HierarchySource string

// Hierarchy sources.
const (
	// HierarchyFromBreadcrumbs reads breadcrumb markup and falls back to
	// the URL path when the page has none.
	HierarchyFromBreadcrumbs HierarchySource = "breadcrumb"
	// HierarchyFromPath always derives hierarchy from the URL path.
	HierarchyFromPath HierarchySource = "path"
)

// Defaults applied to profiles that leave the field empty.
var (
	DefaultWrapperTags    = []string{"div", "section", "article", "main"}
	DefaultLabelTags      = []string{"p", "strong", "b", "em", "span"}
	DefaultPromptLabels   = []string{"Prompt"}
	DefaultOutputLabels   = []string{"Output"}
	DefaultTitleSelectors = []string{"h1"}
	DefaultRemove         = []string{"script", "style", "noscript", "img", "video", "iframe", "svg"}
)

// CalloutRule describes a special container rendered as a callout.
type CalloutRule struct {
	// Classes are class patterns identifying the container. A trailing
	// "*" matches any class token with that prefix.
	Classes []string `yaml:"classes"`

	// Title and Body are selectors evaluated inside the container. When
	// Body matches nothing the container text without the title is used.
	Title string `yaml:"title"`
	Body  string `yaml:"body"`

	// DefaultTitle is used when Title matches nothing and no class title
	// applies.
	DefaultTitle string `yaml:"default_title"`

	// ClassTitles maps exact class tokens to titles, e.g. alert-warning to
	// Warning.
	ClassTitles map[string]string `yaml:"class_titles"`
}

// Profile is the configuration that adapts the extraction engine to one
// publishing platform. The engine itself is platform agnostic.
type Profile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Hosts       []string `yaml:"hosts"`
	// Generators are substrings of the meta generator tag that identify
	// the platform.
	Generators []string `yaml:"generators"`
	// Markers are selectors whose presence identifies the platform.
	Markers []string `yaml:"markers"`

	// ContentRoots are tried in order; the first match is the article
	// body. Without any, a ContentLocator picks the root.
	ContentRoots []string `yaml:"content_roots"`
	// Remove lists selectors ignored before traversal.
	Remove         []string      `yaml:"remove"`
	NoiseClasses   []string      `yaml:"noise_classes"`
	WrapperTags    []string      `yaml:"wrapper_tags"`
	Callouts       []CalloutRule `yaml:"callouts"`
	CodeContainers []string      `yaml:"code_containers"`
	LabelTags      []string      `yaml:"label_tags"`
	PromptLabels   []string      `yaml:"prompt_labels"`
	OutputLabels   []string      `yaml:"output_labels"`
	HeadingOffset  int           `yaml:"heading_offset"`
	// HeadingTrim lists strings removed from heading text, such as
	// permalink markers.
	HeadingTrim []string `yaml:"heading_trim"`
	// SkipTitle drops h1 headings from the body.
	SkipTitle  bool `yaml:"skip_title"`
	Tables     bool `yaml:"tables"`
	PairWindow int  `yaml:"pair_window"`

	TitleSelectors     []string        `yaml:"title_selectors"`
	BreadcrumbSelector string          `yaml:"breadcrumb_selector"`
	BreadcrumbNoise    []string        `yaml:"breadcrumb_noise"`
	Hierarchy          HierarchySource `yaml:"hierarchy"`
	// PathStrip lists leading path segments ignored by URL hierarchy.
	PathStrip       []string `yaml:"path_strip"`
	RelatedSelector string   `yaml:"related_selector"`

	// LinkContainers scope link discovery; the first matching selector
	// wins and the whole page is used when none match.
	LinkContainers []string `yaml:"link_containers"`
	// LinkPatterns keep only links containing one of the substrings.
	LinkPatterns []string `yaml:"link_patterns"`
	LinkExclude  []string `yaml:"link_exclude"`
	// ScopeRoot replaces the entry path as the crawl's path prefix.
	ScopeRoot string `yaml:"scope_root"`
	// IndexPatterns mark listing pages in addition to paths ending in "/".
	IndexPatterns     []string `yaml:"index_patterns"`
	ExtractIndexPages bool     `yaml:"extract_index_pages"`
	// LeafSuffix marks terminal documents that are never expanded.
	LeafSuffix string `yaml:"leaf_suffix"`
	// MaxDepth bounds link distance from the entry page; 0 is unbounded.
	MaxDepth int `yaml:"max_depth"`

	Browser      bool          `yaml:"browser"`
	WaitSelector string        `yaml:"wait_selector"`
	RenderDelay  time.Duration `yaml:"render_delay"`
}

// Validate returns an error if the profile contains invalid fields.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "profile name required")
	}
	switch p.Hierarchy {
	case "", HierarchyFromBreadcrumbs, HierarchyFromPath:
	default:
		return Errorf(EINVALID, "profile %q: unknown hierarchy source %q", p.Name, p.Hierarchy)
	}
	if p.HeadingOffset < -5 || p.HeadingOffset > 5 {
		return Errorf(EINVALID, "profile %q: heading offset %d out of range", p.Name, p.HeadingOffset)
	}
	if p.MaxDepth < 0 {
		return Errorf(EINVALID, "profile %q: negative max depth", p.Name)
	}
	return nil
}

// ApplyDefaults fills empty fields with their defaults.
func (p *Profile) ApplyDefaults() {
	if len(p.WrapperTags) == 0 {
		p.WrapperTags = DefaultWrapperTags
	}
	if len(p.LabelTags) == 0 {
		p.LabelTags = DefaultLabelTags
	}
	if len(p.PromptLabels) == 0 {
		p.PromptLabels = DefaultPromptLabels
	}
	if len(p.OutputLabels) == 0 {
		p.OutputLabels = DefaultOutputLabels
	}
	if len(p.TitleSelectors) == 0 {
		p.TitleSelectors = DefaultTitleSelectors
	}
	if p.PairWindow <= 0 {
		p.PairWindow = DefaultPairWindow
	}
	if p.Hierarchy == "" {
		if p.BreadcrumbSelector != "" {
			p.Hierarchy = HierarchyFromBreadcrumbs
		} else {
			p.Hierarchy = HierarchyFromPath
		}
	}
}

// IsIndexPage reports whether a URL is a listing page: its path ends in
// "/" or contains one of the profile's index patterns.
func (p *Profile) IsIndexPage(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if strings.HasSuffix(u.Path, "/") {
		return true
	}
	for _, pattern := range p.IndexPatterns {
		if strings.Contains(u.Path, pattern) {
			return true
		}
	}
	return false
}

// Extracts reports whether a page at rawURL becomes an article.
func (p *Profile) Extracts(rawURL string) bool {
	return p.ExtractIndexPages || !p.IsIndexPage(rawURL)
}

// Expands reports whether links are discovered on a page at rawURL at the
// given depth.
func (p *Profile) Expands(rawURL string, depth int) bool {
	if p.MaxDepth > 0 && depth >= p.MaxDepth {
		return false
	}
	if p.LeafSuffix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return !strings.HasSuffix(u.Path, p.LeafSuffix)
}

// EntryURL returns the URL a crawl of rawURL starts from. Profiles with a
// LeafSuffix serve sections as directories, so an entry path that is
// neither a leaf document nor ends in "/" gets a trailing slash. This keeps
// /sales from scoping in /sales_x and marks the entry as an index page.
func (p *Profile) EntryURL(rawURL string) string {
	if p.LeafSuffix == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || strings.HasSuffix(u.Path, "/") || strings.HasSuffix(u.Path, p.LeafSuffix) {
		return rawURL
	}
	u.Path += "/"
	if u.RawPath != "" {
		u.RawPath += "/"
	}
	return u.String()
}

// MatchesHost reports whether host is one of the profile's hosts.
func (p *Profile) MatchesHost(host string) bool {
	for _, h := range p.Hosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// ProfileRegistry holds the known platform profiles.
type ProfileRegistry interface {
	// Get returns the profile with the given name, or nil.
	Get(name string) *Profile

	// Detect picks the profile for a page from its host and markup.
	// Falls back to the generic profile when nothing matches.
	Detect(pageURL, html string) *Profile

	// Register adds a profile, replacing any profile with the same name.
	Register(p *Profile)

	// List returns profile names in registration order.
	List() []string
}

// GenericProfile is the name of the profile used for unknown platforms.
const GenericProfile = "generic"

// DefaultProfiles returns fresh copies of the built-in platform profiles,
// most specific first.
func DefaultProfiles() []*Profile {
	profiles := []*Profile{
		{
			Name:        "readme",
			Description: "ReadMe.io developer hubs (iSAMS developer docs)",
			Hosts:       []string{"developer.isams.com"},
			Markers:     []string{".rm-Article", "#hub-sidebar"},
			ContentRoots: []string{
				".rm-Article .rm-Content",
				".rm-Article .markdown-body",
				".rm-Article",
				"article",
				"#content",
			},
			NoiseClasses: []string{
				"rm-Article-meta", "rm-Sidebar", "rm-Callout-icon",
				"rm-Article-navigation", "rm-Breadcrumbs",
			},
			Callouts: []CalloutRule{{
				Classes:      []string{"rm-Callout", "callout"},
				Title:        ".rm-Callout-title, .callout-heading",
				Body:         ".rm-Callout-body, .callout-body",
				DefaultTitle: "Note",
			}},
			CodeContainers:     []string{"rm-CodeBlock", "rm-CodeTabs", "highlight"},
			TitleSelectors:     []string{".rm-Article h1", "h1"},
			BreadcrumbSelector: ".rm-Breadcrumbs a",
			SkipTitle:          true,
			Tables:             true,
			LinkContainers:     []string{"#hub-sidebar", ".rm-Sidebar"},
			MaxDepth:           1,
			Browser:            true,
			WaitSelector:       ".rm-Article",
			RenderDelay:        2 * time.Second,
		},
		{
			Name:         "odoo",
			Description:  "Sphinx documentation (Odoo docs)",
			Hosts:        []string{"www.odoo.com", "odoo.com"},
			Markers:      []string{"article.doc-body", ".o_git_link"},
			ContentRoots: []string{"article.doc-body", "div[role=main]"},
			NoiseClasses: []string{"o_git_link", "headerlink"},
			Callouts: []CalloutRule{{
				Classes:      []string{"alert*", "admonition"},
				Title:        ".alert-title, .admonition-title",
				DefaultTitle: "Note",
				ClassTitles: map[string]string{
					"alert-warning": "Warning",
					"alert-danger":  "Caution",
					"alert-success": "Tip",
					"alert-info":    "Note",
					"warning":       "Warning",
					"danger":        "Caution",
					"tip":           "Tip",
					"note":          "Note",
				},
			}},
			CodeContainers: []string{"highlight*"},
			HeadingOffset:  1,
			HeadingTrim:    []string{"¶"},
			SkipTitle:      true,
			Tables:         true,
			Hierarchy:      HierarchyFromPath,
			PathStrip:      []string{"documentation"},
			LinkContainers: []string{"article.doc-body", "div[role=main]"},
			LeafSuffix:     ".html",
		},
		{
			Name:         "nextra",
			Description:  "Nextra sites (Prompt Engineering Guide)",
			Hosts:        []string{"www.promptingguide.ai", "promptingguide.ai"},
			Markers:      []string{".nextra-breadcrumb", ".nextra-nav-container", ".nextra-content"},
			ContentRoots: []string{"main", "article"},
			NoiseClasses: []string{"nextra-breadcrumb", "nextra-toc", "subheading-anchor", "nx-sr-only"},
			Callouts: []CalloutRule{{
				Classes:      []string{"nextra-callout"},
				DefaultTitle: "Note",
			}},
			CodeContainers:    []string{"nextra-code-block"},
			SkipTitle:         true,
			Tables:            true,
			Hierarchy:         HierarchyFromPath,
			LinkContainers:    []string{"main"},
			ExtractIndexPages: true,
			MaxDepth:          1,
		},
		{
			Name:        "intercom",
			Description: "Intercom help centres (Toddle support)",
			Hosts:       []string{"support.toddleapp.com"},
			Markers:     []string{".intercom-article-body", ".intercom-breadcrumb"},
			ContentRoots: []string{
				".intercom-article-body",
				"article",
				".article-body",
				"[role=main]",
				".article-content",
			},
			Remove:       []string{"nav", "header", "footer", ".intercom-reaction-picker", ".breadcrumb"},
			NoiseClasses: []string{"breadcrumb", "nav", "header", "footer"},
			Callouts: []CalloutRule{
				{Classes: []string{"note", "callout", "alert", "intercom-interblocks-callout"}, DefaultTitle: "Note"},
				{Classes: []string{"intercom-interblocks-collapsible", "collapsible"}, Title: "summary, [class*=collapsible-title]", DefaultTitle: "Details"},
			},
			BreadcrumbSelector: `.intercom-breadcrumb a, .breadcrumb a, [data-testid="breadcrumb"] a`,
			BreadcrumbNoise: []string{
				"Home", "Help Center", "All Collections", "Support",
				"Toddle Help Center", "Toddle Support",
			},
			Tables:        true,
			LinkPatterns:  []string{"/articles/", "/collections/"},
			ScopeRoot:     "/",
			IndexPatterns: []string{"/collections/"},
			MaxDepth:      2,
			Browser:       true,
			WaitSelector:  ".intercom-article-body",
			RenderDelay:   3 * time.Second,
		},
		{
			Name:               "zendesk",
			Description:        "Zendesk Guide help centres (iSAMS help centre)",
			Markers:            []string{".article-body", "ol.breadcrumbs"},
			ContentRoots:       []string{".article-body", "article"},
			Tables:             true,
			BreadcrumbSelector: ".breadcrumbs li",
			BreadcrumbNoise:    []string{"Home", "Help Center", "Help Centre"},
			PathStrip:          []string{"hc", "en-gb", "en-us"},
			RelatedSelector:    ".recent-articles li a, .related-articles li a",
			LinkPatterns:       []string{"/articles/", "/sections/"},
			LinkExclude:        []string{"/requests/", "/login", "/signup"},
			ScopeRoot:          "/hc/",
			IndexPatterns:      []string{"/categories/", "/sections/"},
			MaxDepth:           2,
			Browser:            true,
			WaitSelector:       ".article-body",
			RenderDelay:        2 * time.Second,
		},
		{
			Name:         "docusaurus",
			Description:  "Docusaurus sites",
			Generators:   []string{"docusaurus"},
			Markers:      []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container"},
			ContentRoots: []string{".theme-doc-markdown", "article"},
			NoiseClasses: []string{
				"hash-link", "theme-doc-breadcrumbs", "theme-doc-toc-mobile",
				"pagination-nav", "theme-doc-footer",
			},
			Callouts: []CalloutRule{{
				Classes:      []string{"theme-admonition", "admonition"},
				Title:        "[class*=admonitionHeading]",
				Body:         "[class*=admonitionContent]",
				DefaultTitle: "Note",
				ClassTitles: map[string]string{
					"theme-admonition-note":    "Note",
					"theme-admonition-tip":     "Tip",
					"theme-admonition-info":    "Info",
					"theme-admonition-warning": "Warning",
					"theme-admonition-danger":  "Danger",
				},
			}},
			CodeContainers:     []string{"theme-code-block"},
			TitleSelectors:     []string{"article h1", "h1"},
			BreadcrumbSelector: ".theme-doc-breadcrumbs .breadcrumbs__link",
			BreadcrumbNoise:    []string{"Home"},
			SkipTitle:          true,
			Tables:             true,
			PathStrip:          []string{"docs"},
			LinkContainers:     []string{".theme-doc-sidebar-container", "article"},
		},
		{
			Name:         "mkdocs",
			Description:  "MkDocs Material sites",
			Generators:   []string{"mkdocs"},
			Markers:      []string{"[data-md-component]", ".md-nav--primary"},
			ContentRoots: []string{".md-content__inner", ".md-content", "[role=main]"},
			NoiseClasses: []string{"headerlink", "md-source-file", "md-content__button"},
			Callouts: []CalloutRule{
				{
					Classes:      []string{"admonition"},
					Title:        ".admonition-title",
					DefaultTitle: "Note",
				},
				{
					Classes:      []string{"note", "tip", "info", "warning", "danger", "example", "question"},
					Title:        "summary",
					DefaultTitle: "Details",
				},
			},
			CodeContainers: []string{"highlight"},
			HeadingTrim:    []string{"¶"},
			SkipTitle:      true,
			Tables:         true,
			LinkContainers: []string{".md-nav--primary", ".md-content"},
		},
		{
			Name:         "sphinx",
			Description:  "Sphinx sites, including the Read the Docs theme",
			Generators:   []string{"sphinx"},
			Markers:      []string{".wy-nav-side", ".sphinxsidebar", ".toctree-wrapper"},
			ContentRoots: []string{"[itemprop=articleBody]", "div.body", "div[role=main]", ".document"},
			NoiseClasses: []string{"headerlink"},
			Callouts: []CalloutRule{{
				Classes:      []string{"admonition"},
				Title:        ".admonition-title",
				DefaultTitle: "Note",
			}},
			CodeContainers: []string{"highlight*"},
			HeadingTrim:    []string{"¶"},
			SkipTitle:      true,
			Tables:         true,
			LinkContainers: []string{".wy-menu-vertical", ".sphinxsidebar", ".toctree-wrapper", "div.body"},
		},
		{
			Name:         "vitepress",
			Description:  "VitePress sites",
			Generators:   []string{"vitepress"},
			Markers:      []string{"#VPContent", ".VPDoc"},
			ContentRoots: []string{".vp-doc", ".VPDoc main", "main"},
			NoiseClasses: []string{"header-anchor", "VPDocFooter", "copy", "lang"},
			Callouts: []CalloutRule{{
				Classes:      []string{"custom-block"},
				Title:        ".custom-block-title",
				DefaultTitle: "Note",
			}},
			CodeContainers: []string{"language-*"},
			SkipTitle:      true,
			Tables:         true,
			LinkContainers: []string{".VPSidebar", ".VPDoc"},
		},
		{
			Name:           "gitbook",
			Description:    "GitBook spaces",
			Generators:     []string{"gitbook"},
			Markers:        []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"},
			ContentRoots:   []string{"[data-testid='page.contentEditor']", "main", "article"},
			Tables:         true,
			SkipTitle:      true,
			LinkContainers: []string{"[data-testid='space.sidebar']", "main"},
			Browser:        true,
			RenderDelay:    time.Second,
		},
		{
			Name:        GenericProfile,
			Description: "Any other site; the content root is located heuristically",
			Tables:      true,
			Hierarchy:   HierarchyFromPath,
			PathStrip:   []string{"docs", "documentation", "doc"},
		},
	}

	for _, p := range profiles {
		p.ApplyDefaults()
	}
	return profiles
}
