package goquery_test

import (
	"testing"

	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	profiles := docscrape.DefaultProfiles()

	tests := []struct {
		name string
		url  string
		html string
		want string
	}{
		{
			name: "known host",
			url:  "https://www.odoo.com/documentation/18.0/index.html",
			html: `<html><body><p>x</p></body></html>`,
			want: "odoo",
		},
		{
			name: "host match ignores case",
			url:  "https://Support.ToddleApp.com/en/articles/1",
			html: `<html><body></body></html>`,
			want: "intercom",
		},
		{
			name: "meta generator",
			url:  "https://docs.example.com/intro",
			html: `<html><head><meta name="generator" content="Docusaurus v3.1.0"></head><body></body></html>`,
			want: "docusaurus",
		},
		{
			name: "generator of mkdocs",
			url:  "https://docs.example.com/",
			html: `<html><head><meta name="generator" content="mkdocs-1.5.3, mkdocs-material-9.5.0"></head><body></body></html>`,
			want: "mkdocs",
		},
		{
			name: "structural marker of zendesk",
			url:  "https://help.example.com/hc/en-gb/articles/1",
			html: `<html><body><ol class="breadcrumbs"><li>Home</li></ol><div class="article-body"><p>x</p></div></body></html>`,
			want: "zendesk",
		},
		{
			name: "structural marker of sphinx",
			url:  "https://project.example.org/en/latest/",
			html: `<html><body><nav class="wy-nav-side"></nav></body></html>`,
			want: "sphinx",
		},
		{
			name: "structural marker of vitepress",
			url:  "https://vite.example.dev/guide/",
			html: `<html><body><div id="VPContent"></div></body></html>`,
			want: "vitepress",
		},
		{
			name: "host outranks generator",
			url:  "https://www.promptingguide.ai/techniques",
			html: `<html><head><meta name="generator" content="Docusaurus"></head><body></body></html>`,
			want: "nextra",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parseDoc(t, tt.html)

			got := goquery.NewDetector().Detect(doc, tt.url, profiles)

			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}

	t.Run("nil for unknown page", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><main><p>plain</p></main></body></html>`)

		got := goquery.NewDetector().Detect(doc, "https://plain.example.com/", profiles)

		assert.Nil(t, got)
	})
}
