// Package fs writes scraped articles and export documents to disk.
package fs

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docscrape"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements docscrape.ArticleStore at compile time.
var _ docscrape.ArticleStore = (*FileStore)(nil)

// FileStore writes one Markdown file per article with update-all-or-nothing
// semantics. Articles are saved below a temporary directory that replaces
// the output directory on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Dir returns the directory articles end up in after Commit.
func (s *FileStore) Dir() string {
	return s.finalDir()
}

// Save writes the article below the temporary directory at the path
// derived from its URL.
func (s *FileStore) Save(ctx context.Context, article *docscrape.ArticleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := article.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(article.URL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatFile(article)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the output directory with the saved articles.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the store was created.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts an article URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", docscrape.Errorf(docscrape.EINVALID, "invalid URL %q", rawURL)
	}

	p := u.Path
	if p == "" || p == "/" {
		return "index.md", nil
	}

	p = strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+p)), "/")
	if strings.HasSuffix(u.Path, "/") {
		return filepath.FromSlash(p + "/index.md"), nil
	}
	p = strings.TrimSuffix(p, ".html")
	p = strings.TrimSuffix(p, ".htm")
	return filepath.FromSlash(p + ".md"), nil
}

type frontmatter struct {
	Source     string   `yaml:"source"`
	Title      string   `yaml:"title"`
	Platform   string   `yaml:"platform,omitempty"`
	Path       []string `yaml:"path,omitempty"`
	Related    []string `yaml:"related,omitempty"`
	Diagnostic string   `yaml:"diagnostic,omitempty"`
	Crawled    string   `yaml:"crawled"`
}

// FormatFile renders an article as Markdown with YAML frontmatter.
func FormatFile(a *docscrape.ArticleRecord) (string, error) {
	fm := frontmatter{
		Source:     a.URL,
		Title:      a.Title,
		Platform:   a.Platform,
		Related:    a.RelatedLinks,
		Diagnostic: a.Diagnostic,
		Crawled:    a.FetchedAt.Format("2006-01-02"),
	}
	if !a.Hierarchy.IsUnknown() {
		fm.Path = a.Hierarchy
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	buf.WriteString("---\n\n")
	buf.WriteString("# " + a.Title + "\n\n")
	buf.WriteString(a.Body)
	return buf.String(), nil
}
