// Package docscrape converts documentation pages from several publishing
// platforms into one normalized Markdown document. It walks the content
// root of each page, classifies nodes into a small block vocabulary,
// pairs prompt labels with the code that follows them, and renders the
// result together with breadcrumb or path derived hierarchy.
//
// This package contains domain types, pure domain logic and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, rod/).
package docscrape
