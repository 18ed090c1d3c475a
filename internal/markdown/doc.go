// Package markdown implements the filesystem-backed Markdown pipeline used by
// the lessons, outline, and checker modules: discovery, frontmatter
// extraction, goldmark HTML rendering, and structural analysis of document
// sources.
package markdown
