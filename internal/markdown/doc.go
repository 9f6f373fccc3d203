// Package markdown turns Markdown into accordion inputs: a definition list
// becomes the host <dl> container, and front-matter files become entries.
package markdown
