// Package rules contains the built-in lint rules for marklint.
//
// Rules are grouped by concern: headings, lists, whitespace, code blocks,
// links, emphasis, blockquotes, tables, HTML, and document metadata. Each
// rule declares static metadata and a per-document linter constructor;
// register.go wires them into the default registry in MD-number order.
package rules
