// Package document turns source files into content strings for the
// pipelines: PDF page extraction, PDF to markdown text, markdown sectioning
// and input file globbing.
package document
