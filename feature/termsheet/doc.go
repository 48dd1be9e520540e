// Package termsheet turns term sheet documents into structured terms.
//
// Documents arrive as PDF files or objects in the storage bucket. Extraction
// is a two step pipeline: pdf.go pulls the plain text out of the document,
// and Extractor sends that text to an LLM that returns the terms as a flat
// JSON object. Already-structured term sheets can be loaded directly from
// JSON, which also serves as the test path since it needs no API key.
package termsheet
