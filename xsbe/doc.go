// Package xsbe compiles a schema-by-example document into a
// bidirectional transformer tree, and uses that tree to translate XML
// documents into value.Value trees and back.
//
// A schema is itself an example XML document, annotated with
// attributes in the http://xsbe.couling.uk namespace that declare
// multiplicity (xsbe:type), renaming (xsbe:name), defaults
// (xsbe:default), and attribute-sourced text (xsbe:value-from). Compile
// walks that example once to produce a Document, which is safe to
// reuse concurrently across any number of DecodeFromXML/EncodeToXML
// calls.
package xsbe
