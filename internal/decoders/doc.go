// Package decoders provides implementations of the Decoder interface for
// the supported source formats. Each decoder knows how to extract text
// and structural outline from one format tag.
//
// Decoders are registered with the DecoderRegistry at startup; dispatch
// happens on the format tag, never on call-site conditionals, so future
// formats (docx, pdf, mobi) add an implementation here and a Register
// call in RegisterDefaults.
package decoders
