// Package archive exports a lexicon to a portable CBOR stream and imports it
// back.
//
// An archive is a Manifest followed by Manifest.Count Records, each encoded
// as one CBOR data item. Stored IDs and timestamps are not carried over:
// imported entries get fresh IDs from the destination store.
package archive
