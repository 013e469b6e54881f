// Package enrich fills in missing definitions.
//
// An Enricher walks every word and phrase whose Definition is empty, asks an
// ai.Definer for its senses, and writes the result back in batches. Lookups
// are retried with exponential backoff; a term that still fails is counted
// and skipped so one bad lookup does not stop the run. Progress is reported
// to an io.Writer, typically os.Stderr.
package enrich
