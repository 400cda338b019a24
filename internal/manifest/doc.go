// Package manifest defines the bucket manifest document, an accumulator for
// building it across both resolution pipelines, and a writer that validates
// the serialized document against an embedded JSON schema before persisting
// it in one shot.
package manifest
