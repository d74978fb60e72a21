// Package rederive rebuilds the stored feature record of every report from
// its raw text and recorded clarification.
//
// Feature extraction is deterministic, so a rebuilt record only differs from
// the stored one when the vocabularies or the extraction rules changed since
// the report was written. This package supports batch processing of reports,
// progress tracking, checkpointed resumption of interrupted runs and retry
// with exponential backoff on storage failures.
package rederive
