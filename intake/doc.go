// Package intake provides the write-side workflows for lost and found reports.
//
// The Pipeline type handles:
//   - Submitting a report: validation, feature extraction, duplicate detection
//     against recent same-kind reports, storage
//   - Answering a clarifying question: merging the answer into the stored
//     feature record and recording which field was clarified
//
// Feature records are derived from report text alone, so re-running intake
// over the same text always yields the same record.
package intake
