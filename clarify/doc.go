// Package clarify picks a single question that best separates the top
// matches of a report, and decides whether asking is worthwhile at all.
//
// Questions only target fields the report's own feature record lacks, and a
// question is only offered when the candidates actually disagree on the field.
package clarify
