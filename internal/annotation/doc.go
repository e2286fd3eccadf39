// Package annotation reads indexed annotation artifacts and renders them for
// debugging.
//
// An artifact is a SQLite database written by the indexer: one row per gene
// plus its isoforms, exon parts, and the transcript identifiers of the gene
// hierarchy, all kept in insertion order. LoadIndexed returns the records in
// that order and Inspector prints them with a fixed line format.
package annotation
