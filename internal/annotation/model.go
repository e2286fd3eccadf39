package annotation

import (
	"fmt"
	"strings"
)

// ExonPart is a non-overlapping exonic segment of a gene.
type ExonPart struct {
	ID     string
	Chrom  string
	Start  int
	End    int
	Strand string
}

// Isoform is one transcript structure, expressed as the ordered exon parts it
// uses.
type Isoform struct {
	ID      string
	PartIDs []string
}

// Gene is the structural object of an indexed gene.
type Gene struct {
	ID       string
	Chrom    string
	Strand   string
	Start    int
	End      int
	Isoforms []Isoform
	Parts    []ExonPart
}

// Record pairs a gene with the transcript identifiers listed for it in the
// annotation hierarchy.
type Record struct {
	Gene        Gene
	Transcripts []string
}

// Index is the content of one artifact, in artifact order.
type Index struct {
	Path    string
	Records []Record
}

// Empty reports whether the artifact holds no genes.
func (i *Index) Empty() bool {
	return i == nil || len(i.Records) == 0
}

func formatCoords(chrom string, start, end int, strand string) string {
	if strand == "" {
		strand = "."
	}
	return fmt.Sprintf("%s:%d-%d(%s)", chrom, start, end, strand)
}

// Describe renders the gene structural object on a single line.
func (g Gene) Describe() string {
	return fmt.Sprintf("gene %s %s isoforms=%d parts=%d",
		g.ID, formatCoords(g.Chrom, g.Start, g.End, g.Strand), len(g.Isoforms), len(g.Parts))
}

// Describe renders the isoform on a single line.
func (i Isoform) Describe() string {
	parts := "-"
	if len(i.PartIDs) > 0 {
		parts = strings.Join(i.PartIDs, ",")
	}
	return fmt.Sprintf("isoform %s parts=%s", i.ID, parts)
}

// Describe renders the exon part on a single line.
func (p ExonPart) Describe() string {
	return fmt.Sprintf("exon %s %s", p.ID, formatCoords(p.Chrom, p.Start, p.End, p.Strand))
}
