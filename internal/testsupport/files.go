package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"miso/internal/annotation"
)

// SampleRecord returns one skipped-exon gene with two isoforms and three exon
// parts.
func SampleRecord() annotation.Record {
	return annotation.Record{
		Gene: annotation.Gene{
			ID:     "chr2:136763621:136763740:-@chr2:136761911:136762018:-@chr2:136759605:136759667:-",
			Chrom:  "chr2",
			Strand: "-",
			Start:  136759605,
			End:    136763740,
			Isoforms: []annotation.Isoform{
				{ID: "inc", PartIDs: []string{"up", "se", "dn"}},
				{ID: "exc", PartIDs: []string{"up", "dn"}},
			},
			Parts: []annotation.ExonPart{
				{ID: "up", Chrom: "chr2", Start: 136763621, End: 136763740, Strand: "-"},
				{ID: "se", Chrom: "chr2", Start: 136761911, End: 136762018, Strand: "-"},
				{ID: "dn", Chrom: "chr2", Start: 136759605, End: 136759667, Strand: "-"},
			},
		},
		Transcripts: []string{"inc", "exc"},
	}
}

// WriteIndex writes records into a fresh index directory and returns the
// artifact path.
func WriteIndex(t testing.TB, records ...annotation.Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "indexed", annotation.DefaultIndexName)
	if err := annotation.WriteIndex(context.Background(), path, records); err != nil {
		t.Fatalf("write index: %v", err)
	}
	return path
}
