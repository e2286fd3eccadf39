package annotation

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"miso/internal/logging"
	"miso/internal/options"
)

// ErrNoData is returned by Inspect when the artifact holds no genes.
var ErrNoData = errors.New("annotation index contains no genes")

const sectionRule = "=="

// Loader reads an indexed annotation artifact.
type Loader interface {
	LoadIndexed(ctx context.Context, path string) (*Index, error)
}

// SQLiteLoader loads artifacts with LoadIndexed.
type SQLiteLoader struct{}

func (SQLiteLoader) LoadIndexed(ctx context.Context, path string) (*Index, error) {
	return LoadIndexed(ctx, path)
}

// Inspector prints the content of an artifact to a writer.
type Inspector struct {
	loader Loader
	out    io.Writer
	logger *slog.Logger
}

// NewInspector constructs an Inspector. A nil loader uses SQLiteLoader.
func NewInspector(loader Loader, out io.Writer, logger *slog.Logger) *Inspector {
	if loader == nil {
		loader = SQLiteLoader{}
	}
	return &Inspector{
		loader: loader,
		out:    out,
		logger: logging.NewComponentLogger(logger, "inspector"),
	}
}

// Inspect loads the artifact named by req and prints every gene record in
// artifact order. Loader errors are returned unchanged.
func (i *Inspector) Inspect(ctx context.Context, req options.ViewRequest) error {
	fmt.Fprintf(i.out, "Viewing genes in %s\n", req.Path)

	idx, err := i.loader.LoadIndexed(ctx, req.Path)
	if err != nil {
		return err
	}
	if idx.Empty() {
		fmt.Fprintln(i.out, "No genes.")
		return ErrNoData
	}
	i.logger.Debug("annotation index loaded", logging.String("path", idx.Path), logging.Int("genes", len(idx.Records)))

	w := bufio.NewWriter(i.out)
	for _, rec := range idx.Records {
		writeRecord(w, rec)
	}
	return w.Flush()
}

func writeRecord(w io.Writer, rec Record) {
	gene := rec.Gene
	fmt.Fprintf(w, "Gene %s\n", gene.ID)
	fmt.Fprintf(w, " - Gene object: %s\n", gene.Describe())
	fmt.Fprintln(w, sectionRule)
	fmt.Fprintln(w, "Isoforms:")
	for _, iso := range gene.Isoforms {
		fmt.Fprintf(w, " - %s\n", iso.Describe())
	}
	fmt.Fprintln(w, sectionRule)
	fmt.Fprintln(w, "mRNA IDs:")
	for _, id := range rec.Transcripts {
		fmt.Fprintln(w, id)
	}
	fmt.Fprintln(w, sectionRule)
	fmt.Fprintln(w, "Exons:")
	for _, part := range gene.Parts {
		fmt.Fprintf(w, " - %s\n", part.Describe())
	}
}
