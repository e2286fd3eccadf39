package annotation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultIndexName is the artifact file name the indexer writes inside an
// index directory.
const DefaultIndexName = "genes.db"

const schemaVersion = 1

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS genes (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        gene_id TEXT NOT NULL UNIQUE,
        chrom TEXT NOT NULL,
        strand TEXT NOT NULL,
        start_pos INTEGER NOT NULL,
        end_pos INTEGER NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS isoforms (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        gene_id TEXT NOT NULL REFERENCES genes(gene_id),
        isoform_id TEXT NOT NULL,
        part_ids_json TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS exon_parts (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        gene_id TEXT NOT NULL REFERENCES genes(gene_id),
        part_id TEXT NOT NULL,
        chrom TEXT NOT NULL,
        strand TEXT NOT NULL,
        start_pos INTEGER NOT NULL,
        end_pos INTEGER NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS transcripts (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        gene_id TEXT NOT NULL REFERENCES genes(gene_id),
        transcript_id TEXT NOT NULL
    )`,
}

// ResolveIndexPath maps an index directory to the artifact inside it and
// leaves file paths untouched.
func ResolveIndexPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("annotation index %s: %w", path, fs.ErrNotExist)
		}
		return "", fmt.Errorf("stat annotation index: %w", err)
	}
	if info.IsDir() {
		return ResolveIndexPath(filepath.Join(path, DefaultIndexName))
	}
	return path, nil
}

// LoadIndexed reads every gene record from the artifact at path. An artifact
// without genes yields an empty Index and no error.
func LoadIndexed(ctx context.Context, path string) (*Index, error) {
	resolved, err := ResolveIndexPath(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("open annotation index: %w", err)
	}
	defer db.Close()
	// query_only is per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("apply pragma: %w", err)
	}

	idx := &Index{Path: resolved}
	ok, err := hasGenesTable(ctx, db)
	if err != nil {
		return nil, err
	}
	if !ok {
		return idx, nil
	}
	byID := map[string]int{}

	rows, err := db.QueryContext(ctx, `SELECT gene_id, chrom, strand, start_pos, end_pos FROM genes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query genes: %w", err)
	}
	for rows.Next() {
		var g Gene
		if err := rows.Scan(&g.ID, &g.Chrom, &g.Strand, &g.Start, &g.End); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan gene: %w", err)
		}
		byID[g.ID] = len(idx.Records)
		idx.Records = append(idx.Records, Record{Gene: g})
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read genes: %w", err)
	}
	if len(idx.Records) == 0 {
		return idx, nil
	}

	if err := loadIsoforms(ctx, db, idx, byID); err != nil {
		return nil, err
	}
	if err := loadParts(ctx, db, idx, byID); err != nil {
		return nil, err
	}
	if err := loadTranscripts(ctx, db, idx, byID); err != nil {
		return nil, err
	}
	return idx, nil
}

func hasGenesTable(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'genes'`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect annotation index: %w", err)
	}
	return n > 0, nil
}

func loadIsoforms(ctx context.Context, db *sql.DB, idx *Index, byID map[string]int) error {
	rows, err := db.QueryContext(ctx, `SELECT gene_id, isoform_id, part_ids_json FROM isoforms ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("query isoforms: %w", err)
	}
	for rows.Next() {
		var geneID, partsJSON string
		var iso Isoform
		if err := rows.Scan(&geneID, &iso.ID, &partsJSON); err != nil {
			rows.Close()
			return fmt.Errorf("scan isoform: %w", err)
		}
		if err := json.Unmarshal([]byte(partsJSON), &iso.PartIDs); err != nil {
			rows.Close()
			return fmt.Errorf("decode parts of isoform %s: %w", iso.ID, err)
		}
		pos, ok := byID[geneID]
		if !ok {
			rows.Close()
			return fmt.Errorf("isoform %s references unknown gene %s", iso.ID, geneID)
		}
		gene := &idx.Records[pos].Gene
		gene.Isoforms = append(gene.Isoforms, iso)
	}
	return closeRows(rows)
}

func loadParts(ctx context.Context, db *sql.DB, idx *Index, byID map[string]int) error {
	rows, err := db.QueryContext(ctx, `SELECT gene_id, part_id, chrom, strand, start_pos, end_pos FROM exon_parts ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("query exon parts: %w", err)
	}
	for rows.Next() {
		var geneID string
		var part ExonPart
		if err := rows.Scan(&geneID, &part.ID, &part.Chrom, &part.Strand, &part.Start, &part.End); err != nil {
			rows.Close()
			return fmt.Errorf("scan exon part: %w", err)
		}
		pos, ok := byID[geneID]
		if !ok {
			rows.Close()
			return fmt.Errorf("exon part %s references unknown gene %s", part.ID, geneID)
		}
		gene := &idx.Records[pos].Gene
		gene.Parts = append(gene.Parts, part)
	}
	return closeRows(rows)
}

func loadTranscripts(ctx context.Context, db *sql.DB, idx *Index, byID map[string]int) error {
	rows, err := db.QueryContext(ctx, `SELECT gene_id, transcript_id FROM transcripts ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("query transcripts: %w", err)
	}
	for rows.Next() {
		var geneID, transcriptID string
		if err := rows.Scan(&geneID, &transcriptID); err != nil {
			rows.Close()
			return fmt.Errorf("scan transcript: %w", err)
		}
		pos, ok := byID[geneID]
		if !ok {
			rows.Close()
			return fmt.Errorf("transcript %s references unknown gene %s", transcriptID, geneID)
		}
		idx.Records[pos].Transcripts = append(idx.Records[pos].Transcripts, transcriptID)
	}
	return closeRows(rows)
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

// WriteIndex creates an artifact at path holding records in order. An
// existing file is replaced.
func WriteIndex(ctx context.Context, path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replace index: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	for _, rec := range records {
		if err := insertRecord(ctx, tx, rec); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, rec Record) error {
	g := rec.Gene
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO genes (gene_id, chrom, strand, start_pos, end_pos) VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Chrom, g.Strand, g.Start, g.End,
	); err != nil {
		return fmt.Errorf("insert gene %s: %w", g.ID, err)
	}
	for _, iso := range g.Isoforms {
		partIDs := iso.PartIDs
		if partIDs == nil {
			partIDs = []string{}
		}
		encoded, err := json.Marshal(partIDs)
		if err != nil {
			return fmt.Errorf("encode parts of isoform %s: %w", iso.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO isoforms (gene_id, isoform_id, part_ids_json) VALUES (?, ?, ?)`,
			g.ID, iso.ID, string(encoded),
		); err != nil {
			return fmt.Errorf("insert isoform %s: %w", iso.ID, err)
		}
	}
	for _, part := range g.Parts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO exon_parts (gene_id, part_id, chrom, strand, start_pos, end_pos) VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, part.ID, part.Chrom, part.Strand, part.Start, part.End,
		); err != nil {
			return fmt.Errorf("insert exon part %s: %w", part.ID, err)
		}
	}
	for _, transcript := range rec.Transcripts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transcripts (gene_id, transcript_id) VALUES (?, ?)`,
			g.ID, transcript,
		); err != nil {
			return fmt.Errorf("insert transcript %s: %w", transcript, err)
		}
	}
	return nil
}
