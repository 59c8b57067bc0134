package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jurisgo/lexsearch/pkg/config"
	"github.com/jurisgo/lexsearch/pkg/postgres"
)

// LoadFile reads a JSON corpus snapshot (an array of chunks) and builds a
// Store from it.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
	}
	var chunks []Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}
	store, err := NewStore(chunks)
	if err != nil {
		return nil, fmt.Errorf("building corpus snapshot from %s: %w", path, err)
	}
	slog.Default().With("component", "corpus-loader").Info("corpus loaded",
		"backend", "json",
		"path", path,
		"chunks", store.Len(),
		"sources", len(store.Sources()),
	)
	return store, nil
}

// LoadPostgres reads every chunk from the ingestion pipeline's output table
// and builds a Store. The table is read once at startup; the service never
// queries it again.
func LoadPostgres(ctx context.Context, client *postgres.Client, cfg config.CorpusConfig) (*Store, error) {
	query := fmt.Sprintf(
		`SELECT id, text, source, book, author, category, page FROM %s ORDER BY id`,
		cfg.Table,
	)
	rows, err := client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying corpus table %s: %w", cfg.Table, err)
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.Text, &c.Source, &c.Book, &c.Author, &c.Category, &c.Page); err != nil {
			return nil, fmt.Errorf("scanning corpus row: %w", err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpus rows: %w", err)
	}

	store, err := NewStore(chunks)
	if err != nil {
		return nil, fmt.Errorf("building corpus snapshot from table %s: %w", cfg.Table, err)
	}
	slog.Default().With("component", "corpus-loader").Info("corpus loaded",
		"backend", "postgres",
		"table", cfg.Table,
		"chunks", store.Len(),
		"sources", len(store.Sources()),
	)
	return store, nil
}
