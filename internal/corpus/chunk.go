// Package corpus holds the immutable snapshot of legal document chunks the
// service searches over. The snapshot is built once at startup from the
// ingestion pipeline's output and is never mutated afterwards; a corpus
// refresh means building a whole new Store and swapping the reference.
package corpus

// Chunk is one retrievable passage of legal text with its metadata.
type Chunk struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Source   string `json:"source"`
	Book     string `json:"book"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Page     int    `json:"page"`
}

// SourceInfo aggregates the chunks belonging to a single source document.
type SourceInfo struct {
	Source        string `json:"source"`
	Book          string `json:"book"`
	Category      string `json:"category"`
	DocumentCount int    `json:"document_count"`
}
