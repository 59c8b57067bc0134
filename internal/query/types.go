package query

// SearchRequest carries one validated-on-entry search call.
type SearchRequest struct {
	Query      string `json:"query"`
	Limit      int    `json:"limit"`
	BookFilter string `json:"book_filter,omitempty"`
}

// Metadata describes where a result passage came from.
type Metadata struct {
	Source   string `json:"source"`
	Book     string `json:"book"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Page     int    `json:"page"`
}

// Result is one ranked passage.
type Result struct {
	Content      string   `json:"content"`
	Metadata     Metadata `json:"metadata"`
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matched_terms,omitempty"`
}

// Response is the ordered result list plus the distinct sources among the
// returned results.
type Response struct {
	Query        string   `json:"query"`
	Results      []Result `json:"results"`
	TotalResults int      `json:"total_results"`
	Sources      []string `json:"sources"`
}

// Stats reports aggregate corpus counts.
type Stats struct {
	TotalDocuments int      `json:"total_documents"`
	TotalSources   int      `json:"total_sources"`
	Categories     []string `json:"categories"`
	LastUpdated    string   `json:"last_updated"`
}
