package index

// Posting associates a term with one chunk and the term's frequency within
// that chunk.
type Posting struct {
	ChunkID   string
	Frequency int
}

// PostingList is a set of postings for one term, sorted by chunk ID.
type PostingList []Posting
