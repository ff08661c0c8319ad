package chunking

// ChunkingClient splits a document into pieces that fit the embedding model
// window.
type ChunkingClient interface {
	ChunkText(text string) ([]string, error)
}
