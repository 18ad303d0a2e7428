package logic

import (
	"sort"

	"github.com/google/uuid"

	"github.com/abhinay-x/studymate-sub001/models"
)

// ContextRetriever selects chunks relevant to a question from a set of
// documents. The current matching strategy is a coarse substring filter done
// store-side; the contract here (bounded size, deterministic order, empty
// input returns empty) is what a vector-search backend must also keep.
type ContextRetriever struct {
	docs DocumentStore
}

func NewContextRetriever(docs DocumentStore) *ContextRetriever {
	return &ContextRetriever{docs: docs}
}

// Retrieve returns up to limit chunks from the given documents, ordered by
// descending confidence with chunk index as the tiebreak.
func (r *ContextRetriever) Retrieve(documentIDs []uuid.UUID, question string, limit int) ([]models.DocumentChunk, error) {
	if len(documentIDs) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	chunks, err := r.docs.SearchChunks(documentIDs, question, limit)
	if err != nil {
		return nil, err
	}

	// The ranking invariant is owned here, not by the store backend.
	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].Confidence != chunks[j].Confidence {
			return chunks[i].Confidence > chunks[j].Confidence
		}
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})

	if len(chunks) > limit {
		chunks = chunks[:limit]
	}
	return chunks, nil
}
