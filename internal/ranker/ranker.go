package ranker

import (
	"sort"

	"docsearch/internal/domain"
	"docsearch/internal/embedding/tfidf"
)

// Rank scores query against every row of matrix using cosine similarity
// (rows and query are L2-normalized, so this is the dot product).
// Only documents with a positive score are returned, highest first;
// equal scores keep corpus order.
func Rank(query tfidf.Vector, matrix tfidf.Matrix, docs []domain.Document) []domain.SearchResult {
	results := make([]domain.SearchResult, 0)
	if len(query) == 0 {
		return results
	}
	n := len(matrix)
	if len(docs) < n {
		n = len(docs)
	}
	for i := 0; i < n; i++ {
		score := query.Dot(matrix[i])
		if score > 0 {
			results = append(results, domain.SearchResult{Document: docs[i], Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// TopK truncates results to at most k entries. k <= 0 keeps everything.
func TopK(results []domain.SearchResult, k int) []domain.SearchResult {
	if k <= 0 || k >= len(results) {
		return results
	}
	return results[:k]
}
