package dochive

import (
	"math"
	"sort"
)

// ScoredDocument pairs a document with its similarity to a query
// embedding.
type ScoredDocument struct {
	Doc        *Document `json:"doc"`
	Similarity float64   `json:"similarity"`
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// in [-1, 1]. Empty, length-mismatched, or zero-magnitude inputs return
// 0.0 as a safe "no similarity" sentinel.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0.0
	}

	return dot / (magA * magB)
}

// RankBySimilarity scores documents against a query embedding and
// returns the top limit matches in descending similarity order.
// Documents without an embedding and similarities at or below zero are
// excluded. An empty query embedding yields no results.
func RankBySimilarity(queryEmbedding []float32, docs []*Document, limit int) []ScoredDocument {
	if len(queryEmbedding) == 0 {
		return nil
	}

	var scored []ScoredDocument
	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			continue
		}
		sim := CosineSimilarity(queryEmbedding, doc.Embedding)
		if sim > 0 {
			scored = append(scored, ScoredDocument{Doc: doc, Similarity: sim})
		}
	}

	// Stable so ties preserve document order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
