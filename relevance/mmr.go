package relevance

import (
	"math"
	"sort"

	"keyphrase/pkg/embedding"
)

// maximalMarginalRelevance picks up to topN indices, seeding with the phrase
// most similar to the document and then repeatedly taking the one maximizing
// (1-diversity)*sim(doc) - diversity*max sim(already picked).
func maximalMarginalRelevance(docSims []float64, vectors [][]float32, topN int, diversity float64) []int {
	if len(docSims) == 0 || topN <= 0 {
		return nil
	}

	first := 0
	for i, s := range docSims {
		if s > docSims[first] {
			first = i
		}
	}

	selected := []int{first}
	remaining := make([]int, 0, len(docSims)-1)
	for i := range docSims {
		if i != first {
			remaining = append(remaining, i)
		}
	}

	for len(selected) < topN && len(remaining) > 0 {
		best, bestScore := -1, math.Inf(-1)
		for j, c := range remaining {
			redundancy := math.Inf(-1)
			for _, s := range selected {
				redundancy = math.Max(redundancy, embedding.CosineSimilarity(vectors[c], vectors[s]))
			}
			score := (1-diversity)*docSims[c] - diversity*redundancy
			if score > bestScore {
				best, bestScore = j, score
			}
		}
		if best < 0 {
			break
		}
		selected = append(selected, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return selected
}

// topIndices returns the topN indices by descending similarity, ties in input
// order.
func topIndices(docSims []float64, topN int) []int {
	idx := make([]int, len(docSims))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return docSims[idx[a]] > docSims[idx[b]]
	})
	if topN < len(idx) {
		idx = idx[:topN]
	}
	return idx
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
