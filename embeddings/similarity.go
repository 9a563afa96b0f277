package embeddings

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidArgument is wrapped by every precondition failure in this
// package: mismatched vector dimensions, zero-norm cosine input, unknown
// metric.
var ErrInvalidArgument = errors.New("invalid argument")

// Metric selects the distance function used by RankBySimilarity.
type Metric string

const (
	MetricCosine    Metric = "cosine"
	MetricEuclidean Metric = "euclidean"
)

// Ranked pairs a candidate's position in the input list with its score
// under the chosen metric.
type Ranked struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// CosineSimilarity returns dot(a,b) / (|a|·|b|), in [-1, 1]. It fails when
// the vectors differ in length or when either has zero norm, since a zero
// vector has no direction to compare.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: embedding dimensions differ (%d vs %d)", ErrInvalidArgument, len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("%w: cosine similarity is undefined for zero vectors", ErrInvalidArgument)
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// EuclideanDistance returns the L2 distance between a and b. It fails when
// the vectors differ in length.
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: embedding dimensions differ (%d vs %d)", ErrInvalidArgument, len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// BatchCosineSimilarity scores every candidate against target and returns
// the results sorted by similarity descending. Equal scores keep input
// order. The first invalid candidate aborts the batch.
func BatchCosineSimilarity(target []float64, candidates [][]float64) ([]Ranked, error) {
	ranked := make([]Ranked, len(candidates))
	for i, candidate := range candidates {
		score, err := CosineSimilarity(target, candidate)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		ranked[i] = Ranked{Index: i, Score: score}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// BatchEuclideanDistance scores every candidate against target and returns
// the results sorted by distance ascending. Equal distances keep input
// order.
func BatchEuclideanDistance(target []float64, candidates [][]float64) ([]Ranked, error) {
	ranked := make([]Ranked, len(candidates))
	for i, candidate := range candidates {
		distance, err := EuclideanDistance(target, candidate)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		ranked[i] = Ranked{Index: i, Score: distance}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	return ranked, nil
}

// RankBySimilarity ranks candidates against target under the given metric,
// cosine when metric is empty. topK > 0 truncates the result to the first
// topK entries after sorting; topK <= 0 returns the full ranking.
func RankBySimilarity(target []float64, candidates [][]float64, metric Metric, topK int) ([]Ranked, error) {
	var (
		ranked []Ranked
		err    error
	)
	switch metric {
	case MetricCosine, "":
		ranked, err = BatchCosineSimilarity(target, candidates)
	case MetricEuclidean:
		ranked, err = BatchEuclideanDistance(target, candidates)
	default:
		return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidArgument, metric)
	}
	if err != nil {
		return nil, err
	}
	if topK > 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked, nil
}

// MostSimilar returns the best-ranked candidate under cosine similarity, or
// nil for an empty candidate list.
func MostSimilar(target []float64, candidates [][]float64) (*Ranked, error) {
	ranked, err := RankBySimilarity(target, candidates, MetricCosine, 0)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}
	first := ranked[0]
	return &first, nil
}

// LeastSimilar returns the worst-ranked candidate under cosine similarity,
// or nil for an empty candidate list.
func LeastSimilar(target []float64, candidates [][]float64) (*Ranked, error) {
	ranked, err := RankBySimilarity(target, candidates, MetricCosine, 0)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}
	last := ranked[len(ranked)-1]
	return &last, nil
}
