package embeddings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0, 0}, []float64{1, 0, 0}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"scaled identical", []float64{2, 0}, []float64{5, 0}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestCosineSimilarity_Errors(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CosineSimilarity([]float64{0, 0}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CosineSimilarity([]float64{1, 2}, []float64{0, 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEuclideanDistance(t *testing.T) {
	d, err := EuclideanDistance([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-12)

	d, err = EuclideanDistance([]float64{1, 1}, []float64{1, 1})
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = EuclideanDistance([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBatchCosineSimilarity(t *testing.T) {
	target := []float64{1, 0}
	candidates := [][]float64{{0, 1}, {1, 0}, {1, 1}}

	ranked, err := BatchCosineSimilarity(target, candidates)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	// descending by similarity
	assert.Equal(t, 1, ranked[0].Index)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-12)
	assert.Equal(t, 2, ranked[1].Index)
	assert.Equal(t, 0, ranked[2].Index)
	assert.InDelta(t, 0.0, ranked[2].Score, 1e-12)
}

func TestBatchCosineSimilarity_TiesKeepInputOrder(t *testing.T) {
	target := []float64{1, 0}
	// candidates 0 and 2 score identically
	candidates := [][]float64{{2, 0}, {0, 1}, {3, 0}}

	ranked, err := BatchCosineSimilarity(target, candidates)
	require.NoError(t, err)
	assert.Equal(t, 0, ranked[0].Index)
	assert.Equal(t, 2, ranked[1].Index)
	assert.Equal(t, 1, ranked[2].Index)
}

func TestBatchEuclideanDistance(t *testing.T) {
	ranked, err := BatchEuclideanDistance([]float64{0, 0}, [][]float64{{3, 4}, {1, 0}})
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// ascending by distance
	assert.Equal(t, Ranked{Index: 1, Score: 1.0}, ranked[0])
	assert.Equal(t, Ranked{Index: 0, Score: 5.0}, ranked[1])
}

func TestBatch_InvalidCandidateAborts(t *testing.T) {
	_, err := BatchCosineSimilarity([]float64{1, 0}, [][]float64{{1, 0}, {1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = BatchEuclideanDistance([]float64{1, 0}, [][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBatch_EmptyCandidates(t *testing.T) {
	ranked, err := BatchCosineSimilarity([]float64{1, 0}, nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankBySimilarity(t *testing.T) {
	target := []float64{1, 0}
	candidates := [][]float64{{0, 1}, {1, 0}, {1, 1}, {-1, 0}}

	ranked, err := RankBySimilarity(target, candidates, "", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 4, "empty metric defaults to cosine")
	assert.Equal(t, 1, ranked[0].Index)

	topTwo, err := RankBySimilarity(target, candidates, MetricCosine, 2)
	require.NoError(t, err)
	require.Len(t, topTwo, 2, "top-k truncates after sorting")
	assert.Equal(t, ranked[:2], topTwo)

	euclidean, err := RankBySimilarity([]float64{0, 0}, [][]float64{{3, 4}, {1, 0}}, MetricEuclidean, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, euclidean[0].Index)

	_, err = RankBySimilarity(target, candidates, Metric("manhattan"), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRankBySimilarity_TopKLargerThanList(t *testing.T) {
	ranked, err := RankBySimilarity([]float64{1}, [][]float64{{1}, {2}}, MetricCosine, 10)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestMostAndLeastSimilar(t *testing.T) {
	target := []float64{1, 0}
	candidates := [][]float64{{1, 1}, {1, 0}, {-1, 0}}

	most, err := MostSimilar(target, candidates)
	require.NoError(t, err)
	require.NotNil(t, most)
	assert.Equal(t, 1, most.Index)

	least, err := LeastSimilar(target, candidates)
	require.NoError(t, err)
	require.NotNil(t, least)
	assert.Equal(t, 2, least.Index)
}

func TestMostSimilar_EmptyList(t *testing.T) {
	most, err := MostSimilar([]float64{1, 0}, nil)
	require.NoError(t, err)
	assert.Nil(t, most, "an empty candidate list is absence, not an error")

	least, err := LeastSimilar([]float64{1, 0}, nil)
	require.NoError(t, err)
	assert.Nil(t, least)
}
