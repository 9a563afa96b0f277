package embeddings

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ExtractEmbeddings pulls every raw vector out of an embedding response's
// data[].embedding list. A response without a data list yields an empty
// slice.
func ExtractEmbeddings(response gjson.Result) [][]float64 {
	data := response.Get("data").Array()
	vectors := make([][]float64, 0, len(data))
	for _, item := range data {
		values := item.Get("embedding").Array()
		vector := make([]float64, len(values))
		for i, v := range values {
			vector[i] = v.Float()
		}
		vectors = append(vectors, vector)
	}
	return vectors
}

// ExtractEmbedding returns the vector at the given position of the
// response's data list, failing when the index is out of range.
func ExtractEmbedding(response gjson.Result, index int) ([]float64, error) {
	vectors := ExtractEmbeddings(response)
	if index < 0 || index >= len(vectors) {
		return nil, fmt.Errorf("%w: embedding index %d out of range (%d embeddings)", ErrInvalidArgument, index, len(vectors))
	}
	return vectors[index], nil
}
