package utils

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
)

const embeddingDim = 256

// EmbedText maps text to a fixed-size vector by hashing tokens into
// buckets. Crude next to a real embedding model, but it costs nothing,
// needs no API key, and keeps nearby catalog entries nearby in vector
// space well enough for suggestion ranking.
func EmbedText(text string) pgvector.Vector {
	vec := make([]float32, embeddingDim)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,!?;:'\"()")
		if len(token) < 2 {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%embeddingDim] += 1
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return pgvector.NewVector(vec)
}
