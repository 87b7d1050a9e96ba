// Copyright 2025 Campusworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package sqlite

import (
	"encoding/binary"
	"math"
)

// encodeVector packs an embedding into a little-endian float32 BLOB.
func encodeVector(vector []float32) []byte {
	bs := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(bs[i*4:], math.Float32bits(v))
	}
	return bs
}

// decodeVector unpacks a BLOB written by encodeVector. A blob whose length is
// not a multiple of 4 yields nil.
func decodeVector(bs []byte) []float32 {
	if len(bs) == 0 || len(bs)%4 != 0 {
		return nil
	}
	vector := make([]float32, len(bs)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(bs[i*4:]))
	}
	return vector
}

// cosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
