package utils

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ShuffledIndexes(n int) []int
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// ShuffledIndexes returns 0..n-1 in uniform random order (Fisher-Yates with
// crypto/rand). Used for sampling catalog phrases without replacement.
func (u *utils) ShuffledIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	for i := n - 1; i > 0; i-- {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			continue
		}
		j := int(jBig.Int64())
		idx[i], idx[j] = idx[j], idx[i]
	}

	return idx
}
