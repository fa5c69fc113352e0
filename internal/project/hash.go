package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит хеш единицы компиляции: H( salt || content || req1 || req2 ... ).
// Порядок reqs должен быть детерминированным: порядок подключения require.
func Combine(salt string, content Digest, reqs ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte(salt))
	_, _ = h.Write(content[:])
	for _, d := range reqs {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
