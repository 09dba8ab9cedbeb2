package keccak

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

// DefaultKeccakPool is a default pool
var DefaultKeccakPool Pool

// Pool is a pool of keccaks
type Pool struct {
	pool sync.Pool
}

// Get returns the keccak
func (p *Pool) Get() hash.Hash {
	v := p.pool.Get()
	if v == nil {
		return sha3.NewLegacyKeccak256()
	}

	keccakVal, ok := v.(hash.Hash)
	if !ok {
		return sha3.NewLegacyKeccak256()
	}

	return keccakVal
}

// Put releases the keccak
func (p *Pool) Put(k hash.Hash) {
	k.Reset()
	p.pool.Put(k)
}

// Keccak256 hashes a src with keccak-256 and appends the digest to dst
func Keccak256(dst, src []byte) []byte {
	h := DefaultKeccakPool.Get()
	h.Write(src)
	dst = h.Sum(dst)
	DefaultKeccakPool.Put(h)

	return dst
}
