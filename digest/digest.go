// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - content hash of a key/value element
//
// the digest of an element is hash(key ++ value) rendered as lower
// case hexadecimal
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/dbhasher/fault"
)

// supported algorithms
const (
	SHA256   = "sha256"
	SHA3     = "sha3-256"
	BLAKE3   = "blake3"
	XXHash64 = "xxhash64"
)

// Default - the algorithm used when none is configured
const Default = SHA256

// Hasher - compute element digests
//
// safe for concurrent use
type Hasher interface {
	Algorithm() string
	Sum(key []byte, value []byte) string
}

type pooledHasher struct {
	algorithm string
	pool      sync.Pool
}

var constructors = map[string]func() hash.Hash{
	SHA256:   sha256.New,
	SHA3:     sha3.New256,
	BLAKE3:   func() hash.Hash { return blake3.New() },
	XXHash64: func() hash.Hash { return xxhash.New() },
}

// New - create a hasher for the named algorithm
func New(algorithm string) (Hasher, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	if "" == algorithm {
		algorithm = Default
	}

	constructor, ok := constructors[algorithm]
	if !ok {
		return nil, fault.ErrInvalidAlgorithm
	}

	h := &pooledHasher{
		algorithm: algorithm,
	}
	h.pool.New = func() interface{} {
		return constructor()
	}
	return h, nil
}

// Algorithms - names of all supported algorithms
func Algorithms() []string {
	return []string{SHA256, SHA3, BLAKE3, XXHash64}
}

func (h *pooledHasher) Algorithm() string {
	return h.algorithm
}

// Sum - hex digest of key ++ value
func (h *pooledHasher) Sum(key []byte, value []byte) string {
	state := h.pool.Get().(hash.Hash)
	state.Reset()

	state.Write(key)
	state.Write(value)
	sum := hex.EncodeToString(state.Sum(nil))

	h.pool.Put(state)
	return sum
}
