// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prime generates probable primes: random primes of a requested bit
// length, and the smallest probable prime at or after a starting value.
package prime

import (
	"io"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/phe-go/phe/big"
	"github.com/phe-go/phe/internal/common"
)

// Logger is used for Debug-level progress output of the searches.
var Logger = logrus.StandardLogger()

// nextRounds is the number of Miller-Rabin rounds used by Next.
const nextRounds = 64

// ErrCandidateBudget is returned by Next when no prime was found within the
// given number of candidates.
var ErrCandidateBudget = errors.New("prime: candidate budget exhausted")

// SmallPrimes is a list of small prime numbers that allows us to rapidly
// exclude some fraction of composite candidates when searching for a random
// prime. This list is truncated at the point where SmallPrimesProduct exceeds
// a uint64. It does not include two because we ensure that the candidates are
// odd by construction.
var SmallPrimes = []uint8{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
}

// SmallPrimesProduct is the product of the values in SmallPrimes and allows us
// to reduce a candidate prime by this number and then determine whether it's
// coprime with all the elements of SmallPrimes without further big.Int
// operations.
var SmallPrimesProduct = new(big.Int).SetUint64(16294579238595022365)

// Generate returns a random probable prime of exactly bitLength bits, drawn
// from the given randomness source. The returned value is composite with
// probability at most 2^-certainty.
// This code is an adaption of Go's own Prime function in rand/util.go
func Generate(rand io.Reader, bitLength, certainty int) (*big.Int, error) {
	if bitLength < 2 {
		return nil, errors.New("prime: bit length must be at least 2")
	}

	b := uint(bitLength % 8)
	if b == 0 {
		b = 8
	}

	bytes := make([]byte, (bitLength+7)/8)
	p := new(big.Int)
	bigMod := new(big.Int)

NextCandidate:
	for {
		if _, err := io.ReadFull(rand, bytes); err != nil {
			return nil, err
		}

		// Clear bits in the first byte to make sure the candidate has the requested size.
		bytes[0] &= uint8(int(1<<b) - 1)
		// Don't let the value be too small: set the two most significant bits, so
		// that the product of two generated primes has the full 2*bitLength bits.
		if b >= 2 {
			bytes[0] |= 3 << (b - 2)
		} else {
			bytes[0] |= 1
			if len(bytes) > 1 {
				bytes[1] |= 0x80
			}
		}
		// Make the value odd since an even number this large certainly isn't prime.
		bytes[len(bytes)-1] |= 1

		p.SetBytes(bytes)

		// Calculate the value mod the product of SmallPrimes. If it's a multiple of any of these
		// primes we discard this candidate. This check is much cheaper than ProbablyPrime() below.
		bigMod.Mod(p, SmallPrimesProduct)
		mod := bigMod.Uint64()
		for _, prime := range SmallPrimes {
			if mod%uint64(prime) == 0 && (bitLength > 6 || mod != uint64(prime)) {
				continue NextCandidate
			}
		}

		if p.ProbablyPrime(certainty) {
			return p, nil
		}
	}
}

// Next returns the smallest probable prime at or after start, testing
// candidates one at a time. maxCandidates bounds the number of candidates
// that are examined; zero or negative means no bound. The incremental scan
// makes this suitable only for small-to-moderate starting values.
func Next(start *big.Int, maxCandidates int) (*big.Int, error) {
	p := new(big.Int).Set(start)
	if p.Cmp(common.BigTWO) < 0 {
		p.Set(common.BigTWO)
	}

	for i := 0; maxCandidates <= 0 || i < maxCandidates; i++ {
		if p.ProbablyPrime(nextRounds) {
			Logger.WithFields(logrus.Fields{
				"prime":      p.String(),
				"candidates": i + 1,
			}).Debug("next-prime search finished")
			return p, nil
		}
		p.Add(p, common.BigONE)
	}

	return nil, ErrCandidateBudget
}
