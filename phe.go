// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phe

import (
	"crypto/rand"

	"github.com/phe-go/phe/big"
	"github.com/phe-go/phe/elgamal"
	"github.com/phe-go/phe/paillier"
	"github.com/phe-go/phe/prime"
)

// GeneratePaillierKeyPair generates a Paillier key pair for the given
// parameter set, drawing the primes concurrently on all CPU cores from
// crypto/rand.
func GeneratePaillierKeyPair(params *SystemParameters) (*paillier.PrivateKey, *paillier.PublicKey, error) {
	stop := make(chan struct{})
	defer close(stop)
	ints, errs := prime.GenerateConcurrent(params.Ln/2, params.Certainty, stop)

	var p, q *big.Int
	for q == nil {
		select {
		case x := <-ints:
			if p == nil {
				p = x
			} else if x.Cmp(p) != 0 {
				q = x
			}
		case err := <-errs:
			return nil, nil, err
		}
	}

	sk, err := paillier.NewPrivateKey(p, q)
	if err != nil {
		return nil, nil, err
	}
	return sk, sk.PublicKey(), nil
}

// GenerateElGamalKeyPair generates an ElGamal key pair over the smallest
// prime at or after approx, using crypto/rand for the generator search and
// the secret exponent.
func GenerateElGamalKeyPair(approx *big.Int) (*elgamal.PrivateKey, *elgamal.PublicKey, error) {
	return elgamal.GenerateKeyPair(rand.Reader, approx)
}
