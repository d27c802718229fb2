// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package phe implements two partially homomorphic public-key cryptosystems
// over arbitrary-precision integers: Paillier (additively homomorphic, see
// the paillier subpackage) and ElGamal (multiplicatively homomorphic, see the
// elgamal subpackage). This package provides default parameters and
// crypto/rand-backed convenience constructors; for now, see phe_test.go on
// how to use the library.
package phe
