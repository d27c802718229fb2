// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phe

import "sort"

// SystemParameters describes a Paillier parameter set: the bit length of the
// modulus n and the certainty used when drawing the primes (the probability
// that a prime is in fact composite is at most 2^-Certainty).
type SystemParameters struct {
	Ln        int
	Certainty int
}

// DefaultSystemParameters holds per keylength the default parameters. The
// 512-bit set matches the historical default of the scheme; none of these
// sizes are meant for production use.
var DefaultSystemParameters = map[int]*SystemParameters{
	256:  {Ln: 256, Certainty: 40},
	512:  {Ln: 512, Certainty: 64},
	1024: {Ln: 1024, Certainty: 64},
	2048: {Ln: 2048, Certainty: 64},
}

// getAvailableKeyLengths returns the keylengths for the provided map of
// system parameters.
func getAvailableKeyLengths(sysParamsMap map[int]*SystemParameters) []int {
	lengths := make([]int, 0, len(sysParamsMap))
	for k := range sysParamsMap {
		lengths = append(lengths, k)
	}
	sort.Ints(lengths)
	return lengths
}

// DefaultKeyLengths is a slice of integers holding the keylengths for which
// system parameters are available.
var DefaultKeyLengths = getAvailableKeyLengths(DefaultSystemParameters)

// ParamSize computes the size of a parameter in bytes given the size in bits.
func ParamSize(a int) int {
	return (a + 8 - 1) / 8
}
