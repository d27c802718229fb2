// Package elgamal implements the ElGamal cryptosystem over the multiplicative
// group of integers modulo a prime. It is multiplicatively homomorphic: the
// componentwise product of two ciphertexts decrypts to the product of the
// plaintexts.
//
// The generator search computes multiplicative orders by exhaustive
// enumeration and is therefore only tractable for small moduli (low tens of
// bits). This matches the intended demonstration scale; the per-candidate
// order walk is capped at p-1 steps so that a malformed modulus terminates.
package elgamal

import (
	"io"

	"github.com/go-errors/errors"
	"github.com/multiformats/go-multihash"
	"github.com/sirupsen/logrus"

	"github.com/phe-go/phe/big"
	"github.com/phe-go/phe/cbor"
	"github.com/phe-go/phe/internal/common"
	"github.com/phe-go/phe/prime"
)

// Logger is used for Debug-level output of the generator search.
var Logger = logrus.StandardLogger()

// ErrNoGenerator is returned when the generator search exhausts its attempts
// without finding a primitive root.
var ErrNoGenerator = errors.New("elgamal: no generator found")

const (
	generatorAttempts = 10
	zeroRedraws       = 10
)

type (
	// PublicKey holds the prime modulus p, a generator g of the
	// multiplicative group mod p, and b = g^a mod p.
	PublicKey struct {
		P *big.Int `json:"p"`
		G *big.Int `json:"g"`
		B *big.Int `json:"b"`
	}

	// PrivateKey additionally holds the secret exponent a.
	PrivateKey struct {
		PublicKey
		A *big.Int `json:"a"`
	}

	// Ciphertext is the pair (c1, c2) = (g^k, b^k * m) mod p.
	Ciphertext struct {
		C1 *big.Int `json:"c1"`
		C2 *big.Int `json:"c2"`
	}
)

// GenerateKeyPair derives a key pair from the smallest prime at or after
// approx. It fails with ErrNoGenerator when no primitive root is found
// within the attempt caps.
func GenerateKeyPair(rand io.Reader, approx *big.Int) (*PrivateKey, *PublicKey, error) {
	p, err := prime.Next(approx, 0)
	if err != nil {
		return nil, nil, err
	}

	g, err := FindGenerator(rand, p)
	if err != nil {
		return nil, nil, err
	}

	a, err := common.RandomBigInt(rand, uint(p.BitLen()-1))
	if err != nil {
		return nil, nil, err
	}
	b := new(big.Int).Exp(g, a, p)

	sk := &PrivateKey{
		PublicKey: PublicKey{P: p, G: g, B: b},
		A:         a,
	}
	return sk, &sk.PublicKey, nil
}

// FindGenerator searches for a primitive root modulo p: a random candidate
// is accepted when its multiplicative order is exactly p-1. Up to 10
// candidates are tried, each drawn in [0, 2^(bitlen(p)-1)) with at most 10
// redraws when zero comes up. The order is found by multiplying the
// candidate into an accumulator one exponent at a time, so the cost per
// candidate is proportional to the order itself.
func FindGenerator(rand io.Reader, p *big.Int) (*big.Int, error) {
	if p.Cmp(common.BigTWO) < 0 {
		return nil, ErrNoGenerator
	}
	bits := uint(p.BitLen() - 1)
	pMinusOne := new(big.Int).Sub(p, common.BigONE)

	for attempt := 0; attempt < generatorAttempts; attempt++ {
		cand, err := common.RandomBigInt(rand, bits)
		if err != nil {
			return nil, err
		}
		for redraw := 0; cand.Sign() == 0; redraw++ {
			if redraw == zeroRedraws {
				return nil, ErrNoGenerator
			}
			if cand, err = common.RandomBigInt(rand, bits); err != nil {
				return nil, err
			}
		}

		// Walk the powers of the candidate until we hit 1; the first
		// exponent doing so is the order. The walk never needs more than
		// p-1 steps for any element that has an order at all, so cap it
		// there to terminate on malformed moduli.
		next := new(big.Int).Mod(cand, p)
		exp := big.NewInt(1)
		for next.Cmp(common.BigONE) != 0 && exp.Cmp(pMinusOne) < 0 {
			exp.Add(exp, common.BigONE)
			next.Mul(next, cand)
			next.Mod(next, p)
		}

		if next.Cmp(common.BigONE) == 0 && exp.Cmp(pMinusOne) == 0 {
			Logger.WithFields(logrus.Fields{
				"generator": cand.String(),
				"attempts":  attempt + 1,
			}).Debug("elgamal: generator found")
			return cand, nil
		}
	}

	return nil, ErrNoGenerator
}

// Encrypt draws an ephemeral k in [0, 2^(bitlen(p)-1)) and delegates to
// EncryptWithNonce.
func (pk *PublicKey) Encrypt(rand io.Reader, m *big.Int) (*Ciphertext, error) {
	k, err := common.RandomBigInt(rand, uint(pk.P.BitLen()-1))
	if err != nil {
		return nil, err
	}
	return pk.EncryptWithNonce(m, k), nil
}

// EncryptWithNonce computes the ciphertext
//
//	(c1, c2) = (g^k mod p, b^k * m mod p)
//
// The plaintext m should lie in [1, p); this is not range-checked, and an
// out-of-range m decrypts to m mod p.
func (pk *PublicKey) EncryptWithNonce(m, k *big.Int) *Ciphertext {
	c1 := new(big.Int).Exp(pk.G, k, pk.P)
	c2 := new(big.Int).Exp(pk.B, k, pk.P)
	c2.Mul(c2, m)
	c2.Mod(c2, pk.P)
	return &Ciphertext{C1: c1, C2: c2}
}

// Mul returns the ciphertext of the product of the two underlying
// plaintexts, multiplying componentwise mod p.
func (pk *PublicKey) Mul(ct1, ct2 *Ciphertext) *Ciphertext {
	c1 := new(big.Int).Mul(ct1.C1, ct2.C1)
	c1.Mod(c1, pk.P)
	c2 := new(big.Int).Mul(ct1.C2, ct2.C2)
	c2.Mod(c2, pk.P)
	return &Ciphertext{C1: c1, C2: c2}
}

// Decrypt recovers the plaintext as
//
//	m = c2 * (c1^a)^-1 mod p
//
// A non-invertible c1^a indicates a ciphertext that does not belong to this
// key.
func (sk *PrivateKey) Decrypt(ct *Ciphertext) (*big.Int, error) {
	s := new(big.Int).Exp(ct.C1, sk.A, sk.P)
	sInv, ok := common.ModInverse(s, sk.P)
	if !ok {
		return nil, common.ErrNoModInverse
	}
	m := new(big.Int).Mul(ct.C2, sInv)
	return m.Mod(m, sk.P), nil
}

// Fingerprint returns the base58 SHA2-256 multihash of the CBOR-serialized
// public key.
func (pk *PublicKey) Fingerprint() (string, error) {
	data, err := cbor.Marshal(pk)
	if err != nil {
		return "", err
	}
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	return mh.B58String(), nil
}
