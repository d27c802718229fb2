// Package paillier implements the Paillier cryptosystem, an additively
// homomorphic public-key scheme: the product of two ciphertexts decrypts to
// the sum of the plaintexts, and a ciphertext raised to an integer decrypts
// to the scaled plaintext.
package paillier

import (
	"encoding/json"
	"io"

	"github.com/bwesterb/go-exptable"
	"github.com/go-errors/errors"
	"github.com/multiformats/go-multihash"
	"github.com/sirupsen/logrus"

	"github.com/phe-go/phe/big"
	"github.com/phe-go/phe/cbor"
	"github.com/phe-go/phe/internal/common"
	"github.com/phe-go/phe/prime"
)

// Logger is used for Debug-level output of key generation.
var Logger = logrus.StandardLogger()

var (
	// ErrInvalidBase is returned when the base g fails its validity check,
	// i.e. gcd(L(g^lambda mod n^2), n) != 1. The caller may retry key
	// generation with freshly drawn primes.
	ErrInvalidBase = errors.New("paillier: base fails validity check")

	// ErrInexactDivision is returned when n does not divide x-1 in L(x).
	// For well-formed keys this cannot happen; it indicates corrupted key
	// material or a ciphertext from a different key.
	ErrInexactDivision = errors.New("paillier: inexact division in L")

	ErrSamePrimes = errors.New("paillier: p and q must be distinct")
)

// DefaultBase is the fixed base g used by generated keys.
var DefaultBase = big.NewInt(2)

type (
	// PublicKey holds the public modulus and base. NSquare and the
	// exponentiation table for the base are derived and not serialized.
	PublicKey struct {
		N *big.Int `json:"n"`
		G *big.Int `json:"g"`

		NSquare *big.Int `json:"-" cbor:"-"`
		gTable  exptable.Table
	}

	// PrivateKey holds the primes and the private exponent
	// lambda = lcm(p-1, q-1). Only the primes are serialized; everything
	// else is rederived on unmarshaling.
	PrivateKey struct {
		P *big.Int `json:"p"`
		Q *big.Int `json:"q"`

		Lambda *big.Int `json:"-" cbor:"-"`
		mu     *big.Int // (L(g^lambda mod n^2))^-1 mod n
		pk     *PublicKey
	}
)

// NewPublicKey constructs a public key from the modulus and base, computing
// the derived values.
func NewPublicKey(n, g *big.Int) (*PublicKey, error) {
	if n == nil || g == nil || n.Sign() <= 0 || g.Sign() <= 0 {
		return nil, errors.New("paillier: modulus and base must be positive")
	}
	pk := &PublicKey{
		N:       n,
		G:       g,
		NSquare: new(big.Int).Mul(n, n),
	}
	pk.gTable.Compute(g.Go(), pk.NSquare.Go(), 7)
	return pk, nil
}

// NewPrivateKey constructs a private key from two distinct primes, deriving
// the public key and the private exponent and validating the base. The
// validity check requires gcd(L(g^lambda mod n^2), n) = 1; if it fails the
// key is rejected with ErrInvalidBase and no retry is attempted.
func NewPrivateKey(p, q *big.Int) (*PrivateKey, error) {
	if p == nil || q == nil {
		return nil, errors.New("paillier: both primes must be present")
	}
	if p.Cmp(q) == 0 {
		return nil, ErrSamePrimes
	}

	n := new(big.Int).Mul(p, q)
	pk, err := NewPublicKey(n, DefaultBase)
	if err != nil {
		return nil, err
	}

	pMinusOne := new(big.Int).Sub(p, common.BigONE)
	qMinusOne := new(big.Int).Sub(q, common.BigONE)
	lambda := common.Lcm(pMinusOne, qMinusOne)

	u := new(big.Int).Exp(pk.G, lambda, pk.NSquare)
	lu, err := l(u, n)
	if err != nil {
		return nil, err
	}
	mu, ok := common.ModInverse(lu, n)
	if !ok {
		return nil, ErrInvalidBase
	}

	return &PrivateKey{
		P:      p,
		Q:      q,
		Lambda: lambda,
		mu:     mu,
		pk:     pk,
	}, nil
}

// GenerateKeyPair draws two distinct primes of bitLength/2 bits each from the
// given randomness source and derives a key pair from them. The primes are
// composite with probability at most 2^-certainty.
func GenerateKeyPair(rand io.Reader, bitLength, certainty int) (*PrivateKey, *PublicKey, error) {
	p, err := prime.Generate(rand, bitLength/2, certainty)
	if err != nil {
		return nil, nil, err
	}
	q, err := prime.Generate(rand, bitLength/2, certainty)
	if err != nil {
		return nil, nil, err
	}
	for q.Cmp(p) == 0 {
		if q, err = prime.Generate(rand, bitLength/2, certainty); err != nil {
			return nil, nil, err
		}
	}

	Logger.WithFields(logrus.Fields{
		"pBits": p.BitLen(),
		"qBits": q.BitLen(),
	}).Debug("paillier: primes drawn")

	sk, err := NewPrivateKey(p, q)
	if err != nil {
		return nil, nil, err
	}
	return sk, sk.PublicKey(), nil
}

// PublicKey returns the public part of the key.
func (sk *PrivateKey) PublicKey() *PublicKey {
	return sk.pk
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

// UnmarshalJSON decodes the serialized modulus and base and recomputes the
// derived values.
func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var tmp struct {
		N *big.Int `json:"n"`
		G *big.Int `json:"g"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	decoded, err := NewPublicKey(tmp.N, tmp.G)
	if err != nil {
		return err
	}
	*pk = *decoded
	return nil
}

// UnmarshalCBOR decodes the serialized modulus and base and recomputes the
// derived values.
func (pk *PublicKey) UnmarshalCBOR(data []byte) error {
	var tmp struct {
		N *big.Int `json:"n"`
		G *big.Int `json:"g"`
	}
	if err := cbor.Unmarshal(data, &tmp); err != nil {
		return err
	}
	decoded, err := NewPublicKey(tmp.N, tmp.G)
	if err != nil {
		return err
	}
	*pk = *decoded
	return nil
}

// UnmarshalJSON decodes the serialized primes and rederives the rest of the
// key, including the base validity check.
func (sk *PrivateKey) UnmarshalJSON(data []byte) error {
	var tmp struct {
		P *big.Int `json:"p"`
		Q *big.Int `json:"q"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	decoded, err := NewPrivateKey(tmp.P, tmp.Q)
	if err != nil {
		return err
	}
	*sk = *decoded
	return nil
}

// UnmarshalCBOR decodes the serialized primes and rederives the rest of the
// key, including the base validity check.
func (sk *PrivateKey) UnmarshalCBOR(data []byte) error {
	var tmp struct {
		P *big.Int `json:"p"`
		Q *big.Int `json:"q"`
	}
	if err := cbor.Unmarshal(data, &tmp); err != nil {
		return err
	}
	decoded, err := NewPrivateKey(tmp.P, tmp.Q)
	if err != nil {
		return err
	}
	*sk = *decoded
	return nil
}
