package paillier

import (
	"io"

	"github.com/go-errors/errors"

	"github.com/phe-go/phe/big"
	"github.com/phe-go/phe/internal/common"
)

// ErrNoNonce is returned when no invertible nonce could be drawn.
var ErrNoNonce = errors.New("paillier: failed to draw an invertible nonce")

// Nonce draws a random value in [0, n) that is coprime to n, giving up after
// 100 attempts. A draw sharing a factor with n would make the resulting
// ciphertext undecryptable.
func (pk *PublicKey) Nonce(rand io.Reader) (*big.Int, error) {
	gcd := new(big.Int)
	for i := 0; i < 100; i++ {
		r, err := big.RandInt(rand, pk.N)
		if err != nil {
			return nil, err
		}
		gcd.GCD(nil, nil, pk.N, r)
		if gcd.Cmp(common.BigONE) == 0 {
			return r, nil
		}
	}
	return nil, ErrNoNonce
}

// Encrypt draws a nonce from the given randomness source and delegates to
// EncryptWithNonce.
func (pk *PublicKey) Encrypt(rand io.Reader, m *big.Int) (*big.Int, error) {
	r, err := pk.Nonce(rand)
	if err != nil {
		return nil, err
	}
	return pk.EncryptWithNonce(m, r)
}

// EncryptWithNonce computes the ciphertext
//
//	c = g^m * r^n mod n^2
//
// The plaintext m should lie in [0, n); this is not range-checked, and an
// out-of-range m decrypts to m mod n.
func (pk *PublicKey) EncryptWithNonce(m, r *big.Int) (*big.Int, error) {
	c, err := pk.expBase(m)
	if err != nil {
		return nil, err
	}

	tmp := new(big.Int).Exp(r, pk.N, pk.NSquare)
	c.Mul(c, tmp)
	c.Mod(c, pk.NSquare)
	return c, nil
}

// expBase computes g^m mod n^2, through the precomputed table when the
// exponent is in the expected plaintext range.
func (pk *PublicKey) expBase(m *big.Int) (*big.Int, error) {
	if m.Sign() >= 0 && m.Cmp(pk.N) < 0 {
		res := new(big.Int)
		pk.gTable.Exp(res.Go(), m.Go())
		return res, nil
	}
	return common.ModPow(pk.G, m, pk.NSquare)
}

// Add returns the ciphertext of the sum of the two underlying plaintexts:
// c1*c2 mod n^2.
func (pk *PublicKey) Add(c1, c2 *big.Int) *big.Int {
	res := new(big.Int).Mul(c1, c2)
	return res.Mod(res, pk.NSquare)
}

// ScalarMult returns the ciphertext of k times the underlying plaintext:
// c^k mod n^2.
func (pk *PublicKey) ScalarMult(c, k *big.Int) (*big.Int, error) {
	return common.ModPow(c, k, pk.NSquare)
}

// Decrypt recovers the plaintext as
//
//	m = L(c^lambda mod n^2) * mu mod n
//
// with mu precomputed during key construction. An inexact division inside L
// indicates a ciphertext that does not belong to this key.
func (sk *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	pk := sk.pk
	u := new(big.Int).Exp(c, sk.Lambda, pk.NSquare)
	lu, err := l(u, pk.N)
	if err != nil {
		return nil, err
	}
	lu.Mul(lu, sk.mu)
	return lu.Mod(lu, pk.N), nil
}

// l computes L(x) = (x-1)/n and requires the division to be exact.
func l(x, n *big.Int) (*big.Int, error) {
	num := new(big.Int).Sub(x, common.BigONE)
	quo, rem := new(big.Int).QuoRem(num, n, new(big.Int))
	if rem.Sign() != 0 {
		return nil, ErrInexactDivision
	}
	return quo, nil
}
