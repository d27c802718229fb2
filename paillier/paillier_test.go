package paillier

import (
	"encoding/json"
	"testing"

	"github.com/phe-go/phe/big"
	"github.com/phe-go/phe/cbor"
	"github.com/phe-go/phe/internal/common"

	"github.com/stretchr/testify/require"
)

func testRand(t *testing.T) *common.CPRNG {
	seed := [32]byte{0x70, 0x61, 0x69, 0x6c}
	r, err := common.NewCPRNG(&seed)
	require.NoError(t, err)
	return r
}

func testKey(t *testing.T) *PrivateKey {
	sk, _, err := GenerateKeyPair(testRand(t), 128, 40)
	require.NoError(t, err)
	return sk
}

// The worked example with p=3 and q=5: n=15, n^2=225, lambda=4, and the
// base check passes with L(2^4 mod 225) = 1.
func TestKnownValues(t *testing.T) {
	sk, err := NewPrivateKey(big.NewInt(3), big.NewInt(5))
	require.NoError(t, err)
	pk := sk.PublicKey()

	require.Zero(t, pk.N.Cmp(big.NewInt(15)))
	require.Zero(t, pk.NSquare.Cmp(big.NewInt(225)))
	require.Zero(t, sk.Lambda.Cmp(big.NewInt(4)))

	c1, err := pk.EncryptWithNonce(big.NewInt(2), big.NewInt(2))
	require.NoError(t, err)
	require.Zero(t, c1.Cmp(big.NewInt(122)))

	m, err := sk.Decrypt(c1)
	require.NoError(t, err)
	require.Zero(t, m.Cmp(big.NewInt(2)))

	c2, err := pk.EncryptWithNonce(big.NewInt(3), big.NewInt(4))
	require.NoError(t, err)
	require.Zero(t, c2.Cmp(big.NewInt(17)))

	sum := pk.Add(c1, c2)
	require.Zero(t, sum.Cmp(big.NewInt(49)))

	m, err = sk.Decrypt(sum)
	require.NoError(t, err)
	require.Zero(t, m.Cmp(big.NewInt(5)))
}

func TestRoundTrip(t *testing.T) {
	rnd := testRand(t)
	sk, pk, err := GenerateKeyPair(rnd, 128, 40)
	require.NoError(t, err)

	msgs := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(123456789),
		new(big.Int).Sub(pk.N, big.NewInt(1)),
	}
	for _, m := range msgs {
		c, err := pk.Encrypt(rnd, m)
		require.NoError(t, err)
		dec, err := sk.Decrypt(c)
		require.NoError(t, err)
		require.Zero(t, dec.Cmp(m), "round trip failed for m=%v", m)
	}
}

func TestAdditiveHomomorphism(t *testing.T) {
	rnd := testRand(t)
	sk := testKey(t)
	pk := sk.PublicKey()

	for i := 0; i < 5; i++ {
		m1, err := big.RandInt(rnd, pk.N)
		require.NoError(t, err)
		m2, err := big.RandInt(rnd, pk.N)
		require.NoError(t, err)

		c1, err := pk.Encrypt(rnd, m1)
		require.NoError(t, err)
		c2, err := pk.Encrypt(rnd, m2)
		require.NoError(t, err)

		dec, err := sk.Decrypt(pk.Add(c1, c2))
		require.NoError(t, err)

		want := new(big.Int).Add(m1, m2)
		want.Mod(want, pk.N)
		require.Zero(t, dec.Cmp(want))
	}
}

func TestScalarMultHomomorphism(t *testing.T) {
	rnd := testRand(t)
	sk := testKey(t)
	pk := sk.PublicKey()

	m := big.NewInt(1337)
	c, err := pk.Encrypt(rnd, m)
	require.NoError(t, err)

	for _, k := range []int64{0, 1, 2, 1000} {
		ck, err := pk.ScalarMult(c, big.NewInt(k))
		require.NoError(t, err)
		dec, err := sk.Decrypt(ck)
		require.NoError(t, err)

		want := new(big.Int).Mul(m, big.NewInt(k))
		want.Mod(want, pk.N)
		require.Zero(t, dec.Cmp(want), "scalar %d", k)
	}
}

func TestNonceCoprime(t *testing.T) {
	rnd := testRand(t)
	pk := testKey(t).PublicKey()

	gcd := new(big.Int)
	for i := 0; i < 10; i++ {
		r, err := pk.Nonce(rnd)
		require.NoError(t, err)
		require.True(t, r.Cmp(pk.N) < 0)
		gcd.GCD(nil, nil, pk.N, r)
		require.Zero(t, gcd.Cmp(big.NewInt(1)))
	}
}

func TestSamePrimesRejected(t *testing.T) {
	_, err := NewPrivateKey(big.NewInt(7), big.NewInt(7))
	require.ErrorIs(t, err, ErrSamePrimes)
}

func TestInexactDivision(t *testing.T) {
	_, err := l(big.NewInt(5), big.NewInt(3))
	require.ErrorIs(t, err, ErrInexactDivision)
}

func TestMarshaling(t *testing.T) {
	rnd := testRand(t)
	sk, pk, err := GenerateKeyPair(rnd, 128, 40)
	require.NoError(t, err)

	// Public key, JSON and CBOR
	bts, err := json.Marshal(pk)
	require.NoError(t, err)
	pk2 := new(PublicKey)
	require.NoError(t, json.Unmarshal(bts, pk2))
	require.Zero(t, pk.N.Cmp(pk2.N))
	require.Zero(t, pk.NSquare.Cmp(pk2.NSquare))

	bts, err = cbor.Marshal(pk)
	require.NoError(t, err)
	pk3 := new(PublicKey)
	require.NoError(t, cbor.Unmarshal(bts, pk3))
	require.Zero(t, pk.N.Cmp(pk3.N))

	// Private key: derived values must be recomputed on decode
	bts, err = json.Marshal(sk)
	require.NoError(t, err)
	sk2 := new(PrivateKey)
	require.NoError(t, json.Unmarshal(bts, sk2))
	require.Zero(t, sk.Lambda.Cmp(sk2.Lambda))

	c, err := pk2.Encrypt(rnd, big.NewInt(42))
	require.NoError(t, err)
	m, err := sk2.Decrypt(c)
	require.NoError(t, err)
	require.Zero(t, m.Cmp(big.NewInt(42)))
}

func TestFingerprint(t *testing.T) {
	_, pk, err := GenerateKeyPair(testRand(t), 128, 40)
	require.NoError(t, err)

	fp, err := pk.Fingerprint()
	require.NoError(t, err)
	require.NotEmpty(t, fp)

	bts, err := cbor.Marshal(pk)
	require.NoError(t, err)
	pk2 := new(PublicKey)
	require.NoError(t, cbor.Unmarshal(bts, pk2))

	fp2, err := pk2.Fingerprint()
	require.NoError(t, err)
	require.Equal(t, fp, fp2)
}
