package elgamal

import (
	"encoding/json"
	"testing"

	"github.com/phe-go/phe/big"
	"github.com/phe-go/phe/cbor"
	"github.com/phe-go/phe/internal/common"

	"github.com/stretchr/testify/require"
)

func testRand(t *testing.T) *common.CPRNG {
	seed := [32]byte{0x65, 0x6c, 0x67}
	r, err := common.NewCPRNG(&seed)
	require.NoError(t, err)
	return r
}

// The worked example with p=11, g=2 (order 10), a=3: b=8, and encrypting
// m=7 with k=4 gives (5, 6).
func TestKnownValues(t *testing.T) {
	sk := &PrivateKey{
		PublicKey: PublicKey{
			P: big.NewInt(11),
			G: big.NewInt(2),
			B: big.NewInt(8),
		},
		A: big.NewInt(3),
	}

	ct := sk.EncryptWithNonce(big.NewInt(7), big.NewInt(4))
	require.Zero(t, ct.C1.Cmp(big.NewInt(5)))
	require.Zero(t, ct.C2.Cmp(big.NewInt(6)))

	m, err := sk.Decrypt(ct)
	require.NoError(t, err)
	require.Zero(t, m.Cmp(big.NewInt(7)))
}

func TestGenerateKeyPair(t *testing.T) {
	rnd := testRand(t)
	sk, pk, err := GenerateKeyPair(rnd, big.NewInt(5000))
	require.NoError(t, err)

	require.True(t, pk.P.ProbablyPrime(100))
	require.True(t, pk.P.Cmp(big.NewInt(5000)) >= 0)

	// b = g^a mod p
	b := new(big.Int).Exp(pk.G, sk.A, pk.P)
	require.Zero(t, b.Cmp(pk.B))
}

// Any returned generator must have multiplicative order exactly p-1.
func TestGeneratorValidity(t *testing.T) {
	rnd := testRand(t)
	p := big.NewInt(1019)

	g, err := FindGenerator(rnd, p)
	require.NoError(t, err)

	pMinusOne := new(big.Int).Sub(p, big.NewInt(1))
	require.Zero(t, new(big.Int).Exp(g, pMinusOne, p).Cmp(big.NewInt(1)))

	next := new(big.Int).Set(g)
	for e := int64(1); e < 1018; e++ {
		require.NotZero(t, next.Cmp(big.NewInt(1)), "order of g is %d < p-1", e)
		next.Mul(next, g)
		next.Mod(next, p)
	}
}

// A composite modulus has no primitive root reachable by the search; it must
// report failure rather than hang.
func TestNoGenerator(t *testing.T) {
	rnd := testRand(t)

	_, err := FindGenerator(rnd, big.NewInt(8))
	require.ErrorIs(t, err, ErrNoGenerator)

	// Degenerate moduli fail too instead of looping on zero candidates.
	_, err = FindGenerator(rnd, big.NewInt(1))
	require.ErrorIs(t, err, ErrNoGenerator)
}

func TestRoundTrip(t *testing.T) {
	rnd := testRand(t)
	sk, pk, err := GenerateKeyPair(rnd, big.NewInt(100000))
	require.NoError(t, err)

	msgs := []*big.Int{
		big.NewInt(1),
		big.NewInt(2),
		big.NewInt(42),
		new(big.Int).Sub(pk.P, big.NewInt(1)),
	}
	for _, m := range msgs {
		ct, err := pk.Encrypt(rnd, m)
		require.NoError(t, err)
		dec, err := sk.Decrypt(ct)
		require.NoError(t, err)
		require.Zero(t, dec.Cmp(m), "round trip failed for m=%v", m)
	}
}

func TestMultiplicativeHomomorphism(t *testing.T) {
	rnd := testRand(t)
	sk, pk, err := GenerateKeyPair(rnd, big.NewInt(100000))
	require.NoError(t, err)

	m1 := big.NewInt(123)
	m2 := big.NewInt(456)

	c1, err := pk.Encrypt(rnd, m1)
	require.NoError(t, err)
	c2, err := pk.Encrypt(rnd, m2)
	require.NoError(t, err)

	dec, err := sk.Decrypt(pk.Mul(c1, c2))
	require.NoError(t, err)

	want := new(big.Int).Mul(m1, m2)
	want.Mod(want, pk.P)
	require.Zero(t, dec.Cmp(want))
}

func TestMarshaling(t *testing.T) {
	rnd := testRand(t)
	sk, pk, err := GenerateKeyPair(rnd, big.NewInt(5000))
	require.NoError(t, err)

	bts, err := json.Marshal(sk)
	require.NoError(t, err)
	sk2 := new(PrivateKey)
	require.NoError(t, json.Unmarshal(bts, sk2))
	require.Zero(t, sk.A.Cmp(sk2.A))
	require.Zero(t, sk.P.Cmp(sk2.P))

	ct, err := pk.Encrypt(rnd, big.NewInt(99))
	require.NoError(t, err)

	bts, err = cbor.Marshal(ct)
	require.NoError(t, err)
	ct2 := new(Ciphertext)
	require.NoError(t, cbor.Unmarshal(bts, ct2))

	dec, err := sk2.Decrypt(ct2)
	require.NoError(t, err)
	require.Zero(t, dec.Cmp(big.NewInt(99)))

	fp, err := pk.Fingerprint()
	require.NoError(t, err)
	fp2, err := sk2.PublicKey.Fingerprint()
	require.NoError(t, err)
	require.Equal(t, fp, fp2)
}
