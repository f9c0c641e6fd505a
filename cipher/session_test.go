package cipher_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/mirrorfield/bank"
	"github.com/katalvlaran/mirrorfield/cipher"
	"github.com/katalvlaran/mirrorfield/field"
	"github.com/katalvlaran/mirrorfield/internal/testutil/testlog"
	"github.com/katalvlaran/mirrorfield/keygen"
	"github.com/katalvlaran/mirrorfield/traverse"
)

func mustSession(t *testing.T, def []byte, size, count int, opts ...cipher.Option) *cipher.Session {
	t.Helper()
	b, err := bank.Parse(def, size, count)
	require.NoError(t, err)
	s, err := cipher.NewSession(b, opts...)
	require.NoError(t, err)
	return s
}

func concat(parts ...string) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// SessionSuite covers the driver, rolling and the collision fixup.
type SessionSuite struct {
	suite.Suite
}

func (s *SessionSuite) SetupSuite() {
	testlog.Start(s.T())
}

// TestGoldenSingleField pins the exact output and final state of an N=2,
// K=1 key.
func (s *SessionSuite) TestGoldenSingleField() {
	sess := mustSession(s.T(), concat("/\\- ", "ABCDEFGH"), 2, 1,
		cipher.WithLogger(testlog.Logger(s.T())))

	out, err := sess.ProcessBytes([]byte("DEADBEEFCAFE"))
	require.NoError(s.T(), err)
	require.Equal(s.T(), "HFHAAHHEFEBA", string(out))

	st := sess.Snapshot()
	require.Equal(s.T(), "\\\\/ ", st.Fields[0].Mirrors)
	require.Equal(s.T(), "DHFECGBA", string(st.Fields[0].Perimeter))
	require.Equal(s.T(), cipher.Cursors{Field: 0, Roll1: 4, Roll2: 0, RollCount: 0}, st.Cursors)
	require.EqualValues(s.T(), 12, sess.Processed())
}

// TestGoldenFixup pins an N=2, K=2 stream in which the collision fixup
// fires twice, at bytes 2 and 10, returning the input byte unchanged.
func (s *SessionSuite) TestGoldenFixup() {
	def := concat("/\\- ", " -/\\",
		string([]byte{0, 1, 2, 3, 4, 5, 6, 7}),
		string([]byte{0, 1, 2, 3, 10, 11, 12, 13}))
	in := []byte{0, 1, 2, 3, 5, 2, 6, 11, 7, 12, 0, 0, 1, 13, 4, 10}
	want := []byte{6, 3, 2, 13, 1, 13, 0, 1, 0, 2, 0, 13, 2, 11, 3, 13}

	sess := mustSession(s.T(), def, 2, 2)
	out, err := sess.ProcessBytes(in)
	require.NoError(s.T(), err)
	require.Equal(s.T(), want, out)
	require.Equal(s.T(), in[2], out[2])
	require.Equal(s.T(), in[10], out[10])

	st := sess.Snapshot()
	require.Equal(s.T(), "\\\\- ", st.Fields[0].Mirrors)
	require.Equal(s.T(), " /\\\\", st.Fields[1].Mirrors)
	require.Equal(s.T(), []byte{6, 0, 1, 3, 7, 5, 2, 4}, st.Fields[0].Perimeter)
	require.Equal(s.T(), []byte{2, 0, 11, 10, 12, 3, 1, 13}, st.Fields[1].Perimeter)
	require.Equal(s.T(), cipher.Cursors{Field: 0, Roll1: 0, Roll2: 4, RollCount: 0}, st.Cursors)

	back := mustSession(s.T(), def, 2, 2)
	plain, err := back.ProcessBytes(out)
	require.NoError(s.T(), err)
	require.Equal(s.T(), in, plain)
}

// TestRoundRobin verifies K consecutive bytes visit fields 0..K-1 in order.
func (s *SessionSuite) TestRoundRobin() {
	const k = 5
	g, err := keygen.New(3, k, keygen.WithSeed(3), keygen.WithAlphabet([]byte("abcdefghijkl")))
	require.NoError(s.T(), err)
	b, err := g.Bank()
	require.NoError(s.T(), err)

	var visited []int
	sess, err := cipher.NewSession(b, cipher.WithStepObserver(func(idx int, _ *field.Field, st traverse.Step) {
		if st.Seq == 0 {
			visited = append(visited, idx)
		}
	}))
	require.NoError(s.T(), err)

	for i := 0; i < 3*k; i++ {
		require.Equal(s.T(), i%k, sess.Cursors().Field)
		_, err := sess.Process('a' + byte(i%12))
		require.NoError(s.T(), err)
	}
	for i, idx := range visited {
		require.Equal(s.T(), i%k, idx, "byte %d", i)
	}
}

// TestRollCursors verifies g1 and g2 advance once per K bytes and stay
// 2N apart.
func (s *SessionSuite) TestRollCursors() {
	const n, k = 3, 4
	g, err := keygen.New(n, k, keygen.WithSeed(11), keygen.WithAlphabet([]byte("0123456789AB")))
	require.NoError(s.T(), err)
	b, err := g.Bank()
	require.NoError(s.T(), err)
	sess, err := cipher.NewSession(b)
	require.NoError(s.T(), err)

	c := sess.Cursors()
	require.Equal(s.T(), 0, c.Roll1)
	require.Equal(s.T(), 2*n, c.Roll2)

	rng := rand.New(rand.NewSource(1))
	for i := 1; i <= 10*k; i++ {
		_, err := sess.Process("0123456789AB"[rng.Intn(12)])
		require.NoError(s.T(), err)
		c := sess.Cursors()
		require.Equal(s.T(), (i/k)%(4*n), c.Roll1, "after %d bytes", i)
		require.Equal(s.T(), (c.Roll1+2*n)%(4*n), c.Roll2)
		require.Equal(s.T(), i%k, c.RollCount)
	}
}

// TestCharacterNotFound verifies a byte outside the perimeter is fatal and
// leaves the state untouched.
func (s *SessionSuite) TestCharacterNotFound() {
	sess := mustSession(s.T(), concat("/\\- ", "ABCDEFGH"), 2, 1)
	before := sess.Snapshot()

	_, err := sess.Process('z')
	require.ErrorIs(s.T(), err, cipher.ErrCharacterNotFound)
	require.Equal(s.T(), before, sess.Snapshot())

	out, err := sess.ProcessBytes([]byte("ABzC"))
	require.ErrorIs(s.T(), err, cipher.ErrCharacterNotFound)
	require.Len(s.T(), out, 2)
}

// TestNewSession_Errors covers nil and unlinked banks.
func (s *SessionSuite) TestNewSession_Errors() {
	_, err := cipher.NewSession(nil)
	require.ErrorIs(s.T(), err, cipher.ErrNilBank)

	b, err := bank.New(2, 1)
	require.NoError(s.T(), err)
	_, err = cipher.NewSession(b)
	require.ErrorIs(s.T(), err, cipher.ErrBankNotLinked)
}

// TestDeterminism verifies independently loaded banks fed the same bytes
// end in byte-identical states.
func (s *SessionSuite) TestDeterminism() {
	g, err := keygen.New(4, 3, keygen.WithSeed(21), keygen.WithAlphabet(alphabet(16)))
	require.NoError(s.T(), err)
	def, err := g.Definition()
	require.NoError(s.T(), err)

	in := randomInput(99, 500, 16)
	a := mustSession(s.T(), def, 4, 3)
	b := mustSession(s.T(), def, 4, 3)
	outA, err := a.ProcessBytes(in)
	require.NoError(s.T(), err)
	outB, err := b.ProcessBytes(in)
	require.NoError(s.T(), err)
	require.Equal(s.T(), outA, outB)

	encA, err := a.Snapshot().MarshalBinary()
	require.NoError(s.T(), err)
	encB, err := b.Snapshot().MarshalBinary()
	require.NoError(s.T(), err)
	require.Equal(s.T(), encA, encB)
}

// TestSnapshotEncoding verifies a snapshot survives MarshalBinary and
// UnmarshalBinary unchanged, including mid-stream cursors.
func (s *SessionSuite) TestSnapshotEncoding() {
	sess := mustSession(s.T(), concat("/\\- ", " -/\\", "ABCDEFGH", "abcdefgh"), 2, 2)
	_, err := sess.ProcessBytes([]byte("DeAd"))
	require.NoError(s.T(), err)
	want := sess.Snapshot()

	data, err := want.MarshalBinary()
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), data)

	var got cipher.State
	require.NoError(s.T(), got.UnmarshalBinary(data))
	require.Equal(s.T(), want, got)

	again, err := got.MarshalBinary()
	require.NoError(s.T(), err)
	require.Equal(s.T(), data, again)
}

// TestRoundTrip encrypts and decrypts random streams over random keys,
// with alphabets small enough that the fixup fires regularly.
func (s *SessionSuite) TestRoundTrip() {
	fixups := 0
	for _, tc := range []struct{ n, k int }{{1, 1}, {2, 1}, {2, 3}, {3, 2}, {5, 4}} {
		slots := 4 * tc.n
		for seed := int64(1); seed <= 5; seed++ {
			g, err := keygen.New(tc.n, tc.k, keygen.WithSeed(seed), keygen.WithAlphabet(alphabet(slots)))
			require.NoError(s.T(), err)
			b, err := g.Bank()
			require.NoError(s.T(), err)

			enc, err := cipher.NewSession(b.Clone())
			require.NoError(s.T(), err)
			dec, err := cipher.NewSession(b.Clone())
			require.NoError(s.T(), err)

			in := randomInput(seed, 400, slots)
			ct, err := enc.ProcessBytes(in)
			require.NoError(s.T(), err)
			pt, err := dec.ProcessBytes(ct)
			require.NoError(s.T(), err)
			require.Equal(s.T(), in, pt, "n=%d k=%d seed=%d", tc.n, tc.k, seed)
			require.Equal(s.T(), enc.Snapshot(), dec.Snapshot())

			for i := range in {
				if in[i] == ct[i] {
					fixups++
				}
			}
		}
	}
	require.Positive(s.T(), fixups, "collision fixup never fired")
}

// TestRestore verifies a restored snapshot continues the original stream.
func (s *SessionSuite) TestRestore() {
	g, err := keygen.New(3, 2, keygen.WithSeed(8), keygen.WithAlphabet(alphabet(12)))
	require.NoError(s.T(), err)
	b, err := g.Bank()
	require.NoError(s.T(), err)
	sess, err := cipher.NewSession(b)
	require.NoError(s.T(), err)

	in := randomInput(4, 60, 12)
	_, err = sess.ProcessBytes(in[:25])
	require.NoError(s.T(), err)

	data, err := sess.Snapshot().MarshalBinary()
	require.NoError(s.T(), err)
	var st cipher.State
	require.NoError(s.T(), st.UnmarshalBinary(data))
	resumed, err := cipher.Restore(st)
	require.NoError(s.T(), err)
	require.Equal(s.T(), sess.Cursors(), resumed.Cursors())

	want, err := sess.ProcessBytes(in[25:])
	require.NoError(s.T(), err)
	got, err := resumed.ProcessBytes(in[25:])
	require.NoError(s.T(), err)
	require.Equal(s.T(), want, got)
}

// TestRestore_Invalid rejects inconsistent snapshots.
func (s *SessionSuite) TestRestore_Invalid() {
	sess := mustSession(s.T(), concat("/\\- ", "ABCDEFGH"), 2, 1)
	good := sess.Snapshot()

	bad := good
	bad.Cursors.Roll2 = 1
	_, err := cipher.Restore(bad)
	require.ErrorIs(s.T(), err, cipher.ErrInvalidState)

	bad = good
	bad.Fields = nil
	_, err = cipher.Restore(bad)
	require.ErrorIs(s.T(), err, cipher.ErrInvalidState)

	bad = good
	bad.Fields = []cipher.FieldState{{Mirrors: "////", Perimeter: []byte("AACDEFGH")}}
	_, err = cipher.Restore(bad)
	require.ErrorIs(s.T(), err, field.ErrDuplicatePerimeterValue)

	var st cipher.State
	require.ErrorIs(s.T(), st.UnmarshalBinary([]byte{0xff, 0x00}), cipher.ErrInvalidState)
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

// alphabet returns the bytes 0..n-1.
func alphabet(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

// randomInput returns length bytes drawn from 0..n-1.
func randomInput(seed int64, length, n int) []byte {
	rng := rand.New(rand.NewSource(seed))
	out := make([]byte, length)
	for i := range out {
		out[i] = byte(rng.Intn(n))
	}
	return out
}
