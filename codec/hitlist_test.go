package codec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/althonos/hmmer/tophits"
)

func buildList(t *testing.T, n int) *tophits.TopHits {
	t.Helper()
	th := tophits.New()
	for i := 0; i < n; i++ {
		hit, err := th.CreateNextHit()
		require.NoError(t, err)
		hit.Name = fmt.Sprintf("seq%05d", i)
		hit.Acc = fmt.Sprintf("ACC%05d", i)
		hit.Desc = "hypothetical protein, repeated so the payload compresses"
		hit.SortKey = float64(i % 97)
		hit.Score = float32(i % 97)
		hit.PValue = 1.0 / float64(i+1)
		hit.Domains = []tophits.Domain{
			{Score: float32(i), PValue: 0.001, IEnv: 1, JEnv: 120, IAli: 3, JAli: 118, Ali: []byte("alignment display")},
		}
		hit.BestDomain = 0
	}
	return th
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			src := buildList(t, 500)
			defer src.Close()

			data, err := EncodeList(src, WithCompression(compression))
			require.NoError(t, err)

			got, err := DecodeList(data)
			require.NoError(t, err)
			defer got.Close()

			require.Equal(t, src.Len(), got.Len())
			require.Equal(t, src.Records(), got.Records())

			src.Sort()
			got.Sort()
			for i := 0; i < src.Len(); i++ {
				require.Equal(t, src.At(i).SortKey, got.At(i).SortKey)
			}
		})
	}
}

func TestEncodeDecode_StdlibJSONInterop(t *testing.T) {
	src := buildList(t, 20)
	defer src.Close()

	data, err := EncodeList(src, WithCodec(JSON{}), WithCompression(CompressionZstd))
	require.NoError(t, err)

	got, err := DecodeList(data)
	require.NoError(t, err)
	defer got.Close()
	require.Equal(t, src.Records(), got.Records())
}

func TestDecode_ReportedFlagsSurvive(t *testing.T) {
	src := buildList(t, 10)
	defer src.Close()
	recs := src.Records()
	recs[2].Reported = true
	recs[7].Reported = true

	data, err := EncodeList(src)
	require.NoError(t, err)

	got, err := DecodeList(data)
	require.NoError(t, err)
	defer got.Close()
	require.Equal(t, 2, got.NumReported())
	require.True(t, got.Records()[2].Reported)
}

func TestDecode_EmptyList(t *testing.T) {
	src := tophits.New()
	defer src.Close()

	data, err := EncodeList(src)
	require.NoError(t, err)

	got, err := DecodeList(data)
	require.NoError(t, err)
	defer got.Close()
	require.Zero(t, got.Len())
}

func TestDecode_BadInput(t *testing.T) {
	_, err := DecodeList(nil)
	require.ErrorIs(t, err, ErrBadFrame)

	_, err = DecodeList([]byte("not a frame at all"))
	require.ErrorIs(t, err, ErrBadFrame)

	src := buildList(t, 3)
	defer src.Close()
	data, err := EncodeList(src)
	require.NoError(t, err)

	// Forge an unknown codec name in the header.
	forged := append([]byte(nil), data...)
	forged[6] = 'x'
	_, err = DecodeList(forged)
	require.ErrorIs(t, err, ErrUnknownCodec)
}
