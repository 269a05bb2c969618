package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/althonos/hmmer/tophits"
)

// Frame layout:
//
//	[magic "HLS1"][version u8][codec name len u8][codec name]
//	[compression u8][uncompressed len u32 LE][payload]
//
// The compression byte records what was actually applied: an encoder asked
// for LZ4 on an incompressible payload falls back to storing it raw.
var frameMagic = [4]byte{'H', 'L', 'S', '1'}

const frameVersion = 1

var (
	// ErrBadFrame is returned when data is not an encoded hit list.
	ErrBadFrame = errors.New("codec: not a hit list frame")

	// ErrUnknownCodec is returned when a frame names a codec this build
	// does not provide.
	ErrUnknownCodec = errors.New("codec: unknown codec in frame header")
)

// listSnapshot is the codec-level view of a hit list: the records in append
// order. Reporting flags travel on the hits; the container-level counter is
// recomputed on decode.
type listSnapshot struct {
	Hits []tophits.Hit `json:"hits"`
}

// EncodeOption configures EncodeList.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	codec       Codec
	compression Compression
}

// WithCodec selects the payload codec. Defaults to Default.
func WithCodec(c Codec) EncodeOption {
	return func(o *encodeOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression selects the payload compression. Defaults to LZ4.
func WithCompression(c Compression) EncodeOption {
	return func(o *encodeOptions) { o.compression = c }
}

// EncodeList serializes a hit list into a self-describing frame, ready for
// transfer to a coordinating process or deposit in a blob store.
func EncodeList(th *tophits.TopHits, opts ...EncodeOption) ([]byte, error) {
	o := encodeOptions{codec: Default, compression: CompressionLZ4}
	for _, opt := range opts {
		opt(&o)
	}

	payload, err := o.codec.Marshal(listSnapshot{Hits: th.Records()})
	if err != nil {
		return nil, fmt.Errorf("codec: marshal hit list: %w", err)
	}

	raw := payload
	applied := o.compression
	if applied != CompressionNone {
		compressed, err := compress(raw, applied)
		if err != nil {
			return nil, err
		}
		// Keep the raw payload when compression does not pay for itself.
		if compressed == nil || len(compressed) >= len(raw) {
			applied = CompressionNone
		} else {
			payload = compressed
		}
	}

	name := o.codec.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("codec: codec name too long: %q", name)
	}

	var buf bytes.Buffer
	buf.Grow(len(payload) + 16)
	buf.Write(frameMagic[:])
	buf.WriteByte(frameVersion)
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	buf.WriteByte(byte(applied))

	// The size field always holds the uncompressed payload length, so
	// decoders can allocate exactly.
	var lenb [4]byte
	binary.LittleEndian.PutUint32(lenb[:], uint32(len(raw)))
	buf.Write(lenb[:])
	buf.Write(payload)
	return buf.Bytes(), nil
}

// DecodeList rebuilds a hit list from a frame produced by EncodeList. The
// returned list is a fresh container; its reported-hit counter is recounted
// from the decoded flags.
func DecodeList(data []byte) (*tophits.TopHits, error) {
	if len(data) < len(frameMagic)+1 || !bytes.Equal(data[:4], frameMagic[:]) {
		return nil, ErrBadFrame
	}
	rest := data[4:]
	if rest[0] != frameVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadFrame, rest[0])
	}
	rest = rest[1:]

	if len(rest) < 1 {
		return nil, ErrBadFrame
	}
	nameLen := int(rest[0])
	rest = rest[1:]
	if len(rest) < nameLen+1+4 {
		return nil, ErrBadFrame
	}
	name := string(rest[:nameLen])
	rest = rest[nameLen:]

	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	compression := Compression(rest[0])
	size := binary.LittleEndian.Uint32(rest[1:5])
	payload := rest[5:]

	if compression != CompressionNone {
		var err error
		payload, err = decompress(payload, compression, size)
		if err != nil {
			return nil, err
		}
	}

	var snap listSnapshot
	if err := c.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("codec: unmarshal hit list: %w", err)
	}

	th := tophits.New()
	for i := range snap.Hits {
		hit, err := th.CreateNextHit()
		if err != nil {
			return nil, err
		}
		*hit = snap.Hits[i]
	}
	th.RecountReported()
	return th, nil
}
