package store

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// minCompressSize is the smallest payload worth paying zstd's frame
// overhead for; most blobs in a student-sized repository are tiny.
const minCompressSize = 256

// compressor wraps a reusable zstd encoder/decoder pair behind a mutex.
// A single Store is already serialized by the repository's advisory
// lock, so contention is not a concern; the mutex only guards the
// non-reentrant zstd API.
type compressor struct {
	mu  sync.Mutex
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCompressor() *compressor {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("store: failed to construct zstd encoder: " + err.Error())
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		panic("store: failed to construct zstd decoder: " + err.Error())
	}
	return &compressor{enc: enc, dec: dec}
}

// marker distinguishes a compressed payload from one stored raw, so
// small objects that skipped compression still decode correctly.
const (
	markerRaw      byte = 0
	markerZstd     byte = 1
)

func (c *compressor) compress(raw []byte) ([]byte, error) {
	if len(raw) < minCompressSize {
		return append([]byte{markerRaw}, raw...), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	compressed := c.enc.EncodeAll(raw, make([]byte, 0, len(raw)))
	return append([]byte{markerZstd}, compressed...), nil
}

func (c *compressor) decompress(encoded []byte) ([]byte, error) {
	if len(encoded) == 0 {
		return nil, nil
	}
	marker, body := encoded[0], encoded[1:]
	if marker == markerRaw {
		return body, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dec.DecodeAll(body, nil)
}
