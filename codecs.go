package shred

import (
	"fmt"

	"github.com/segmentio/shred/compress"
	"github.com/segmentio/shred/compress/brotli"
	"github.com/segmentio/shred/compress/gzip"
	"github.com/segmentio/shred/compress/lz4"
	"github.com/segmentio/shred/compress/snappy"
	"github.com/segmentio/shred/compress/uncompressed"
	"github.com/segmentio/shred/compress/zstd"
	"github.com/segmentio/shred/format"
)

var (
	// Uncompressed is a compression codec which does not apply any
	// compression to page data.
	Uncompressed uncompressed.Codec

	// Snappy is the SNAPPY compression codec.
	Snappy snappy.Codec

	// Gzip is the GZIP compression codec.
	Gzip = gzip.Codec{Level: gzip.DefaultLevel}

	// Brotli is the BROTLI compression codec.
	Brotli = brotli.Codec{Quality: brotli.DefaultQuality, LGWin: brotli.DefaultLGWin}

	// Zstd is the ZSTD compression codec.
	Zstd = zstd.Codec{Level: zstd.DefaultLevel}

	// Lz4 is the LZ4 compression codec.
	Lz4 lz4.Codec

	compressionCodecs = [...]compress.Codec{
		format.Uncompressed: &Uncompressed,
		format.Snappy:       &Snappy,
		format.Gzip:         &Gzip,
		format.Brotli:       &Brotli,
		format.Zstd:         &Zstd,
		format.Lz4:          &Lz4,
	}
)

// LookupCompressionCodec returns the compression codec associated with the
// given code, or an error wrapping ErrInvalidArgument if no codec exists
// for it.
func LookupCompressionCodec(codec format.CompressionCodec) (compress.Codec, error) {
	if codec >= 0 && int(codec) < len(compressionCodecs) {
		if c := compressionCodecs[codec]; c != nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unsupported compression codec %d: %w", codec, ErrInvalidArgument)
}
