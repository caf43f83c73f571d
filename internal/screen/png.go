// File: internal/screen/png.go
package screen

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// pngSignature is the fixed eight-byte PNG file header.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// encodePNG serializes an 8-bit RGBA buffer as a minimal valid PNG: an IHDR
// chunk, a single zlib-compressed IDAT holding all scanlines (each prefixed
// with the "no filter" byte), and an IEND trailer. The chunk layout is
// exactly what any standard decoder expects: big-endian length, tag, payload,
// CRC32 over tag and payload.
func encodePNG(rgba []byte, w, h int) ([]byte, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", w, h)
	}
	if len(rgba) != w*h*4 {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %d for %dx%d RGBA", len(rgba), w*h*4, w, h)
	}

	// Raw image data: one filter byte per scanline, then the line's pixels.
	stride := w * 4
	raw := make([]byte, 0, h*(stride+1))
	for y := 0; y < h; y++ {
		raw = append(raw, 0x00)
		raw = append(raw, rgba[y*stride:(y+1)*stride]...)
	}

	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, 6)
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib writer: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("failed to compress scanlines: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush zlib stream: %w", err)
	}

	// IHDR: width, height, bit depth 8, color type 6 (truecolor+alpha),
	// deflate compression, filter method 0, no interlace.
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(h))
	ihdr[8] = 8
	ihdr[9] = 6

	var out bytes.Buffer
	out.Grow(len(pngSignature) + len(ihdr) + idat.Len() + 3*12)
	out.Write(pngSignature)
	writeChunk(&out, "IHDR", ihdr)
	writeChunk(&out, "IDAT", idat.Bytes())
	writeChunk(&out, "IEND", nil)
	return out.Bytes(), nil
}

// writeChunk appends one PNG chunk: length, tag, payload, CRC(tag+payload).
func writeChunk(out *bytes.Buffer, tag string, payload []byte) {
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(len(payload)))
	copy(header[4:8], tag)
	out.Write(header[:])
	out.Write(payload)

	crc := crc32.NewIEEE()
	crc.Write(header[4:8])
	crc.Write(payload)
	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], crc.Sum32())
	out.Write(trailer[:])
}
