package lshdb

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/annlab/lshdb/projection"
)

const (
	// snapshotMagic identifies lshdb snapshots (ASCII "LSHD").
	snapshotMagic = uint32(0x4C534844)
	// snapshotVersion is the current snapshot format version (v1.0.0).
	snapshotVersion = uint32(0x00010000)
)

// Compression selects the codec applied to the snapshot payload.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = iota
	// CompressionZstd compresses the payload with zstandard (default).
	CompressionZstd
	// CompressionLZ4 compresses the payload with the LZ4 frame format.
	CompressionLZ4
)

// String returns a string representation of the Compression codec.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// snapshotHeader is the fixed 24-byte header at the start of a snapshot.
// The checksum is a CRC32 (IEEE) of the compressed payload.
type snapshotHeader struct {
	Magic       uint32
	Version     uint32
	Compression uint8
	Reserved    [3]byte
	Checksum    uint32
	PayloadLen  uint64
}

// snapshotState is the gob-encoded body of a snapshot. The occupancy
// bitmap is rebuilt from BinIdx on load, and the hasher from Planes and
// Strategy, so neither is stored.
type snapshotState[I any] struct {
	Strategy int
	Planes   [][]float32
	Buf      []I
	BinIdx   []binRange
}

// WriteSnapshot serializes the index to w using the given compression
// codec. Identifier types beyond gob's built-in support must be registered
// by the caller with gob.Register.
func (db *LSHDB[I]) WriteSnapshot(w io.Writer, compression Compression) (int64, error) {
	var body bytes.Buffer
	state := snapshotState[I]{
		Strategy: int(db.hasher.Strategy()),
		Planes:   db.hasher.Hyperplanes(),
		Buf:      db.buf,
		BinIdx:   db.binIdx,
	}
	if err := gob.NewEncoder(&body).Encode(state); err != nil {
		db.logger.LogSnapshot("write", 0, err)
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}

	payload, err := compress(body.Bytes(), compression)
	if err != nil {
		db.logger.LogSnapshot("write", 0, err)
		return 0, err
	}

	header := snapshotHeader{
		Magic:       snapshotMagic,
		Version:     snapshotVersion,
		Compression: uint8(compression),
		Checksum:    crc32.ChecksumIEEE(payload),
		PayloadLen:  uint64(len(payload)),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		db.logger.LogSnapshot("write", 0, err)
		return 0, fmt.Errorf("write snapshot header: %w", err)
	}

	n, err := w.Write(payload)
	written := int64(binary.Size(header)) + int64(n)
	if err != nil {
		db.logger.LogSnapshot("write", written, err)
		return written, fmt.Errorf("write snapshot payload: %w", err)
	}

	db.logger.LogSnapshot("write", written, nil)
	return written, nil
}

// WriteTo serializes the index to w with the default codec (zstd).
// It implements io.WriterTo.
func (db *LSHDB[I]) WriteTo(w io.Writer) (int64, error) {
	return db.WriteSnapshot(w, CompressionZstd)
}

// ReadFrom deserializes an index previously written with WriteSnapshot.
// The identifier type parameter must match the one used at write time.
func ReadFrom[I any](r io.Reader) (*LSHDB[I], error) {
	var header snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if header.Magic != snapshotMagic {
		return nil, ErrInvalidMagic
	}
	if header.Version != snapshotVersion {
		return nil, ErrInvalidVersion
	}

	payload := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read snapshot payload: %w", err)
	}
	if actual := crc32.ChecksumIEEE(payload); actual != header.Checksum {
		return nil, &ChecksumMismatchError{Expected: header.Checksum, Actual: actual}
	}

	body, err := decompress(payload, Compression(header.Compression))
	if err != nil {
		return nil, err
	}

	var state snapshotState[I]
	if err := gob.NewDecoder(bytes.NewReader(body)).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	hasher, err := projection.New(state.Planes, Strategy(state.Strategy))
	if err != nil {
		return nil, err
	}
	if got, want := uint64(len(state.BinIdx)), uint64(1)<<hasher.Bits(); got != want {
		return nil, fmt.Errorf("decode snapshot: bin table has %d entries, want %d", got, want)
	}

	occupied := roaring64.New()
	for bin, r := range state.BinIdx {
		if r.End > r.Start {
			occupied.Add(uint64(bin))
		}
	}

	return &LSHDB[I]{
		hasher:   hasher,
		buf:      state.Buf,
		binIdx:   state.BinIdx,
		occupied: occupied,
		logger:   NoopLogger(),
	}, nil
}

func compress(raw []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return raw, nil

	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(raw, nil), nil

	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, ErrUnknownCompression
	}
}

func decompress(payload []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil

	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		body, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return body, nil

	case CompressionLZ4:
		body, err := io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return body, nil

	default:
		return nil, ErrUnknownCompression
	}
}
