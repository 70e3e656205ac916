// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a capture file is compressed.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// ParseCompression parses a compression name.
func ParseCompression(name string) (Compression, error) {
	switch Compression(name) {
	case CompressionNone, CompressionZstd, CompressionLZ4:
		return Compression(name), nil
	default:
		return "", fmt.Errorf("unknown capture compression %q (want none, zstd or lz4)", name)
	}
}

// CompressionForPath picks the compression implied by path's
// extension.
func CompressionForPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// NewWriter returns a writer that compresses into w. Closing it
// flushes the compressor but does not close w.
func NewWriter(w io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("capture: zstd encoder: %w", err)
		}
		return encoder, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("capture: unsupported compression %q", compression)
	}
}

// NewReader returns a reader that decompresses r. Closing it releases
// the decompressor but does not close r.
func NewReader(r io.Reader, compression Compression) (io.ReadCloser, error) {
	switch compression {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("capture: zstd decoder: %w", err)
		}
		return decoder.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("capture: unsupported compression %q", compression)
	}
}

// Create creates (or truncates) a capture file at path, compressed
// according to its extension.
func Create(path string) (io.WriteCloser, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating capture: %w", err)
	}
	writer, err := NewWriter(file, CompressionForPath(path))
	if err != nil {
		file.Close()
		return nil, err
	}
	return &fileWriter{WriteCloser: writer, file: file}, nil
}

// Open opens the capture file at path for replay, decompressing
// according to its extension.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capture: %w", err)
	}
	reader, err := NewReader(file, CompressionForPath(path))
	if err != nil {
		file.Close()
		return nil, err
	}
	return &fileReader{ReadCloser: reader, file: file}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// fileWriter closes the compressor, then the file beneath it.
type fileWriter struct {
	io.WriteCloser
	file *os.File
}

func (writer *fileWriter) Close() error {
	return errors.Join(writer.WriteCloser.Close(), writer.file.Close())
}

type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (reader *fileReader) Close() error {
	return errors.Join(reader.ReadCloser.Close(), reader.file.Close())
}
