// Package serialization provides the checkpoint blob codec pipeline:
// encode with a pluggable codec, then optionally compress and encrypt.
// Checkpoint stores treat the output as an opaque blob keyed by thread.
// PRINCIPLES:
// - KISS: Simple interface with multiple codec implementations
// - DRY: Reusable across all checkpoint store implementations
package serialization

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes one value.
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
	Name() string
}

// Compression selects the blob compression algorithm.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// Config holds serializer settings. EncryptKey, when set, must be a
// 32-byte AES-256 key; blobs are then sealed with AES-GCM.
type Config struct {
	Codec       Codec
	Compression Compression
	EncryptKey  []byte
}

// Serializer runs the full encode -> compress -> encrypt pipeline and its
// inverse. The pipeline is deterministic apart from the GCM nonce, so a
// round trip reproduces the input value exactly.
type Serializer struct {
	config Config
}

// New creates a serializer with the given configuration.
func New(config Config) *Serializer {
	return &Serializer{config: config}
}

// Default returns the serializer used for checkpoint blobs: msgpack
// encoding with zstd compression, no encryption.
func Default() *Serializer {
	return New(Config{Codec: NewMsgPackCodec(), Compression: CompressionZstd})
}

// Marshal encodes, compresses, and encrypts v into a storage blob.
func (s *Serializer) Marshal(v interface{}) ([]byte, error) {
	data, err := s.config.Codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("codec encoding failed: %w", err)
	}

	data, err = s.compress(data)
	if err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}

	if len(s.config.EncryptKey) > 0 {
		data, err = s.encrypt(data)
		if err != nil {
			return nil, fmt.Errorf("encryption failed: %w", err)
		}
	}

	return data, nil
}

// Unmarshal decrypts, decompresses, and decodes a storage blob into v.
func (s *Serializer) Unmarshal(data []byte, v interface{}) error {
	var err error

	if len(s.config.EncryptKey) > 0 {
		data, err = s.decrypt(data)
		if err != nil {
			return fmt.Errorf("decryption failed: %w", err)
		}
	}

	data, err = s.decompress(data)
	if err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}

	if err := s.config.Codec.Decode(data, v); err != nil {
		return fmt.Errorf("codec decoding failed: %w", err)
	}
	return nil
}

func (s *Serializer) compress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (s *Serializer) decompress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}

// encrypt seals data with AES-GCM, prepending the nonce.
func (s *Serializer) encrypt(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.config.EncryptKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

func (s *Serializer) decrypt(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.config.EncryptKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, fmt.Errorf("invalid ciphertext size")
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// JSONCodec implements JSON serialization.
type JSONCodec struct{}

func (c *JSONCodec) Encode(v interface{}) ([]byte, error)     { return json.Marshal(v) }
func (c *JSONCodec) Decode(data []byte, v interface{}) error  { return json.Unmarshal(data, v) }
func (c *JSONCodec) Name() string                             { return "json" }

// MsgPackCodec implements MessagePack serialization.
type MsgPackCodec struct{}

func (c *MsgPackCodec) Encode(v interface{}) ([]byte, error)    { return msgpack.Marshal(v) }
func (c *MsgPackCodec) Decode(data []byte, v interface{}) error { return msgpack.Unmarshal(data, v) }
func (c *MsgPackCodec) Name() string                            { return "msgpack" }

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() Codec { return &JSONCodec{} }

// NewMsgPackCodec creates a new MessagePack codec.
func NewMsgPackCodec() Codec { return &MsgPackCodec{} }
