// Package manifest describes a split payload so the receiving side can check
// that a rejoined buffer is the one that was sent. Manifests are stored as
// CBOR with Core Deterministic Encoding.
package manifest

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/danmuck/assembler/internal/protocol/fragment"
	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// Version is the current manifest format version.
const Version = 1

var (
	ErrDigestMismatch = errors.New("manifest: digest mismatch")
	ErrSizeMismatch   = errors.New("manifest: size mismatch")
)

// Digest is a 32-byte keyed BLAKE3 hash of a payload.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// payloadKey is "assembler.payload" zero-padded to 32 bytes.
var payloadKey = [32]byte{
	'a', 's', 's', 'e', 'm', 'b', 'l', 'e', 'r', '.',
	'p', 'a', 'y', 'l', 'o', 'a', 'd',
}

// Manifest is the sidecar record written next to a fragment stream.
type Manifest struct {
	Version   int    `json:"version"`
	Digest    Digest `json:"digest"`
	Size      int64  `json:"size"`
	Capacity  int    `json:"capacity"`
	Fragments uint64 `json:"fragments"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("manifest: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("manifest: CBOR decoder initialization failed: " + err.Error())
	}
}

// HashPayload computes the payload-domain digest of data.
func HashPayload(data []byte) Digest {
	hasher, err := blake3.NewKeyed(payloadKey[:])
	if err != nil {
		panic("manifest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var d Digest
	copy(d[:], hasher.Sum(nil))
	return d
}

// Build describes data as it would be split by fragment.Split.
func Build(data []byte) Manifest {
	return Manifest{
		Version:   Version,
		Digest:    HashPayload(data),
		Size:      int64(len(data)),
		Capacity:  fragment.Capacity,
		Fragments: fragment.Count(len(data)),
	}
}

func Marshal(m Manifest) ([]byte, error) {
	data, err := encMode.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates a manifest. Unknown fields are ignored.
func Unmarshal(data []byte) (Manifest, error) {
	var m Manifest
	if err := decMode.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decoding manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks that m is internally consistent.
func (m Manifest) Validate() error {
	if m.Version < 1 {
		return fmt.Errorf("manifest: version %d is invalid (minimum 1)", m.Version)
	}
	if m.Size < 0 {
		return fmt.Errorf("manifest: size %d is negative", m.Size)
	}
	if m.Capacity != fragment.Capacity {
		return fmt.Errorf("manifest: capacity %d, this build uses %d", m.Capacity, fragment.Capacity)
	}
	if want := fragment.Count(int(m.Size)); m.Fragments != want {
		return fmt.Errorf("manifest: %d fragments for %d bytes, want %d", m.Fragments, m.Size, want)
	}
	return nil
}

// Verify checks a rejoined payload against m.
func (m Manifest) Verify(data []byte) error {
	if int64(len(data)) != m.Size {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(data), m.Size)
	}
	if got := HashPayload(data); got != m.Digest {
		return fmt.Errorf("%w: got %s, want %s", ErrDigestMismatch, got, m.Digest)
	}
	return nil
}
