package hashing

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// binaryRecord is the CBOR layout of a HashRaw: a fixed seven-element array.
type binaryRecord struct {
	_          struct{} `cbor:",toarray"`
	Variant    uint32
	Version    uint32
	MemorySize uint32
	Iterations uint32
	Lanes      uint32
	Salt       []byte
	Hash       []byte
}

var (
	cborEnc = mustEncMode(cbor.CoreDetEncOptions())
	cborDec = mustDecMode(cbor.DecOptions{MaxArrayElements: 16})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// EncodeBinary returns the deterministic CBOR encoding of h, a compact
// alternative to the PHC string for binary stores.
func (h HashRaw) EncodeBinary() ([]byte, error) {
	return cborEnc.Marshal(binaryRecord{
		Variant:    uint32(h.variant),
		Version:    uint32(h.version),
		MemorySize: h.memorySize,
		Iterations: h.iterations,
		Lanes:      h.lanes,
		Salt:       h.rawSalt,
		Hash:       h.rawHash,
	})
}

// DecodeBinary parses the output of [HashRaw.EncodeBinary]. It rejects the
// same records [Decode] would reject in string form.
func DecodeBinary(data []byte) (HashRaw, error) {
	var rec binaryRecord
	if err := cborDec.Unmarshal(data, &rec); err != nil {
		return HashRaw{}, fmt.Errorf("%w: cbor: %v", ErrEncoding, err)
	}

	variant, version := Variant(rec.Variant), Version(rec.Version)
	switch {
	case !variant.Valid():
		return HashRaw{}, fmt.Errorf("%w: unknown variant %d", ErrHashInvalid, rec.Variant)
	case !version.Valid():
		return HashRaw{}, fmt.Errorf("%w: unknown version %d", ErrHashInvalid, rec.Version)
	case len(rec.Salt) == 0:
		return HashRaw{}, fmt.Errorf("%w: empty salt", ErrHashInvalid)
	case len(rec.Hash) == 0:
		return HashRaw{}, fmt.Errorf("%w: empty hash", ErrHashInvalid)
	}

	return HashRaw{
		variant:    variant,
		version:    version,
		memorySize: rec.MemorySize,
		iterations: rec.Iterations,
		lanes:      rec.Lanes,
		rawSalt:    rec.Salt,
		rawHash:    rec.Hash,
	}, nil
}
