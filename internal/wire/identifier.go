package wire

import (
	"crypto/md5"
	"io"

	"github.com/google/uuid"
)

// ReadUUID reads a 128-bit identifier, transmitted big-endian as a single
// 16-byte blob.
func ReadUUID(r io.Reader) (uuid.UUID, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return uuid.UUID{}, err
	}
	return uuid.UUID(buf), nil
}

// WriteUUID writes a 128-bit identifier big-endian.
func WriteUUID(w io.Writer, id uuid.UUID) error {
	_, err := w.Write(id[:])
	return err
}

// IdentifierV3 derives a version-3 identifier from b by MD5-hashing it and
// rewriting the version nibble (byte 6, high nibble) to 0x3 and the variant
// bits (byte 8, top two bits) to the RFC 4122 variant. The hash covers b
// exactly as given; no prefix is added.
func IdentifierV3(b []byte) uuid.UUID {
	sum := md5.Sum(b)
	var id uuid.UUID
	copy(id[:], sum[:])
	id[6] = (id[6] & 0x0F) | 0x30
	id[8] = (id[8] & 0x3F) | 0x80
	return id
}
