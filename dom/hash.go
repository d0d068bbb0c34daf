package dom

import (
	"encoding/binary"
	"hash"

	"github.com/minio/highwayhash"
)

// fixed so fingerprints are stable across processes
var hashKey = []byte("descmerge-fingerprint-key-000032")

func newHash() hash.Hash64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// only fails on a key that is not 32 bytes
		panic("dom: " + err.Error())
	}
	return h
}

// Fingerprint returns a process independent 64-bit hash of data.
func Fingerprint(data []byte) uint64 {
	h := newHash()
	h.Write(data)
	return h.Sum64()
}

// Hash returns a process independent 64-bit hash of the subtree.  Prefix
// hints do not contribute: two trees that differ only in the prefixes used
// for the same namespaces hash the same.
func (e *Element) Hash() uint64 {
	h := newHash()
	e.writeHash(h)
	return h.Sum64()
}

func (e *Element) writeHash(h hash.Hash64) {
	writeString(h, e.Name.Space)
	writeString(h, e.Name.Local)
	writeLen(h, len(e.Attrs))
	for i := range e.Attrs {
		a := &e.Attrs[i]
		writeString(h, a.Name.Space)
		writeString(h, a.Name.Local)
		writeString(h, a.Value)
	}
	writeString(h, e.Text)
	writeLen(h, len(e.Children))
	for _, c := range e.Children {
		c.writeHash(h)
	}
}

func writeString(h hash.Hash64, s string) {
	writeLen(h, len(s))
	h.Write([]byte(s))
}

func writeLen(h hash.Hash64, n int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	h.Write(b[:])
}
