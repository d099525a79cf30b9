package handshake

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/json"
	"sort"

	"golang.org/x/xerrors"
)

// Tags computes one HMAC-SHA1 tag per transcript entry. The key is a
// zero-filled buffer sized by the sealed premaster plus the role label: only
// the lengths feed the MAC, and since both labels are equally long, both
// endpoints tag with the same key and can compare each other's lists. This
// is part of the fixed wire behavior and must not change.
func Tags(tr *Transcript, roleLabel string, sealedPremaster []byte) [][]byte {
	key := make([]byte, len(sealedPremaster)+len(roleLabel))
	tags := make([][]byte, 0, tr.Len())
	for i := 0; i < tr.Len(); i++ {
		mac := hmac.New(sha1.New, key)
		mac.Write(tr.at(i))
		tags = append(tags, mac.Sum(nil))
	}
	return tags
}

// TagsEqual compares two tag lists as sets: same tags present, in any order.
func TagsEqual(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := sortedCopy(a), sortedCopy(b)
	for i := range as {
		if !bytes.Equal(as[i], bs[i]) {
			return false
		}
	}
	return true
}

func sortedCopy(tags [][]byte) [][]byte {
	out := append([][]byte(nil), tags...)
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i], out[j]) < 0 })
	return out
}

func encodeTags(tags [][]byte) ([]byte, error) {
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, xerrors.Errorf("handshake: encode tags: %w", err)
	}
	return b, nil
}

func decodeTags(b []byte) ([][]byte, error) {
	var tags [][]byte
	if err := json.Unmarshal(b, &tags); err != nil {
		return nil, xerrors.Errorf("handshake: decode tags: %w", err)
	}
	return tags, nil
}
