package gcov

import "encoding/binary"

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func words(vs ...uint32) []byte {
	var b []byte
	for _, v := range vs {
		b = append(b, le32(v)...)
	}
	return b
}

// gccString encodes s the way a notes/data file would: a word count
// followed by that many NUL-padded words.
func gccString(s string) []byte {
	n := (len(s) + 3) / 4
	padded := make([]byte, n*4)
	copy(padded, s)
	return append(le32(uint32(n)), padded...)
}
