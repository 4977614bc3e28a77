package common

// WipeByteArray overwrites buf with zeros. Used to scrub passwords from
// memory once they have been sent to the backend. Safe on nil slices.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
