package crypto

// zero overwrites key material after use. Go gives no guarantee the garbage
// collector won't have copied the slice already; this is best effort.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
