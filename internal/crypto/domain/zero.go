package domain

// Zero overwrites a byte slice in place so key material (decrypted DEKs,
// derived wrap keys) does not linger in memory after use. Safe on nil and
// empty slices.
func Zero(b []byte) {
	clear(b)
}
