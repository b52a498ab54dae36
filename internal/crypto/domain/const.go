package domain

// Algorithm represents the cryptographic algorithm used for key wrapping.
//
// All supported algorithms provide Authenticated Encryption with Associated Data
// (AEAD), ensuring both confidentiality and authenticity of wrapped key material.
// The service only ever encrypts small key blobs with these ciphers; content
// encryption happens client-side.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// Uses a 256-bit key, a 12-byte random nonce per encryption, and a 16-byte
	// authentication tag. Preferred on hardware with AES-NI acceleration.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	//
	// Uses a 256-bit key, a 12-byte random nonce per encryption, and a 16-byte
	// authentication tag. Constant-time in software; preferred on platforms
	// without AES hardware acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)
