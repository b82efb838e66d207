package wire

// EncodeKey packs a key into its wire form: the first byte lands in the
// high-order bits, so "TC0P" becomes 0x54433050. Only the first KeyLen
// bytes are used; missing bytes are zero. EncodeKey never fails and does
// not validate the character set, mirroring the controller's own behavior.
func EncodeKey(key string) uint32 {
	var code uint32
	for i := 0; i < KeyLen && i < len(key); i++ {
		code |= uint32(key[i]) << (8 * (KeyLen - 1 - i))
	}
	return code
}

// DecodeKey is the inverse of EncodeKey. For any four-byte key,
// DecodeKey(EncodeKey(key)) == key.
func DecodeKey(code uint32) string {
	b := [KeyLen]byte{
		byte(code >> 24),
		byte(code >> 16),
		byte(code >> 8),
		byte(code),
	}
	return string(b[:])
}

// ValidateKey checks that a key is exactly KeyLen printable ASCII bytes.
// The controller itself accepts arbitrary bytes; validation exists so
// malformed keys are rejected before a session call is spent on them.
func ValidateKey(key string) error {
	if len(key) != KeyLen {
		return &InvalidKeyError{Key: key, Reason: "must be exactly 4 characters"}
	}
	for i := 0; i < len(key); i++ {
		if key[i] < 0x20 || key[i] > 0x7E {
			return &InvalidKeyError{Key: key, Reason: "must be printable ASCII"}
		}
	}
	return nil
}
