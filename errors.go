package pemkit

import "errors"

var (
	// ErrNoPEMBlock means the input contained no PEM armor at all.
	ErrNoPEMBlock = errors.New("no PEM block found")

	// ErrInvalidKeyFormat means the PEM tag was unrecognized, a
	// generic tag's structure contained no known algorithm OID, or an
	// accessor was called on a key of a different type or standard.
	ErrInvalidKeyFormat = errors.New("invalid key format")

	// ErrNoKeyMaterial means a key classified as EC or Ed25519 carries
	// no bit string or octet string payload anywhere in its structure.
	ErrNoKeyMaterial = errors.New("no key material found in key structure")
)
