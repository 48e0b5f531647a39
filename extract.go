package pemkit

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"

	"github.com/sensiblebit/pemkit/internal/asn1tree"
)

// ECPrivateKey returns the raw PKCS#8 payload of an EC private key.
// The whole decoded structure is the relevant content for this format;
// no tree search is needed.
func (k *Key) ECPrivateKey() ([]byte, error) {
	if err := k.expect(PKCS8, ECPrivate); err != nil {
		return nil, err
	}
	return k.block.Bytes, nil
}

// ECPublicKey returns the first bit-string or octet-string payload in
// an EC public key's structure, searched depth first.
func (k *Key) ECPublicKey() ([]byte, error) {
	if err := k.expect(PKCS8, ECPublic); err != nil {
		return nil, err
	}
	return firstKeyMaterial(k.tree)
}

// Ed25519PrivateKey returns the raw PKCS#8 payload of an Ed25519
// private key.
func (k *Key) Ed25519PrivateKey() ([]byte, error) {
	if err := k.expect(PKCS8, Ed25519Private); err != nil {
		return nil, err
	}
	return k.block.Bytes, nil
}

// Ed25519PublicKey returns the first bit-string or octet-string
// payload in an Ed25519 public key's structure, searched depth first.
func (k *Key) Ed25519PublicKey() ([]byte, error) {
	if err := k.expect(PKCS8, Ed25519Public); err != nil {
		return nil, err
	}
	return firstKeyMaterial(k.tree)
}

// RSAPublicKey decodes the key through the standard library's RSA
// parsers, picking the PKCS#1 or PKIX decoder based on the standard
// recorded at parse time. It is the only accessor returning a
// structured key rather than raw bytes.
func (k *Key) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.keyType != RSAPublic {
		return nil, fmt.Errorf("%w: key is a %s, not an RSA public key", ErrInvalidKeyFormat, k.keyType)
	}

	switch k.standard {
	case PKCS1:
		pub, err := x509.ParsePKCS1PublicKey(k.block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing PKCS#1 RSA public key: %w", err)
		}
		return pub, nil
	default:
		pub, err := x509.ParsePKIXPublicKey(k.block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing PKCS#8 RSA public key: %w", err)
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: PKIX structure holds a %T, not an RSA key", ErrInvalidKeyFormat, pub)
		}
		return rsaPub, nil
	}
}

// FromRSAComponents builds an RSA public key from big-endian modulus
// and exponent bytes, re-encodes it as PKIX PEM, and runs it through
// the full parse pipeline. A key built from components is therefore
// structurally identical to one built by parsing the same key's PEM.
func FromRSAComponents(modulus, exponent []byte) (*Key, error) {
	n := new(big.Int).SetBytes(modulus)
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: RSA modulus must be positive", ErrInvalidKeyFormat)
	}
	e := new(big.Int).SetBytes(exponent)
	if e.Sign() <= 0 || e.BitLen() > 31 {
		return nil, fmt.Errorf("%w: RSA public exponent out of range", ErrInvalidKeyFormat)
	}

	der, err := x509.MarshalPKIXPublicKey(&rsa.PublicKey{N: n, E: int(e.Int64())})
	if err != nil {
		return nil, fmt.Errorf("marshaling RSA public key: %w", err)
	}
	return Parse(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

// expect revalidates the key's standard and type before an accessor
// returns material, making each accessor a checked narrowing rather
// than a cast.
func (k *Key) expect(standard Standard, keyType KeyType) error {
	if k.standard != standard || k.keyType != keyType {
		return fmt.Errorf("%w: key is %s %s, accessor requires %s %s",
			ErrInvalidKeyFormat, k.standard, k.keyType, standard, keyType)
	}
	return nil
}

// firstKeyMaterial returns the payload of the first bit string or
// octet string found by a depth-first walk: each node is examined
// before its siblings, and sequence children are searched in order.
func firstKeyMaterial(nodes []asn1tree.Node) ([]byte, error) {
	if material, ok := findKeyMaterial(nodes); ok {
		return material, nil
	}
	return nil, ErrNoKeyMaterial
}

func findKeyMaterial(nodes []asn1tree.Node) ([]byte, bool) {
	for _, node := range nodes {
		switch node.Kind {
		case asn1tree.KindBitString, asn1tree.KindOctetString:
			return node.Bytes, true
		case asn1tree.KindSequence:
			if material, ok := findKeyMaterial(node.Children); ok {
				return material, true
			}
		}
	}
	return nil, false
}
