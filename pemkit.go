// Package pemkit identifies PEM-encoded cryptographic keys. Given an
// in-memory PEM blob it determines the algorithm family (RSA, elliptic
// curve, or Ed25519), the encapsulation standard (PKCS#1 or PKCS#8),
// and whether the key is private or public, then exposes the raw key
// material needed by signing and verification code.
//
// The PEM tag alone is often not enough: "PRIVATE KEY", "PUBLIC KEY",
// and "CERTIFICATE" are generic containers shared by every algorithm,
// so classification walks the decoded ASN.1 tree looking for a known
// algorithm OID. Legacy PKCS#1-era tags ("RSA PRIVATE KEY", "EC
// PRIVATE KEY", ...) fully determine the key without tree inspection;
// a PKCS#1 RSA public key in fact contains no algorithm OID at all.
package pemkit

import (
	"encoding/pem"
	"fmt"

	"github.com/sensiblebit/pemkit/internal/asn1tree"
)

// KeyType identifies the algorithm family and visibility of a key.
// Exactly one applies to any parsed key.
type KeyType int

const (
	ECPublic KeyType = iota
	ECPrivate
	RSAPublic
	RSAPrivate
	Ed25519Public
	Ed25519Private
)

// String returns a human-readable name for the key type.
func (t KeyType) String() string {
	switch t {
	case ECPublic:
		return "EC public key"
	case ECPrivate:
		return "EC private key"
	case RSAPublic:
		return "RSA public key"
	case RSAPrivate:
		return "RSA private key"
	case Ed25519Public:
		return "Ed25519 public key"
	case Ed25519Private:
		return "Ed25519 private key"
	default:
		return "unknown"
	}
}

// Algorithm returns the algorithm family name without the
// private/public qualifier.
func (t KeyType) Algorithm() string {
	switch t {
	case ECPublic, ECPrivate:
		return "ECDSA"
	case RSAPublic, RSAPrivate:
		return "RSA"
	case Ed25519Public, Ed25519Private:
		return "Ed25519"
	default:
		return "unknown"
	}
}

// Private reports whether the key type is a private key.
func (t KeyType) Private() bool {
	switch t {
	case ECPrivate, RSAPrivate, Ed25519Private:
		return true
	}
	return false
}

// Standard identifies the key encapsulation standard.
type Standard int

const (
	// PKCS1 is the legacy algorithm-specific encapsulation, used by
	// "RSA PRIVATE KEY", "RSA PUBLIC KEY", and SEC1 "EC PRIVATE KEY"
	// blocks.
	PKCS1 Standard = iota
	// PKCS8 is the generic container wrapping an algorithm OID plus
	// algorithm-specific payload, used by "PRIVATE KEY" and
	// "PUBLIC KEY" blocks.
	PKCS8
)

// String returns the standard's conventional name.
func (s Standard) String() string {
	switch s {
	case PKCS1:
		return "PKCS#1"
	case PKCS8:
		return "PKCS#8"
	default:
		return "unknown"
	}
}

// Key is a parsed, classified PEM key. It is immutable after
// construction and safe for concurrent reads; accessors revalidate the
// key's type and standard before returning material.
type Key struct {
	block    *pem.Block
	tree     []asn1tree.Node
	keyType  KeyType
	standard Standard
}

// Parse decodes the first PEM block in pemData and classifies it.
// Construction is all-or-nothing: any decode or classification failure
// returns an error and no partial key.
func Parse(pemData []byte) (*Key, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, ErrNoPEMBlock
	}
	return parseBlock(block)
}

// ParseAll decodes every PEM block in pemData and returns the keys
// found. Blocks with unsupported tags are skipped rather than failing
// the whole bundle, matching how mixed cert-and-key PEM files are
// handled throughout the ecosystem. An error is returned only when no
// block yields a key.
func ParseAll(pemData []byte) ([]*Key, error) {
	var keys []*Key
	rest := pemData
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		key, err := parseBlock(block)
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no recognizable keys in PEM data", ErrInvalidKeyFormat)
	}
	return keys, nil
}

// parseBlock is the tag dispatcher. Specific legacy tags determine the
// key type and standard outright; generic tags hand off to the
// classifier, which searches the ASN.1 tree for a known algorithm OID.
func parseBlock(block *pem.Block) (*Key, error) {
	tree, err := asn1tree.Decode(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing key structure: %w", err)
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		return newKey(block, tree, RSAPrivate, PKCS1), nil
	case "RSA PUBLIC KEY":
		return newKey(block, tree, RSAPublic, PKCS1), nil
	case "EC PRIVATE KEY":
		return newKey(block, tree, ECPrivate, PKCS1), nil
	case "PUBLIC KEY", "PRIVATE KEY", "CERTIFICATE":
		if block.Type == "PUBLIC KEY" && containsECPublicKeyOID(tree) {
			return newKey(block, tree, ECPublic, PKCS8), nil
		}
		class, ok := classify(tree)
		if !ok {
			return nil, fmt.Errorf("%w: no known algorithm identifier in %q block", ErrInvalidKeyFormat, block.Type)
		}
		// Certificates are not given their own standard: the
		// SubjectPublicKeyInfo they wrap classifies like a PKCS#8
		// public key, so they fall back to PKCS#8 here.
		private := block.Type == "PRIVATE KEY"
		return newKey(block, tree, keyTypeFor(class, private), PKCS8), nil
	default:
		return nil, fmt.Errorf("%w: unsupported PEM block type %q", ErrInvalidKeyFormat, block.Type)
	}
}

func newKey(block *pem.Block, tree []asn1tree.Node, keyType KeyType, standard Standard) *Key {
	return &Key{block: block, tree: tree, keyType: keyType, standard: standard}
}

// KeyType returns the key's algorithm family and visibility.
func (k *Key) KeyType() KeyType { return k.keyType }

// Standard returns the key's encapsulation standard.
func (k *Key) Standard() Standard { return k.standard }

// Tag returns the PEM block tag the key was parsed from.
func (k *Key) Tag() string { return k.block.Type }

// PEM re-encodes the key as PEM armor.
func (k *Key) PEM() string {
	return string(pem.EncodeToMemory(k.block))
}

// Raw returns the key's decoded DER payload.
func (k *Key) Raw() []byte { return k.block.Bytes }
