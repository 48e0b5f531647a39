package pemkit

import (
	"encoding/asn1"

	"github.com/sensiblebit/pemkit/internal/asn1tree"
)

// Algorithm OIDs embedded in PKCS#8 and SubjectPublicKeyInfo
// structures.
var (
	oidECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidRSA         = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	oidEd25519     = asn1.ObjectIdentifier{1, 3, 101, 112}
)

// classification narrows a key to its algorithm family before the
// private/public split is known. It is produced by classify and
// consumed immediately by the tag dispatcher; it is never stored.
type classification int

const (
	classEC classification = iota
	classEd25519
	classRSA
)

// classificationOrder is the fixed priority used when a structure
// improbably embeds OIDs for more than one algorithm: EC wins over
// RSA, RSA over Ed25519. Maliciously crafted input depends on this
// tie-break for deterministic results.
var classificationOrder = []struct {
	oid   asn1.ObjectIdentifier
	class classification
}{
	{oidECPublicKey, classEC},
	{oidRSA, classRSA},
	{oidEd25519, classEd25519},
}

// classify searches a node list, in document order, for a known
// algorithm OID. For each sequence the immediate children are checked
// first; only when none matches does the search recurse into them.
// The leftmost match wins across siblings. Bare OID leaves match
// directly; every other node kind is skipped.
func classify(nodes []asn1tree.Node) (classification, bool) {
	for _, node := range nodes {
		switch node.Kind {
		case asn1tree.KindSequence:
			if class, ok := classifyChildren(node.Children); ok {
				return class, true
			}
			if class, ok := classify(node.Children); ok {
				return class, true
			}
		case asn1tree.KindObjectIdentifier:
			if class, ok := matchOID(node.OID); ok {
				return class, true
			}
		}
	}
	return 0, false
}

// classifyChildren checks a sequence's immediate children for a known
// OID, in classificationOrder priority.
func classifyChildren(children []asn1tree.Node) (classification, bool) {
	for _, want := range classificationOrder {
		for _, child := range children {
			if child.Kind == asn1tree.KindObjectIdentifier && child.OID.Equal(want.oid) {
				return want.class, true
			}
		}
	}
	return 0, false
}

func matchOID(oid asn1.ObjectIdentifier) (classification, bool) {
	for _, want := range classificationOrder {
		if oid.Equal(want.oid) {
			return want.class, true
		}
	}
	return 0, false
}

// containsECPublicKeyOID reports whether the EC public key OID appears
// at the top level of the tree or as an immediate child of a top-level
// sequence. This shallow check lets "PUBLIC KEY" blocks short-circuit
// to the EC type without a full classification pass.
func containsECPublicKeyOID(nodes []asn1tree.Node) bool {
	for _, node := range nodes {
		switch node.Kind {
		case asn1tree.KindObjectIdentifier:
			if node.OID.Equal(oidECPublicKey) {
				return true
			}
		case asn1tree.KindSequence:
			for _, child := range node.Children {
				if child.Kind == asn1tree.KindObjectIdentifier && child.OID.Equal(oidECPublicKey) {
					return true
				}
			}
		}
	}
	return false
}

// keyTypeFor combines an algorithm classification with the
// private/public split implied by the PEM tag.
func keyTypeFor(class classification, private bool) KeyType {
	switch class {
	case classEC:
		if private {
			return ECPrivate
		}
		return ECPublic
	case classEd25519:
		if private {
			return Ed25519Private
		}
		return Ed25519Public
	default:
		if private {
			return RSAPrivate
		}
		return RSAPublic
	}
}
