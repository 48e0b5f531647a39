// Package asn1tree decodes DER data into a generic tree of typed ASN.1
// nodes. Unlike encoding/asn1's struct-directed unmarshaling, the tree
// form makes no assumptions about the shape of the input, which lets
// callers search arbitrarily nested structures for identifying content
// such as algorithm OIDs.
package asn1tree

import (
	"encoding/asn1"
	"fmt"
)

// Kind identifies the ASN.1 node variant held by a Node.
type Kind int

const (
	// KindSequence is a universal SEQUENCE; children are decoded.
	KindSequence Kind = iota
	// KindSet is a universal SET; children are decoded.
	KindSet
	// KindObjectIdentifier is an OBJECT IDENTIFIER leaf.
	KindObjectIdentifier
	// KindBitString is a BIT STRING leaf; Bytes excludes the
	// unused-bits octet.
	KindBitString
	// KindOctetString is an OCTET STRING leaf.
	KindOctetString
	// KindInteger is an INTEGER leaf; Bytes holds the raw content.
	KindInteger
	// KindOther is any other element, kept as an opaque leaf. This
	// includes context-specific and application tags, constructed or
	// not; their content is not interpreted.
	KindOther
)

// Node is one element of a decoded ASN.1 tree.
type Node struct {
	Kind     Kind
	OID      asn1.ObjectIdentifier // set for KindObjectIdentifier
	Bytes    []byte                // content for leaf kinds
	Children []Node                // set for KindSequence and KindSet
}

// Decode parses a concatenation of DER elements into a node list.
// Sequences and sets are decoded recursively; every other element
// becomes a leaf. Decoding is all-or-nothing: any malformed element,
// at any depth, fails the whole call.
func Decode(der []byte) ([]Node, error) {
	var nodes []Node
	rest := der
	for len(rest) > 0 {
		var raw asn1.RawValue
		var err error
		rest, err = asn1.Unmarshal(rest, &raw)
		if err != nil {
			return nil, fmt.Errorf("reading ASN.1 element: %w", err)
		}
		node, err := decodeElement(raw)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeElement(raw asn1.RawValue) (Node, error) {
	if raw.Class != asn1.ClassUniversal {
		return Node{Kind: KindOther, Bytes: raw.Bytes}, nil
	}

	switch raw.Tag {
	case asn1.TagSequence, asn1.TagSet:
		children, err := Decode(raw.Bytes)
		if err != nil {
			return Node{}, err
		}
		kind := KindSequence
		if raw.Tag == asn1.TagSet {
			kind = KindSet
		}
		return Node{Kind: kind, Children: children}, nil

	case asn1.TagOID:
		var oid asn1.ObjectIdentifier
		if _, err := asn1.Unmarshal(raw.FullBytes, &oid); err != nil {
			return Node{}, fmt.Errorf("reading object identifier: %w", err)
		}
		return Node{Kind: KindObjectIdentifier, OID: oid}, nil

	case asn1.TagBitString:
		// DER bit strings carry a leading octet counting unused
		// trailing bits; the payload follows it.
		if len(raw.Bytes) == 0 {
			return Node{}, fmt.Errorf("bit string with empty content")
		}
		return Node{Kind: KindBitString, Bytes: raw.Bytes[1:]}, nil

	case asn1.TagOctetString:
		return Node{Kind: KindOctetString, Bytes: raw.Bytes}, nil

	case asn1.TagInteger:
		return Node{Kind: KindInteger, Bytes: raw.Bytes}, nil

	default:
		return Node{Kind: KindOther, Bytes: raw.Bytes}, nil
	}
}
