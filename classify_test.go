package pemkit

import (
	"encoding/asn1"
	"testing"

	"github.com/sensiblebit/pemkit/internal/asn1tree"
)

func mustDecode(t *testing.T, der []byte) []asn1tree.Node {
	t.Helper()
	nodes, err := asn1tree.Decode(der)
	if err != nil {
		t.Fatal(err)
	}
	return nodes
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	der, err := asn1.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return der
}

func TestClassify_BareOID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		oid  asn1.ObjectIdentifier
		want classification
	}{
		{"EC", asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}, classEC},
		{"RSA", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}, classRSA},
		{"Ed25519", asn1.ObjectIdentifier{1, 3, 101, 112}, classEd25519},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			nodes := mustDecode(t, mustMarshal(t, tt.oid))
			class, ok := classify(nodes)
			if !ok || class != tt.want {
				t.Errorf("classify = (%v, %v), want (%v, true)", class, ok, tt.want)
			}
		})
	}
}

func TestClassify_DeeplyNestedOID(t *testing.T) {
	// WHY: PKCS#8 wraps the algorithm OID at varying depths depending
	// on the structure; classification must find it at any nesting
	// level, not just immediate children.
	t.Parallel()
	type level3 struct{ OID asn1.ObjectIdentifier }
	type level2 struct{ Inner level3 }
	type level1 struct{ Inner level2 }

	nodes := mustDecode(t, mustMarshal(t, level1{level2{level3{asn1.ObjectIdentifier{1, 3, 101, 112}}}}))
	class, ok := classify(nodes)
	if !ok || class != classEd25519 {
		t.Errorf("classify = (%v, %v), want (classEd25519, true)", class, ok)
	}
}

func TestClassify_PriorityOrderWithinSequence(t *testing.T) {
	// WHY: A structure improbably embedding OIDs for two algorithms
	// must classify deterministically: EC beats RSA beats Ed25519
	// regardless of document order within the sequence.
	t.Parallel()
	type twoOIDs struct{ A, B asn1.ObjectIdentifier }

	rsaOID := asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	ecOID := asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	edOID := asn1.ObjectIdentifier{1, 3, 101, 112}

	tests := []struct {
		name string
		v    twoOIDs
		want classification
	}{
		{"RSA then EC", twoOIDs{rsaOID, ecOID}, classEC},
		{"Ed25519 then RSA", twoOIDs{edOID, rsaOID}, classRSA},
		{"Ed25519 then EC", twoOIDs{edOID, ecOID}, classEC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			class, ok := classify(mustDecode(t, mustMarshal(t, tt.v)))
			if !ok || class != tt.want {
				t.Errorf("classify = (%v, %v), want (%v, true)", class, ok, tt.want)
			}
		})
	}
}

func TestClassify_LeftmostSequenceWinsAcrossSiblings(t *testing.T) {
	// WHY: Across siblings, document order wins: the leftmost sequence
	// is searched fully, including its recursion, before the next
	// sibling is examined.
	t.Parallel()
	type wrapped struct{ Inner struct{ OID asn1.ObjectIdentifier } }

	var first wrapped
	first.Inner.OID = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1} // RSA, nested
	der := mustMarshal(t, first)
	der = append(der, mustMarshal(t, asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1})...) // EC, bare sibling

	class, ok := classify(mustDecode(t, der))
	if !ok || class != classRSA {
		t.Errorf("classify = (%v, %v), want (classRSA, true): leftmost sibling must win", class, ok)
	}
}

func TestClassify_ImmediateChildrenBeforeRecursion(t *testing.T) {
	// WHY: A known OID that is an immediate child short-circuits; the
	// recursion into nested sequences must not run first and find a
	// different algorithm.
	t.Parallel()
	type mixed struct {
		Nested struct{ OID asn1.ObjectIdentifier }
		Direct asn1.ObjectIdentifier
	}

	var v mixed
	v.Nested.OID = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}        // EC, one level down
	v.Direct = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}        // RSA, immediate
	class, ok := classify(mustDecode(t, mustMarshal(t, v)))
	if !ok || class != classRSA {
		t.Errorf("classify = (%v, %v), want (classRSA, true): immediate child must win", class, ok)
	}
}

func TestClassify_NoKnownOID(t *testing.T) {
	t.Parallel()
	type noOID struct {
		A int
		B []byte
	}
	if _, ok := classify(mustDecode(t, mustMarshal(t, noOID{A: 1, B: []byte{0x01}}))); ok {
		t.Error("expected no classification for a tree without known OIDs")
	}

	// Unrelated OIDs must not match either.
	if _, ok := classify(mustDecode(t, mustMarshal(t, asn1.ObjectIdentifier{2, 5, 4, 3}))); ok {
		t.Error("expected no classification for an unrelated OID")
	}
}

func TestContainsECPublicKeyOID(t *testing.T) {
	// WHY: The shallow EC check behind the "PUBLIC KEY" fast path only
	// looks at the top level and one level down; anything deeper goes
	// through full classification instead.
	t.Parallel()
	ecOID := asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

	type oneDeep struct{ OID asn1.ObjectIdentifier }
	type twoDeep struct{ Inner oneDeep }

	tests := []struct {
		name string
		der  []byte
		want bool
	}{
		{"bare top-level OID", mustMarshal(t, ecOID), true},
		{"one level nested", mustMarshal(t, oneDeep{ecOID}), true},
		{"two levels nested", mustMarshal(t, twoDeep{oneDeep{ecOID}}), false},
		{"unrelated OID", mustMarshal(t, oneDeep{asn1.ObjectIdentifier{1, 3, 101, 112}}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := containsECPublicKeyOID(mustDecode(t, tt.der)); got != tt.want {
				t.Errorf("containsECPublicKeyOID = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyTypeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		class   classification
		private bool
		want    KeyType
	}{
		{classEC, true, ECPrivate},
		{classEC, false, ECPublic},
		{classEd25519, true, Ed25519Private},
		{classEd25519, false, Ed25519Public},
		{classRSA, true, RSAPrivate},
		{classRSA, false, RSAPublic},
	}
	for _, tt := range tests {
		if got := keyTypeFor(tt.class, tt.private); got != tt.want {
			t.Errorf("keyTypeFor(%v, %v) = %s, want %s", tt.class, tt.private, got, tt.want)
		}
	}
}
