package internal

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func sampleResults() []InspectResult {
	return []InspectResult{
		{
			Type:        "EC private key",
			Algorithm:   "ECDSA",
			Standard:    "PKCS#8",
			Visibility:  "private",
			PEMTag:      "PRIVATE KEY",
			BitLength:   256,
			Curve:       "P-256",
			Fingerprint: "deadbeef",
			Source:      "PEM",
		},
		{
			Type:       "RSA public key",
			Algorithm:  "RSA",
			Standard:   "PKCS#1",
			Visibility: "public",
			PEMTag:     "RSA PUBLIC KEY",
			BitLength:  2048,
		},
	}
}

func TestFormatInspectResults_JSON(t *testing.T) {
	// WHY: JSON output feeds scripts; it must round-trip back into the
	// same records, not just look plausible.
	t.Parallel()
	out, err := FormatInspectResults(sampleResults(), "json")
	if err != nil {
		t.Fatal(err)
	}

	var decoded []InspectResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 || decoded[0].Curve != "P-256" || decoded[1].BitLength != 2048 {
		t.Errorf("unexpected decode: %+v", decoded)
	}
}

func TestFormatInspectResults_YAML(t *testing.T) {
	t.Parallel()
	out, err := FormatInspectResults(sampleResults(), "yaml")
	if err != nil {
		t.Fatal(err)
	}

	var decoded []InspectResult
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 || decoded[0].Standard != "PKCS#8" {
		t.Errorf("unexpected decode: %+v", decoded)
	}
}

func TestFormatInspectResults_UnsupportedFormat(t *testing.T) {
	t.Parallel()
	if _, err := FormatInspectResults(sampleResults(), "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatText_PlainWhenNotAligned(t *testing.T) {
	// WHY: Piped text output must stay greppable: one "Label: value"
	// per line, records separated by blank lines, zero fields omitted.
	t.Parallel()
	out := formatText(sampleResults(), false)

	if !strings.Contains(out, "Type: EC private key\n") {
		t.Errorf("missing type line in:\n%s", out)
	}
	if !strings.Contains(out, "Curve: P-256\n") {
		t.Errorf("missing curve line in:\n%s", out)
	}
	if strings.Contains(out, "Curve: \n") {
		t.Errorf("empty curve field should be omitted:\n%s", out)
	}
	if !strings.Contains(out, "\n\n") {
		t.Errorf("records should be separated by a blank line:\n%s", out)
	}
}

func TestFormatText_AlignedUsesTabStops(t *testing.T) {
	t.Parallel()
	out := formatText(sampleResults()[:1], true)
	if !strings.Contains(out, "Type:") || !strings.Contains(out, "EC private key") {
		t.Errorf("aligned output missing content:\n%s", out)
	}
}
