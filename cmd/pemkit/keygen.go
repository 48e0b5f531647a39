package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sensiblebit/pemkit/internal"
)

var (
	keygenAlgorithm = newEnumValue("ecdsa", "rsa", "ecdsa", "ed25519")
	keygenStandard  = newEnumValue("pkcs8", "pkcs8", "pkcs1")
	keygenCurve     = newEnumValue("P-256", "P-256", "P-384", "P-521")
	keygenBits      int
	keygenOutPath   string
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate key pairs",
	Long: `Generate a new key pair (RSA, ECDSA, or Ed25519).

Output is printed to stdout by default (PEM format). Use -o to write files to a directory instead.`,
	Example: `  pemkit keygen
  pemkit keygen > key.pem
  pemkit keygen --algorithm rsa --bits 2048 -o ./keys
  pemkit keygen --standard pkcs1`,
	Args: cobra.NoArgs,
	RunE: runKeygen,
}

func init() {
	keygenCmd.Flags().VarP(keygenAlgorithm, "algorithm", "a", "Key algorithm: rsa, ecdsa, or ed25519")
	keygenCmd.Flags().Var(keygenStandard, "standard", "Private key encapsulation: pkcs8 or pkcs1 (legacy)")
	keygenCmd.Flags().Var(keygenCurve, "curve", "ECDSA curve: P-256, P-384, or P-521")
	keygenCmd.Flags().IntVarP(&keygenBits, "bits", "b", 4096, "RSA key size in bits")
	keygenCmd.Flags().StringVarP(&keygenOutPath, "out-path", "o", "", "Output directory (default: print to stdout)")

	registerCompletion(keygenCmd, "algorithm", keygenAlgorithm.completion())
	registerCompletion(keygenCmd, "standard", keygenStandard.completion())
	registerCompletion(keygenCmd, "curve", keygenCurve.completion())
	registerCompletion(keygenCmd, "out-path", directoryCompletion)
}

func runKeygen(cmd *cobra.Command, args []string) error {
	result, err := internal.GenerateKeyFiles(internal.KeygenOptions{
		Algorithm: keygenAlgorithm.String(),
		Bits:      keygenBits,
		Curve:     keygenCurve.String(),
		Standard:  keygenStandard.String(),
		OutPath:   keygenOutPath,
	})
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	if keygenOutPath == "" {
		fmt.Print(result.KeyPEM)
		fmt.Print(result.PubPEM)
	} else {
		fmt.Fprintf(os.Stderr, "Private key: %s\n", result.KeyFile)
		fmt.Fprintf(os.Stderr, "Public key:  %s\n", result.PubFile)
	}
	return nil
}
