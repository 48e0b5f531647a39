package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sensiblebit/pemkit/internal"
)

var inspectFormat = newEnumValue("text", "text", "json", "yaml")

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Identify the keys in a file",
	Long: "Show what each key in a file is: algorithm, encapsulation standard, visibility, " +
		"bit length, and fingerprint. Works on PEM files, bare DER, and PKCS#7/PKCS#12/JKS containers.",
	Example: `  pemkit inspect key.pem
  pemkit inspect bundle.p12 -p secret
  pemkit inspect cert.pem --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().VarP(inspectFormat, "format", "f", "Output format: text, json, or yaml")
	registerCompletion(inspectCmd, "format", inspectFormat.completion())
}

func runInspect(cmd *cobra.Command, args []string) error {
	passwords, err := internal.ProcessPasswords(passwordList, passwordFile)
	if err != nil {
		return fmt.Errorf("loading passwords: %w", err)
	}

	results, err := internal.InspectFile(args[0], passwords)
	if err != nil {
		return err
	}

	output, err := internal.FormatInspectResults(results, inspectFormat.String())
	if err != nil {
		return err
	}

	fmt.Print(output)
	return nil
}
