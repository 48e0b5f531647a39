package main

import (
	"github.com/spf13/cobra"

	"github.com/sensiblebit/pemkit/internal"
)

var (
	logLevel     string
	logFormat    string
	passwordList string
	passwordFile string
)

var rootCmd = &cobra.Command{
	Use:   "pemkit",
	Short: "PEM key identification tool",
	Long: "Identify PEM-encoded keys: algorithm family (RSA, ECDSA, Ed25519), PKCS#1 vs PKCS#8 " +
		"encapsulation, and private/public visibility. Also reads keys out of PKCS#7, PKCS#12, " +
		"and JKS containers.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetupLogger(logLevel, logFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().StringVarP(&passwordList, "passwords", "p", "", "Comma-separated passwords for PKCS#12/JKS containers")
	rootCmd.PersistentFlags().StringVar(&passwordFile, "password-file", "", "File containing passwords, one per line")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(keygenCmd)
}
