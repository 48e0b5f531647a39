package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sensiblebit/pemkit/internal"
)

var (
	scanDBPath  string
	scanOutPath string
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Scan and catalog keys",
	Long: "Scan a file or directory for keys in any supported encoding and catalog them by " +
		"fingerprint. Prints a summary of what was found. Use --out to persist the catalog.",
	Example: `  pemkit scan ./secrets
  pemkit scan ./secrets --db keys.db --out keys.db`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanDBPath, "db", "d", "", "Existing catalog database to load (default: start empty)")
	scanCmd.Flags().StringVarP(&scanOutPath, "out", "o", "", "Path to save the catalog database (default: discard)")
}

func runScan(cmd *cobra.Command, args []string) error {
	db, err := internal.NewDB(scanDBPath)
	if err != nil {
		return fmt.Errorf("initializing catalog: %w", err)
	}
	defer db.Close()

	passwords, err := internal.ProcessPasswords(passwordList, passwordFile)
	if err != nil {
		return fmt.Errorf("loading passwords: %w", err)
	}

	summary, err := internal.ScanPath(&internal.Config{
		InputPath: args[0],
		Passwords: passwords,
		DB:        db,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Scanned %d files: %d keys, %d new\n", summary.FilesScanned, summary.KeysFound, summary.KeysNew)
	for algorithm, n := range summary.ByAlgorithm {
		fmt.Printf("  %s: %d\n", algorithm, n)
	}

	if scanOutPath != "" {
		if err := db.SaveToDisk(scanOutPath); err != nil {
			return err
		}
	}
	return nil
}
