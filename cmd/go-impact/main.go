// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-impact is a test CLI for the go-impact library.
// Implements: prd009-technology-stack R4.1-R4.10;
//
//	docs/ARCHITECTURE § Project Structure.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "go-impact",
		Short: "Change impact analysis for single-file edits",
		Long:  "go-impact diffs an edited file against its baseline at the declaration level, discovers downstream files and tests, and scores confidence in the change.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("workdir", ".", "Repository root directory")
	rootCmd.PersistentFlags().String("baseline-mode", "local", "Baseline mode: local (HEAD) or pr (merge-base)")
	rootCmd.PersistentFlags().String("target-ref", "main", "Merge-base target ref for pr mode")
	rootCmd.PersistentFlags().Bool("no-git", false, "Disable version-control baselines")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable session baseline caches")
	rootCmd.PersistentFlags().String("diagnostics", "", "File holding compiler/linter output in file:line:col format")
	rootCmd.PersistentFlags().Duration("scan-timeout", 0, "Bound on each dependency scan (0 = library default)")

	// Bind flags to viper.
	viper.BindPFlag("workdir", rootCmd.PersistentFlags().Lookup("workdir"))
	viper.BindPFlag("baseline-mode", rootCmd.PersistentFlags().Lookup("baseline-mode"))
	viper.BindPFlag("target-ref", rootCmd.PersistentFlags().Lookup("target-ref"))
	viper.BindPFlag("no-git", rootCmd.PersistentFlags().Lookup("no-git"))
	viper.BindPFlag("no-cache", rootCmd.PersistentFlags().Lookup("no-cache"))
	viper.BindPFlag("diagnostics", rootCmd.PersistentFlags().Lookup("diagnostics"))
	viper.BindPFlag("scan-timeout", rootCmd.PersistentFlags().Lookup("scan-timeout"))

	// Env vars: GO_IMPACT_WORKDIR, GO_IMPACT_TARGET_REF, etc.
	viper.SetEnvPrefix("GO_IMPACT")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".go-impact")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-impact version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("go-impact %s\n", version)
		},
	}
}
