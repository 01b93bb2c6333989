// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd009-technology-stack R4.3-R4.8.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-impact/pkg/impact"
	"github.com/petar-djukic/go-impact/pkg/types"
)

// newAnalyzeCmd creates the "analyze" command.
func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the impact of an edited file",
		Long:  "Analyze reads the file, resolves its baseline, computes the declaration-level diff, and prints the impact report and confidence score as JSON.",
		RunE:  runAnalyze,
	}

	cmd.Flags().StringP("file", "f", "", "Path of the edited file (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

// runAnalyze executes one analysis and prints the result.
func runAnalyze(cmd *cobra.Command, args []string) error {
	filePath, _ := cmd.Flags().GetString("file")

	text, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}

	diags := ""
	if diagPath := viper.GetString("diagnostics"); diagPath != "" {
		raw, err := os.ReadFile(diagPath)
		if err != nil {
			return fmt.Errorf("reading diagnostics %s: %w", diagPath, err)
		}
		diags = string(raw)
	}

	cfg := impact.Config{
		WorkDir:      viper.GetString("workdir"),
		BaselineMode: impact.Mode(viper.GetString("baseline-mode")),
		TargetRef:    viper.GetString("target-ref"),
		GitEnabled:   !viper.GetBool("no-git"),
		CacheEnabled: !viper.GetBool("no-cache"),
		ScanTimeout:  viper.GetDuration("scan-timeout"),
		Diagnostics:  diags,
	}

	analyzer, err := impact.New(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	analysis, err := analyzer.Analyze(ctx, filePath, types.SourceVersion{
		Text:   string(text),
		Origin: types.OriginDisk,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	printAnalysis(analysis)
	return nil
}

// printAnalysis outputs the analysis as JSON to stdout.
func printAnalysis(a *impact.Analysis) {
	out, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling analysis: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
