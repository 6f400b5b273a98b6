package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relarchive/relarchive/archive"
)

func init() {
	rootCmd.AddCommand(newBuildCmd())
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <input.json> <output.zarc>",
		Short: "Serialize a JSON object of string pairs into a .zarc archive",
		Long: `The build command reads a JSON object mapping strings to strings and
serializes it as both an archived B-tree map and an archived SwissTable into
a single .zarc output file.

Example:
  zarchivectl build pairs.json out.zarc`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args)
		},
	}
	return cmd
}

func runBuild(args []string) error {
	inputPath, outputPath := args[0], args[1]

	printVerbose("reading %s\n", inputPath)
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var pairs map[string]string
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return fmt.Errorf("parse input as a JSON object of strings: %w", err)
	}

	for k, v := range pairs {
		if len(k) > demoKeyWidth || len(v) > demoValWidth {
			return fmt.Errorf("entry %q exceeds the demo's fixed key/value width (%d/%d bytes)", k, demoKeyWidth, demoValWidth)
		}
	}

	cfg := archive.DefaultConfig()
	buf, _, err := buildArchive(cfg, pairs)
	if err != nil {
		return fmt.Errorf("build archive: %w", err)
	}

	if err := os.WriteFile(outputPath, buf, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	result := map[string]any{
		"input":   inputPath,
		"output":  outputPath,
		"entries": len(pairs),
		"bytes":   len(buf),
	}
	if jsonOut {
		return printJSON(result)
	}
	printInfo("built %s: %d entries, %d bytes\n", outputPath, len(pairs), len(buf))
	return nil
}
