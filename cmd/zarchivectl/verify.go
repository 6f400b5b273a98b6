package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relarchive/relarchive/access"
	"github.com/relarchive/relarchive/archive"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file.zarc>",
		Short: "Validate a .zarc archive's structure without printing its contents",
		Long: `The verify command runs a full structural validation pass -- bounds,
alignment, cycle, and tail-mirror checks -- over both containers in a .zarc
file and exits nonzero if either fails. Unlike "dump", it prints nothing
about the containers' contents.

Example:
  zarchivectl verify out.zarc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

func runVerify(args []string) error {
	path := args[0]
	cfg := archive.DefaultConfig()

	arc, err := access.Open(path, cfg)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer arc.Close()

	buf := arc.Bytes()
	hdr, err := parseHeader(buf, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	m := demoMap()
	if _, err := access.CheckedBTree(buf, cfg, m, hdr.btreeOffset); err != nil {
		return reportVerifyFailure(path, "btree", err)
	}

	t, err := demoTable()
	if err != nil {
		return err
	}
	if _, err := access.CheckedTable(buf, cfg, t, hdr.tableOffset); err != nil {
		return reportVerifyFailure(path, "swisstable", err)
	}

	result := map[string]any{"file": path, "valid": true}
	if jsonOut {
		return printJSON(result)
	}
	printInfo("%s: valid\n", path)
	return nil
}

func reportVerifyFailure(path, container string, err error) error {
	if jsonOut {
		_ = printJSON(map[string]any{"file": path, "valid": false, "container": container, "error": err.Error()})
	}
	return fmt.Errorf("%s: %s validation failed: %w", path, container, err)
}
