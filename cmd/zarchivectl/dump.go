package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relarchive/relarchive/access"
	"github.com/relarchive/relarchive/archive"
)

var dumpLimit int

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpLimit, "limit", 20, "maximum number of B-tree entries to print")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file.zarc>",
		Short: "Validate a .zarc archive and print a summary of its contents",
		Long: `The dump command validates a .zarc file the same way "verify" does, then
walks the B-tree in key order printing up to --limit entries and reports the
SwissTable's declared length.

Example:
  zarchivectl dump out.zarc
  zarchivectl dump out.zarc --limit 100 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
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
	btreeView, err := access.CheckedBTree(buf, cfg, m, hdr.btreeOffset)
	if err != nil {
		return fmt.Errorf("%s: btree validation failed: %w", path, err)
	}

	t, err := demoTable()
	if err != nil {
		return err
	}
	tableView, err := access.CheckedTable(buf, cfg, t, hdr.tableOffset)
	if err != nil {
		return fmt.Errorf("%s: swisstable validation failed: %w", path, err)
	}

	entries := make([]map[string]string, 0, dumpLimit)
	it := btreeView.Iterate()
	for len(entries) < dumpLimit {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		entries = append(entries, map[string]string{"key": k, "value": v})
	}

	result := map[string]any{
		"file":          path,
		"bytes":         len(buf),
		"table_len":     tableView.Len(),
		"entries_shown": len(entries),
		"entries":       entries,
	}

	if jsonOut {
		return printJSON(result)
	}

	printInfo("%s (%d bytes)\n", path, len(buf))
	printInfo("swisstable length: %d\n", tableView.Len())
	printInfo("b-tree entries (ascending key order, first %d):\n\n", dumpLimit)
	for _, e := range entries {
		printInfo("  %s = %s\n", e["key"], e["value"])
	}
	return nil
}
