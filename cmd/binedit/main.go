// Package main provides binedit, a command-line tool for inspecting and
// patching SIR0/MessageBin string tables: listing and editing individual
// slots, and exporting/importing whole files or whole folders through
// the CSV exchange contracts.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	messagebin "github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation"
	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/batch"
	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/tabular"
	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/translate"
)

var saveAs string

func main() {
	rootCmd := &cobra.Command{
		Use:   "binedit",
		Short: "Inspect and patch SIR0/MessageBin string tables.",
		Long: `binedit opens a MessageBin file, lets you read and rewrite its
string slots in place, and moves strings in and out of CSV for bulk
editing - either one file at a time or across a whole folder.`,
	}

	rootCmd.AddCommand(
		newListCmd(),
		newGetCmd(),
		newSetCmd(),
		newExportCmd(),
		newImportCmd(),
		newBatchExportCmd(),
		newBatchImportCmd(),
		newTranslateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file.bin>",
		Short: "List every string slot with its original index",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := messagebin.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			for _, e := range f.Entries() {
				fmt.Printf("%d\t%s\n", e.OriginalIndex, e.Text)
			}
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file.bin> <index>",
		Short: "Print the text at a given original index",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}

			f, err := messagebin.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			text, err := f.Text(index)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file.bin> <index> <text>",
		Short: "Rewrite the string slot at a given original index",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}

			f, err := messagebin.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			if err := f.SetText(index, args[2]); err != nil {
				return err
			}

			dest := saveAs
			if dest == "" {
				dest = args[0]
			}
			return f.Save(dest)
		},
	}
	cmd.Flags().StringVar(&saveAs, "save-as", "", "write the patched file to a different path instead of overwriting the input")
	return cmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.bin> <out.csv>",
		Short: "Export every string in a file to the single-column Entry CSV contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := messagebin.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			entries := f.Entries()
			cells := make([]tabular.Cell, len(entries))
			for i, e := range entries {
				cells[i] = tabular.TextCell(e.Text)
			}

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer func() { _ = out.Close() }()

			return tabular.CSVColumnCodec{W: out}.WriteEntries(cells)
		},
	}
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.bin> <in.csv>",
		Short: "Import a single-column Entry CSV back into a file's string slots, by position",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			in, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			cells, err := (tabular.CSVColumnCodec{R: in}).ReadEntries()
			if err != nil {
				return err
			}

			f, err := messagebin.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			entries := f.Entries()
			if len(cells) != len(entries) {
				return fmt.Errorf("csv has %d rows but file has %d string slots", len(cells), len(entries))
			}

			for i, cell := range cells {
				if err := f.SetText(entries[i].OriginalIndex, cell.Value); err != nil {
					return err
				}
			}

			dest := saveAs
			if dest == "" {
				dest = args[0]
			}
			return f.Save(dest)
		},
	}
	cmd.Flags().StringVar(&saveAs, "save-as", "", "write the patched file to a different path instead of overwriting the input")
	return cmd
}

func newBatchExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch-export <folder>",
		Short: "Export every *.bin file in a folder to an adjacent <basename>.csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return batch.DumpFolder(args[0])
		},
	}
}

func newTranslateCmd() *cobra.Command {
	var dictionaryPath string

	cmd := &cobra.Command{
		Use:   "translate <file.bin>",
		Short: "Replace Japanese text runs in a file's strings using a Source,Target dictionary CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			lookup, err := loadDictionary(dictionaryPath)
			if err != nil {
				return err
			}

			f, err := messagebin.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			entries := f.Entries()
			cells := make([]tabular.Cell, len(entries))
			for i, e := range entries {
				cells[i] = tabular.TextCell(e.Text)
			}

			translated, err := translate.SubstituteAll(context.Background(), cells, translate.MapTranslator{Lookup: lookup})
			if err != nil {
				return err
			}

			for i, e := range entries {
				if translated[i].Value == e.Text {
					continue
				}
				if err := f.SetText(e.OriginalIndex, translated[i].Value); err != nil {
					return err
				}
			}

			dest := saveAs
			if dest == "" {
				dest = args[0]
			}
			return f.Save(dest)
		},
	}
	cmd.Flags().StringVar(&dictionaryPath, "dictionary", "", "path to a Source,Target CSV of known translations (required)")
	cmd.Flags().StringVar(&saveAs, "save-as", "", "write the patched file to a different path instead of overwriting the input")
	_ = cmd.MarkFlagRequired("dictionary")
	return cmd
}

func loadDictionary(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) != 2 || records[0][0] != "Source" || records[0][1] != "Target" {
		return nil, fmt.Errorf("dictionary CSV must start with a Source,Target header")
	}

	lookup := make(map[string]string, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		lookup[rec[0]] = rec[1]
	}
	return lookup, nil
}

func newBatchImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch-import <folder>",
		Short: "Import every *.csv file in a folder back into its sibling .bin file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return batch.ImportFolder(args[0])
		},
	}
}
