package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/proteovis/proteovis/internal/grouper"
	"github.com/proteovis/proteovis/internal/ingest"
	"github.com/proteovis/proteovis/internal/store"
)

func runIngest(args []string) int {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)

	var (
		dbPath    string
		datasetID string
		idColumn  string
		samples   string
	)

	fs.StringVar(&dbPath, "db", "", "Store path (default: ~/.proteovis/proteovis.duckdb)")
	fs.StringVar(&datasetID, "dataset", "", "Dataset identifier")
	fs.StringVar(&idColumn, "id-col", "", "Primary-ID column name")
	fs.StringVar(&samples, "samples", "", "Comma-separated sample column names (e.g. \"Control.1,Control.2,Treated.1\")")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Ingest a delimited differential-expression file into a dataset.

Re-ingesting a dataset fully replaces its rows.

Usage:
  proteovis ingest [options] <input-file>

Arguments:
  <input-file>  Tab- or comma-delimited input (use '-' for stdin, .gz supported)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  proteovis ingest --dataset exp1 --id-col "Protein IDs" data.txt
  proteovis ingest --dataset exp1 --id-col "Protein IDs" --samples "Control.1,Control.2,Treated.1" data.txt.gz
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if datasetID == "" || idColumn == "" {
		fmt.Fprintf(os.Stderr, "Error: --dataset and --id-col are required\n")
		return ExitUsage
	}
	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	parser, err := ingest.NewParser(fs.Arg(0), idColumn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Hint: Check that the file path is correct\n")
		}
		return ExitError
	}
	defer parser.Close()

	rows, err := parser.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return ExitError
	}

	s, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return ExitError
	}
	defer s.Close()

	if err := s.ReplaceRows(datasetID, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing rows: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Ingested %d rows into dataset %s\n", len(rows), datasetID)

	if samples != "" {
		var sampleNames []string
		for _, name := range strings.Split(samples, ",") {
			if name = strings.TrimSpace(name); name != "" {
				sampleNames = append(sampleNames, name)
			}
		}

		settings, err := s.LoadSettings(datasetID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			return ExitError
		}
		settings = grouper.GroupSamples(sampleNames, settings)
		if err := s.SaveSettings(datasetID, settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(os.Stderr, "Grouped %d samples into %d conditions\n",
			len(sampleNames), len(settings.ConditionOrder))
	}

	return ExitSuccess
}
