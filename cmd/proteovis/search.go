package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/proteovis/proteovis/internal/data"
	"github.com/proteovis/proteovis/internal/index"
	"github.com/proteovis/proteovis/internal/search"
	"github.com/proteovis/proteovis/internal/store"
)

func runSearch(args []string) int {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	var (
		dbPath    string
		datasetID string
		idCol     string
		geneCol   string
		mode      string
		limit     int
	)

	fs.StringVar(&dbPath, "db", "", "Store path (default: ~/.proteovis/proteovis.duckdb)")
	fs.StringVar(&datasetID, "dataset", "", "Dataset identifier")
	fs.StringVar(&idCol, "id-col", "", "Primary-ID column name")
	fs.StringVar(&geneCol, "gene-col", "", "Gene-names column name")
	fs.StringVar(&mode, "mode", "batch", "Search mode: exact, batch, regex, or typeahead")
	fs.IntVar(&limit, "limit", 20, "Maximum typeahead suggestions")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Search a dataset by gene name, accession, or primary ID.

Batch mode takes one query per line; lines split on ";" into terms
when the whole line does not match. Use '-' to read queries from
stdin. Matched primary IDs print one per line.

Usage:
  proteovis search [options] <query>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  proteovis search --dataset exp1 --id-col "Protein IDs" --gene-col "Gene names" "TP53;MDM2"
  proteovis search --dataset exp1 --id-col "Protein IDs" --mode regex "^P0[45]"
  proteovis search --dataset exp1 --id-col "Protein IDs" --gene-col "Gene names" --mode typeahead TP5
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: query argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if datasetID == "" || idCol == "" {
		fmt.Fprintf(os.Stderr, "Error: --dataset and --id-col are required\n")
		return ExitUsage
	}
	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	query := fs.Arg(0)
	if query == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			return ExitError
		}
		query = string(raw)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return ExitError
	}
	defer s.Close()

	rows, err := s.FetchRows(datasetID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rows: %v\n", err)
		return ExitError
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "Error: dataset %q has no rows (run 'proteovis ingest' first)\n", datasetID)
		return ExitError
	}

	form := data.DifferentialForm{PrimaryIDColumn: idCol, GeneNamesColumn: geneCol}
	ix := index.Build(rows, form)

	if mode == "typeahead" {
		for _, sug := range search.Typeahead(ix, query, limit) {
			fmt.Printf("%s\t%s\t%s\t%s\n",
				sug.Key, sug.Category, sug.Match, strings.Join(sug.IDs, ";"))
		}
		return ExitSuccess
	}

	ids := search.Search(ix, query, search.Mode(mode))
	for _, id := range ids {
		fmt.Println(id)
	}
	fmt.Fprintf(os.Stderr, "Matched %d primary IDs\n", len(ids))
	return ExitSuccess
}
