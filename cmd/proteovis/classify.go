package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/proteovis/proteovis/internal/classify"
	"github.com/proteovis/proteovis/internal/data"
	"github.com/proteovis/proteovis/internal/index"
	"github.com/proteovis/proteovis/internal/output"
	"github.com/proteovis/proteovis/internal/store"
	"github.com/proteovis/proteovis/internal/uniprot"
)

func runClassify(args []string) int {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)

	var (
		dbPath       string
		datasetID    string
		idCol        string
		geneCol      string
		fcCol        string
		sigCol       string
		cmpCol       string
		log2FC       bool
		negLog10     bool
		reverseFC    bool
		pCutoff      float64
		fcCutoff     float64
		fetchUniprot bool
		format       string
		workers      int
		verbose      bool
	)

	fs.StringVar(&dbPath, "db", "", "Store path (default: ~/.proteovis/proteovis.duckdb)")
	fs.StringVar(&datasetID, "dataset", "", "Dataset identifier")
	fs.StringVar(&idCol, "id-col", "", "Primary-ID column name")
	fs.StringVar(&geneCol, "gene-col", "", "Gene-names column name")
	fs.StringVar(&fcCol, "fc-col", "", "Fold-change column name")
	fs.StringVar(&sigCol, "sig-col", "", "Significance column name")
	fs.StringVar(&cmpCol, "cmp-col", "", "Comparison column name")
	fs.BoolVar(&log2FC, "log2", false, "Apply log2 to the fold-change column")
	fs.BoolVar(&negLog10, "neglog10", false, "Apply -log10 to the significance column (raw p-values)")
	fs.BoolVar(&reverseFC, "reverse-fc", false, "Flip the fold-change sign")
	fs.Float64Var(&pCutoff, "p-cutoff", 0, "P-value cutoff (default from dataset settings)")
	fs.Float64Var(&fcCutoff, "fc-cutoff", 0, "Log2 fold-change cutoff (default from dataset settings)")
	fs.BoolVar(&fetchUniprot, "fetch-uniprot", false, "Fetch UniProt records for gene-name labels")
	fs.StringVar(&format, "format", "tab", "Output format: tab or json")
	fs.IntVar(&workers, "workers", 0, "Number of classification workers (default: classify.workers config, else number of CPUs)")
	fs.BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Classify dataset rows into colored volcano-plot points.

Each row becomes one point colored by its explicit selection groups,
or by a significance group built from the cutoffs when it belongs to
none. Newly assigned group colors are saved back to the dataset.

Usage:
  proteovis classify [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  proteovis classify --dataset exp1 --id-col "Protein IDs" --fc-col logFC --sig-col adj.P.Val --neglog10
  proteovis classify --dataset exp1 --id-col "Protein IDs" --fc-col logFC --sig-col minus.log10.p --format json
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if datasetID == "" || idCol == "" || fcCol == "" || sigCol == "" {
		fmt.Fprintf(os.Stderr, "Error: --dataset, --id-col, --fc-col and --sig-col are required\n")
		return ExitUsage
	}
	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	logger := newLogger(verbose)
	defer logger.Sync()

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

	settings, err := s.LoadSettings(datasetID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return ExitError
	}
	if pCutoff > 0 {
		settings.PCutoff = pCutoff
	}
	if fcCutoff > 0 {
		settings.Log2FCCutoff = fcCutoff
	}
	if fetchUniprot {
		settings.FetchUniprot = true
	}

	selections, err := s.LoadSelections(datasetID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading selections: %v\n", err)
		return ExitError
	}

	form := data.DifferentialForm{
		PrimaryIDColumn:   idCol,
		GeneNamesColumn:   geneCol,
		FoldChangeColumn:  fcCol,
		SignificantColumn: sigCol,
		ComparisonColumn:  cmpCol,
		TransformFC:       log2FC,
		TransformSignif:   negLog10,
		ReverseFoldChange: reverseFC,
	}

	engine := classify.NewEngine()
	engine.SetLogger(logger)
	if workers == 0 {
		workers = viper.GetInt("classify.workers")
	}
	if workers > 0 {
		engine.SetWorkers(workers)
	}

	if settings.FetchUniprot {
		records := uniprot.NewStore()
		uniprot.NewClient().FetchAll(datasetAccessions(rows, form), records)
		engine.SetGeneNameSource(records)
	}

	result := engine.Classify(rows, form, settings, selections)

	// Colors are sticky across runs: persist the updated map so the
	// next classification reuses the same assignments.
	settings.ColorMap = result.ColorMap
	if err := s.SaveSettings(datasetID, settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
		return ExitError
	}

	switch format {
	case "json":
		if err := output.NewJSONWriter(os.Stdout).WriteResult(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return ExitError
		}
	case "tab":
		tw := output.NewTabWriter(os.Stdout)
		if err := tw.WriteHeader(); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return ExitError
		}
		for _, p := range result.Points {
			if err := tw.Write(p); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
				return ExitError
			}
		}
		if err := tw.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return ExitError
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (use tab or json)\n", format)
		return ExitUsage
	}

	fmt.Fprintf(os.Stderr, "Classified %d points (%d rows skipped)\n",
		len(result.Points), result.Skipped)
	return ExitSuccess
}

// datasetAccessions collects the unique UniProt accessions embedded in
// the dataset's primary IDs, in row order.
func datasetAccessions(rows []data.Row, form data.DifferentialForm) []string {
	seen := map[string]bool{}
	var accessions []string
	for _, row := range rows {
		id := row.PrimaryID
		if id == "" {
			id = row.Str(form.PrimaryIDColumn)
		}
		for _, part := range index.SplitComposite(id) {
			acc := index.ExtractAccession(part)
			if acc == "" || seen[acc] {
				continue
			}
			seen[acc] = true
			accessions = append(accessions, acc)
		}
	}
	return accessions
}
