// Package main provides the proteovis command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("proteovis version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "ingest":
		return runIngest(args[1:])
	case "classify":
		return runClassify(args[1:])
	case "search":
		return runSearch(args[1:])
	case "align":
		return runAlign(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `proteovis - proteomics differential-expression analysis

Usage:
  proteovis [options] <command> [arguments]

Commands:
  ingest      Ingest a delimited differential-expression file into a dataset
  classify    Classify dataset rows into colored volcano-plot points
  search      Search a dataset by gene name, accession, or identifier
  align       Align sequences and map peptides onto a canonical protein
  config      Manage proteovis configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Ingest a differential dataset (one-time per dataset)
  proteovis ingest --dataset exp1 --id-col "Protein IDs" data.txt

  # Classify into plot points with default cutoffs
  proteovis classify --dataset exp1 --fc-col logFC --sig-col adj.P.Val

  # Search for genes
  proteovis search --dataset exp1 "TP53;MDM2"

  # Map a modified peptide onto a canonical sequence
  proteovis align --peptide "PEPS(ph)TIDE" --protein P04637

For more information on a command, use:
  proteovis <command> --help
`)
}

// initConfig loads ~/.proteovis.yaml if present. Missing config is
// fine; flags and defaults cover everything.
func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.SetConfigFile(filepath.Join(home, ".proteovis.yaml"))
	viper.SetConfigType("yaml")
	_ = viper.ReadInConfig()
}

// defaultDBPath returns the configured store path, defaulting to
// ~/.proteovis/proteovis.duckdb.
func defaultDBPath() string {
	if p := viper.GetString("store.path"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "proteovis.duckdb"
	}
	return filepath.Join(home, ".proteovis", "proteovis.duckdb")
}

// newLogger builds the CLI logger. Library code defaults to a no-op
// logger; the CLI attaches a real one.
func newLogger(verbose bool) *zap.Logger {
	if !verbose && !viper.GetBool("verbose") {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
