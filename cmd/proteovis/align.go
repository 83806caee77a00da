package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/proteovis/proteovis/internal/align"
	"github.com/proteovis/proteovis/internal/uniprot"
)

func runAlign(args []string) int {
	fs := flag.NewFlagSet("align", flag.ExitOnError)

	var (
		peptide      string
		experimental string
		canonical    string
		protein      string
		fastaPath    string
		format       string
	)

	fs.StringVar(&peptide, "peptide", "", "Modified peptide to map onto the canonical sequence")
	fs.StringVar(&experimental, "experimental", "", "Experimental sequence to align against the canonical one")
	fs.StringVar(&canonical, "canonical", "", "Canonical protein sequence")
	fs.StringVar(&protein, "protein", "", "UniProt accession; resolves the canonical sequence")
	fs.StringVar(&fastaPath, "fasta", "", "UniProt FASTA file to resolve --protein from instead of the REST API (.gz supported)")
	fs.StringVar(&format, "format", "text", "Output format: text or json")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Align sequences and map peptides onto a canonical protein.

With --experimental, runs a global alignment against the canonical
sequence. With --peptide, locates the peptide within the canonical
sequence and reports each modification site's protein position.
The canonical sequence comes from --canonical, or is resolved for
the --protein accession from a local FASTA file or the UniProt API.

Usage:
  proteovis align [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  proteovis align --experimental MPEPTIDEK --canonical MPEPSIDEK
  proteovis align --peptide "_PEPS(Phospho (STY))TIDEK_" --protein P04637
  proteovis align --peptide "_PEPS(Phospho (STY))TIDEK_" --protein P04637 --fasta swissprot.fasta.gz
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if peptide == "" && experimental == "" {
		fmt.Fprintf(os.Stderr, "Error: one of --peptide or --experimental is required\n")
		return ExitUsage
	}
	if canonical == "" && protein == "" {
		fmt.Fprintf(os.Stderr, "Error: one of --canonical or --protein is required\n")
		return ExitUsage
	}

	if canonical == "" {
		if fastaPath != "" {
			fasta := uniprot.NewFASTA(fastaPath)
			if err := fasta.Load(); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading FASTA: %v\n", err)
				return ExitError
			}
			canonical = fasta.Sequence(protein)
		} else {
			rec, err := uniprot.NewClient().Fetch(protein)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", protein, err)
				return ExitError
			}
			canonical = rec.Sequence()
		}
		if canonical == "" {
			fmt.Fprintf(os.Stderr, "Error: no sequence found for %s\n", protein)
			return ExitError
		}
	}

	if peptide != "" {
		return alignPeptide(peptide, canonical, format)
	}
	return alignGlobal(experimental, canonical, format)
}

type peptideResult struct {
	Peptide string              `json:"peptide"`
	Cleaned string              `json:"cleaned"`
	Start   int                 `json:"start"`
	End     int                 `json:"end"`
	PTMs    []align.PTMPosition `json:"ptms"`
}

func alignPeptide(peptide, canonical, format string) int {
	start, end, ok := align.MapPeptide(peptide, canonical)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: peptide not found in canonical sequence\n")
		return ExitError
	}

	result := peptideResult{
		Peptide: peptide,
		Cleaned: align.CleanPeptide(peptide),
		Start:   start,
		End:     end,
		PTMs:    align.ExtractPTMs(peptide, start),
	}

	if format == "json" {
		return writeJSON(result)
	}

	fmt.Printf("Peptide %s maps to %d-%d\n", result.Cleaned, start, end)
	for _, ptm := range result.PTMs {
		fmt.Printf("  %s%d\t%s\n", ptm.Residue, ptm.ProteinPosition, ptm.Name)
	}
	return ExitSuccess
}

func alignGlobal(experimental, canonical, format string) int {
	pair := align.Align(experimental, canonical)

	if format == "json" {
		return writeJSON(map[string]any{
			"alignedExperimental": pair.AlignedExperimental,
			"alignedCanonical":    pair.AlignedCanonical,
			"score":               pair.Score,
		})
	}

	fmt.Printf("Score: %d\n", pair.Score)
	fmt.Println(pair.AlignedExperimental)
	fmt.Println(pair.AlignedCanonical)
	return ExitSuccess
}

func writeJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
