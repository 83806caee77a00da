package uniprot

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// FASTA holds protein sequences loaded from a UniProt FASTA file,
// indexed by accession. It serves as an offline alternative to the
// REST client for canonical sequences.
type FASTA struct {
	path      string
	sequences map[string]string
}

// NewFASTA creates a loader for the given file. Call Load before any
// lookup.
func NewFASTA(path string) *FASTA {
	return &FASTA{
		path:      path,
		sequences: make(map[string]string),
	}
}

// Load parses the FASTA file and indexes sequences by accession.
func (f *FASTA) Load() error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open FASTA file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(f.path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return f.parse(reader)
}

func (f *FASTA) parse(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	// Protein sequences can run long when unwrapped
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var currentID string
	var currentSeq strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, ">") {
			if currentID != "" && currentSeq.Len() > 0 {
				f.sequences[currentID] = currentSeq.String()
			}
			currentID = parseFASTAHeader(line)
			currentSeq.Reset()
		} else {
			currentSeq.WriteString(strings.TrimSpace(line))
		}
	}

	if currentID != "" && currentSeq.Len() > 0 {
		f.sequences[currentID] = currentSeq.String()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan FASTA: %w", err)
	}
	return nil
}

// parseFASTAHeader extracts the accession from a FASTA header.
// UniProt format: >sp|P04637|P53_HUMAN Cellular tumor antigen p53
// Plain format:   >P04637 description
func parseFASTAHeader(header string) string {
	header = strings.TrimPrefix(header, ">")

	if parts := strings.Split(header, "|"); len(parts) >= 2 {
		return strings.TrimSpace(parts[1])
	}
	if idx := strings.IndexByte(header, ' '); idx != -1 {
		return header[:idx]
	}
	return header
}

// Sequence returns the sequence for an accession, or "". Isoform
// suffixes ("P04637-2") are tried as given first, then with the
// suffix stripped.
func (f *FASTA) Sequence(accession string) string {
	if seq, ok := f.sequences[accession]; ok {
		return seq
	}
	if idx := strings.Index(accession, "-"); idx > 0 {
		return f.sequences[accession[:idx]]
	}
	return ""
}

// Has reports whether a sequence exists for the accession.
func (f *FASTA) Has(accession string) bool {
	return f.Sequence(accession) != ""
}

// Count returns the number of loaded sequences.
func (f *FASTA) Count() int {
	return len(f.sequences)
}
