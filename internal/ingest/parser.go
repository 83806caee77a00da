// Package ingest parses delimited differential-expression text into
// rows of named columns.
package ingest

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/proteovis/proteovis/internal/data"
)

// Parser reads delimited text into rows. The delimiter is detected
// from the header line (tab preferred, then comma).
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	delimiter  string
	columns    []string
	idColumn   string
	idIndex    int
}

// NewParser creates a parser for the given file. Gzipped input is
// detected from the magic bytes. idColumn names the primary-ID
// column; it must be present in the header.
func NewParser(path, idColumn string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin, idColumn)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}

	p := &Parser{file: file, idColumn: idColumn}

	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read input header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek input file: %w", err)
	}

	// Gzip magic number (0x1f, 0x8b)
	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g. stdin).
func NewParserFromReader(r io.Reader, idColumn string) (*Parser, error) {
	p := &Parser{reader: bufio.NewReader(r), idColumn: idColumn}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseHeader reads the header line, detects the delimiter, and
// locates the primary-ID column.
func (p *Parser) parseHeader() error {
	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read header: %w", err)
	}
	p.lineNumber++

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return fmt.Errorf("line %d: empty header", p.lineNumber)
	}

	p.delimiter = "\t"
	if !strings.Contains(line, "\t") && strings.Contains(line, ",") {
		p.delimiter = ","
	}

	p.columns = strings.Split(line, p.delimiter)
	p.idIndex = -1
	for i, col := range p.columns {
		p.columns[i] = strings.TrimSpace(col)
		if p.columns[i] == p.idColumn {
			p.idIndex = i
		}
	}
	if p.idIndex < 0 {
		return fmt.Errorf("line %d: primary-ID column %q not found in header", p.lineNumber, p.idColumn)
	}
	return nil
}

// Columns returns the header column names.
func (p *Parser) Columns() []string {
	return p.columns
}

// Next returns the next row, or (zero, false, nil) at end of input.
// Lines with an empty primary ID are skipped. Numeric-looking cells
// become numbers, "true"/"false" become booleans, everything else
// stays a string.
func (p *Parser) Next() (data.Row, bool, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return data.Row{}, false, fmt.Errorf("read line %d: %w", p.lineNumber+1, err)
		}
		atEOF := err == io.EOF

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if atEOF {
				return data.Row{}, false, nil
			}
			p.lineNumber++
			continue
		}
		p.lineNumber++

		fields := strings.Split(line, p.delimiter)
		if p.idIndex >= len(fields) {
			if atEOF {
				return data.Row{}, false, nil
			}
			continue
		}

		primaryID := strings.TrimSpace(fields[p.idIndex])
		if primaryID == "" {
			if atEOF {
				return data.Row{}, false, nil
			}
			continue
		}

		cols := make(map[string]data.Value, len(p.columns))
		for i, col := range p.columns {
			if i >= len(fields) {
				break
			}
			cols[col] = cellValue(fields[i])
		}
		return data.NewRow(primaryID, cols), true, nil
	}
}

// ReadAll consumes the remaining input into a row slice.
func (p *Parser) ReadAll() ([]data.Row, error) {
	var rows []data.Row
	for {
		row, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		rows = append(rows, row)
	}
}

// Close releases the underlying readers.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// cellValue converts one delimited cell into a typed value.
func cellValue(cell string) data.Value {
	cell = strings.TrimSpace(cell)
	switch {
	case cell == "":
		return data.Null
	case strings.EqualFold(cell, "true"):
		return data.Bool(true)
	case strings.EqualFold(cell, "false"):
		return data.Bool(false)
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return data.Number(f)
	}
	return data.String(cell)
}
