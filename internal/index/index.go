// Package index builds denormalized identifier lookup tables over a
// row set: gene name, accession, and composite-ID part, each mapped
// to the set of primary IDs it occurs in.
//
// An Index is immutable once built and safe for concurrent readers.
// Rebuilding produces a fresh Index the caller swaps in, so readers
// never observe a partially-built table.
package index

import (
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/proteovis/proteovis/internal/data"
)

// Category names an identifier class.
type Category string

const (
	CategoryGene      Category = "gene"
	CategoryAccession Category = "accession"
	CategoryPrimaryID Category = "primaryID"
)

// Categories lists the identifier classes in lookup-priority order.
var Categories = []Category{CategoryGene, CategoryAccession, CategoryPrimaryID}

// accessionPattern matches a UniProt accession at the start of an
// identifier part (isoform suffixes like "-2" are ignored).
var accessionPattern = regexp.MustCompile(`^[OPQ][0-9][A-Z0-9]{3}[0-9]|^[A-NR-Z][0-9]([A-Z][A-Z0-9]{2}[0-9]){1,2}`)

type idSet map[string]struct{}

// Index holds the built lookup tables. Keys are case-normalized to
// upper case; lookups are therefore case-insensitive.
type Index struct {
	tables map[Category]map[string]idSet
	keys   map[Category][]string // sorted, cached at build time
}

// Build constructs an index from the row set. Gene names are read
// from the form's gene-name column and split on whitespace and
// semicolons; accessions and composite parts are derived from the
// primary ID. The index depends on nothing but the rows, so it can
// be rebuilt from stored source data at any time.
//
// Rows are partitioned across workers and the per-shard indexes
// merged by key-wise set union.
func Build(rows []data.Row, form data.DifferentialForm) *Index {
	return buildWithWorkers(rows, form, runtime.NumCPU())
}

func buildWithWorkers(rows []data.Row, form data.DifferentialForm, workers int) *Index {
	if workers > len(rows) {
		workers = len(rows)
	}
	if workers < 1 {
		workers = 1
	}

	shards := make([]*builder, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	chunk := (len(rows) + workers - 1) / workers
	for w := range workers {
		go func() {
			defer wg.Done()
			b := newBuilder()
			// Ceil division can push the last shard past the end.
			lo := min(w*chunk, len(rows))
			hi := min(lo+chunk, len(rows))
			for _, row := range rows[lo:hi] {
				b.addRow(row, form)
			}
			shards[w] = b
		}()
	}
	wg.Wait()

	merged := newBuilder()
	for _, shard := range shards {
		merged.merge(shard)
	}
	return merged.finish()
}

// Exact returns the primary IDs registered under the normalized key
// in any table, sorted. A miss yields an empty result, not an error.
func (ix *Index) Exact(key string) []string {
	key = Normalize(key)
	if key == "" {
		return nil
	}
	set := idSet{}
	for _, cat := range Categories {
		for id := range ix.tables[cat][key] {
			set[id] = struct{}{}
		}
	}
	return sortedIDs(set)
}

// Lookup returns the primary IDs for a key within one category.
func (ix *Index) Lookup(cat Category, key string) []string {
	return sortedIDs(ix.tables[cat][Normalize(key)])
}

// Keys returns the sorted key list for a category.
func (ix *Index) Keys(cat Category) []string {
	return ix.keys[cat]
}

// Normalize upper-cases and trims an identifier key.
func Normalize(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

type builder struct {
	tables map[Category]map[string]idSet
}

func newBuilder() *builder {
	tables := make(map[Category]map[string]idSet, len(Categories))
	for _, cat := range Categories {
		tables[cat] = map[string]idSet{}
	}
	return &builder{tables: tables}
}

func (b *builder) add(cat Category, key, primaryID string) {
	key = Normalize(key)
	if key == "" {
		return
	}
	set, ok := b.tables[cat][key]
	if !ok {
		set = idSet{}
		b.tables[cat][key] = set
	}
	set[primaryID] = struct{}{}
}

func (b *builder) addRow(row data.Row, form data.DifferentialForm) {
	primaryID := row.PrimaryID
	if primaryID == "" {
		primaryID = row.Str(form.PrimaryIDColumn)
	}
	if primaryID == "" {
		return
	}

	b.add(CategoryPrimaryID, primaryID, primaryID)
	for _, part := range SplitComposite(primaryID) {
		b.add(CategoryPrimaryID, part, primaryID)
		if acc := ExtractAccession(part); acc != "" {
			b.add(CategoryAccession, acc, primaryID)
		}
	}

	for _, gene := range SplitGeneNames(row.Str(form.GeneNamesColumn)) {
		b.add(CategoryGene, gene, primaryID)
	}
}

func (b *builder) merge(other *builder) {
	for _, cat := range Categories {
		for key, ids := range other.tables[cat] {
			set, ok := b.tables[cat][key]
			if !ok {
				set = idSet{}
				b.tables[cat][key] = set
			}
			for id := range ids {
				set[id] = struct{}{}
			}
		}
	}
}

func (b *builder) finish() *Index {
	ix := &Index{tables: b.tables, keys: map[Category][]string{}}
	for _, cat := range Categories {
		keys := make([]string, 0, len(b.tables[cat]))
		for key := range b.tables[cat] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		ix.keys[cat] = keys
	}
	return ix
}

// SplitComposite splits a composite identifier like "P04637;Q00987"
// into its parts, trimmed, with empties dropped.
func SplitComposite(id string) []string {
	var parts []string
	for _, part := range strings.Split(id, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// SplitGeneNames splits a gene-name cell on whitespace and
// semicolons.
func SplitGeneNames(cell string) []string {
	var names []string
	for _, field := range strings.FieldsFunc(cell, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t'
	}) {
		field = strings.TrimSpace(field)
		if field != "" {
			names = append(names, field)
		}
	}
	return names
}

// ExtractAccession returns the UniProt accession embedded in an
// identifier part, or "" when the part is not accession-shaped.
// Isoform suffixes ("P04637-2") are stripped.
func ExtractAccession(part string) string {
	part = strings.ToUpper(strings.TrimSpace(part))
	if idx := strings.Index(part, "-"); idx > 0 {
		part = part[:idx]
	}
	return accessionPattern.FindString(part)
}

func sortedIDs(set idSet) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
