package uniprot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/proteovis/proteovis/internal/data"
)

// Feature is one normalized modification site on the canonical
// sequence.
type Feature struct {
	Position int    `json:"position"`
	ModType  string `json:"modType"`
	Residue  string `json:"residue"`
}

// modResToken matches a "MOD_RES <pos>" token in the flattened
// encoding.
var modResToken = regexp.MustCompile(`^MOD_RES\s+(\d+)`)

// noteToken captures the quoted text of a /note token.
var noteToken = regexp.MustCompile(`note="([^"]*)"`)

// ParseFeatures normalizes UniProt modification features. Both
// physical encodings occur upstream, produced by different API
// versions: a flattened semicolon-joined string and a structured
// object array. Dispatch is by value shape; a unified heuristic
// parser is deliberately avoided. Malformed input yields an empty
// list, never an error.
func ParseFeatures(v data.Value) []Feature {
	switch v.Kind() {
	case data.KindString:
		return ParseFlattenedFeatures(v.Str())
	case data.KindArray:
		return ParseStructuredFeatures(v.Items())
	default:
		return nil
	}
}

// ParseFlattenedFeatures parses the semicolon-joined string encoding:
//
//	MOD_RES 45; /note="Phosphoserine"; MOD_RES 102; /note="N6-acetyllysine"
//
// Tokens are sequential: a MOD_RES token establishes the current
// position and the next note's quoted text attaches to it.
func ParseFlattenedFeatures(s string) []Feature {
	var out []Feature
	position := 0

	for _, token := range strings.Split(s, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if m := modResToken.FindStringSubmatch(token); m != nil {
			pos, err := strconv.Atoi(m[1])
			if err != nil {
				position = 0
				continue
			}
			position = pos
			continue
		}

		if m := noteToken.FindStringSubmatch(token); m != nil && position > 0 {
			out = append(out, Feature{Position: position, ModType: m[1]})
			position = 0
		}
	}

	return out
}

// ParseStructuredFeatures parses the object-array encoding. Position
// may arrive as an integer, a float, or a numeric string; all
// normalize to an integer. Entries without a usable position are
// dropped.
func ParseStructuredFeatures(items []data.Value) []Feature {
	var out []Feature
	for _, item := range items {
		pos, ok := item.Field("position").Int()
		if !ok {
			// Structured API variants nest the location.
			pos, ok = item.Field("location").Field("start").Field("value").Int()
		}
		if !ok || pos <= 0 {
			continue
		}

		modType := item.Field("modType").Str()
		if modType == "" {
			modType = item.Field("description").Str()
		}

		out = append(out, Feature{
			Position: pos,
			ModType:  modType,
			Residue:  item.Field("residue").Str(),
		})
	}
	return out
}
