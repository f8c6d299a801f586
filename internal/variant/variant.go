// Package variant is the row model of the browser: genetic variants, the
// columns that render them, and the sources that load them.
package variant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned by validation and parsing.
var (
	ErrEmptyVariantID     = errors.New("variant id cannot be empty")
	ErrDuplicateVariantID = errors.New("duplicate variant id")
	ErrMalformedVariantID = errors.New("variant id must be chrom-pos-ref-alt")
)

// Variant is one row of the browser.
type Variant struct {
	VariantID       string   `json:"variant_id"       yaml:"variant_id"`
	Chrom           string   `json:"chrom"            yaml:"chrom"`
	Pos             int      `json:"pos"              yaml:"pos"`
	Ref             string   `json:"ref"              yaml:"ref"`
	Alt             string   `json:"alt"              yaml:"alt"`
	Consequence     string   `json:"consequence"      yaml:"consequence"`
	HGVS            string   `json:"hgvs"             yaml:"hgvs"`
	Flags           []string `json:"flags"            yaml:"flags"`
	AlleleCount     int      `json:"ac"               yaml:"ac"`
	AlleleNumber    int      `json:"an"               yaml:"an"`
	AlleleFrequency float64  `json:"af"               yaml:"af"`
	HomozygoteCount int      `json:"homozygote_count" yaml:"homozygote_count"`
}

// RowKey returns the grid key of v.
func RowKey(v Variant) string {
	return v.VariantID
}

// ParseVariantID splits an id of the form "chrom-pos-ref-alt".
func ParseVariantID(id string) (Variant, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 4 {
		return Variant{}, fmt.Errorf("%q: %w", id, ErrMalformedVariantID)
	}
	pos, err := strconv.Atoi(parts[1])
	if err != nil || pos < 1 {
		return Variant{}, fmt.Errorf("%q: %w", id, ErrMalformedVariantID)
	}
	return Variant{
		VariantID: id,
		Chrom:     strings.TrimPrefix(strings.ToUpper(parts[0]), "CHR"),
		Pos:       pos,
		Ref:       parts[2],
		Alt:       parts[3],
	}, nil
}

// Normalize fills location fields that are missing but derivable from the id.
func (v *Variant) Normalize() {
	if v.Chrom != "" && v.Pos != 0 {
		return
	}
	parsed, err := ParseVariantID(v.VariantID)
	if err != nil {
		return
	}
	if v.Chrom == "" {
		v.Chrom = parsed.Chrom
	}
	if v.Pos == 0 {
		v.Pos = parsed.Pos
	}
	if v.Ref == "" {
		v.Ref = parsed.Ref
	}
	if v.Alt == "" {
		v.Alt = parsed.Alt
	}
}

// Validate checks that every row has a unique, non-empty id.
func Validate(rows []Variant) error {
	seen := make(map[string]int, len(rows))
	for i, v := range rows {
		if v.VariantID == "" {
			return fmt.Errorf("row %d: %w", i, ErrEmptyVariantID)
		}
		if first, dup := seen[v.VariantID]; dup {
			return fmt.Errorf("%s (rows %d and %d): %w", v.VariantID, first, i, ErrDuplicateVariantID)
		}
		seen[v.VariantID] = i
	}
	return nil
}

// chromRank orders chromosomes 1..22, X, Y, M; unknown names sort last.
func chromRank(chrom string) int {
	switch c := strings.TrimPrefix(strings.ToUpper(chrom), "CHR"); c {
	case "X":
		return 23
	case "Y":
		return 24
	case "M", "MT":
		return 25
	default:
		n, err := strconv.Atoi(c)
		if err != nil || n < 1 {
			return 26
		}
		return n
	}
}
