package variant

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/varbrowse/internal/logging"
	"github.com/rshade/varbrowse/internal/query"
)

// document is the on-disk and over-the-wire shape of a variant list.
type document struct {
	Variants []Variant `json:"variants" yaml:"variants"`
}

// LoadFiles reads variant documents concurrently and returns their rows in
// argument order. Files ending in .json are decoded as JSON, everything else
// as YAML. The combined rows are validated for unique ids.
func LoadFiles(ctx context.Context, paths ...string) ([]Variant, error) {
	log := logging.FromContext(ctx)
	parts := make([][]Variant, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rows, err := loadFile(path)
			if err != nil {
				return err
			}
			log.Debug().Str("path", path).Int("rows", len(rows)).Msg("loaded variant file")
			parts[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []Variant
	for _, p := range parts {
		rows = append(rows, p...)
	}
	if err := Validate(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func loadFile(path string) ([]Variant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	for i := range doc.Variants {
		doc.Variants[i].Normalize()
	}
	return doc.Variants, nil
}

const variantsQuery = `query Variants($datasetId: String!) {
  variants(dataset: $datasetId) {
    variant_id
    chrom
    pos
    ref
    alt
    consequence
    hgvs
    flags
    ac
    an
    af
    homozygote_count
  }
}`

// VariantsRequest is the request for every variant of a dataset.
func VariantsRequest(datasetID string) query.Request {
	return query.Request{
		Query:     variantsQuery,
		Variables: map[string]any{"datasetId": datasetID},
	}
}

// Doer executes GraphQL requests.
type Doer interface {
	Do(ctx context.Context, req query.Request, out any) error
}

// Fetch returns a FetchFunc that loads variants through client.
func Fetch(client Doer) query.FetchFunc[[]Variant] {
	return func(ctx context.Context, req query.Request) ([]Variant, error) {
		var doc document
		if err := client.Do(ctx, req, &doc); err != nil {
			return nil, err
		}
		for i := range doc.Variants {
			doc.Variants[i].Normalize()
		}
		if err := Validate(doc.Variants); err != nil {
			return nil, err
		}
		return doc.Variants, nil
	}
}
