package stock

import (
	"runtime"

	"github.com/oarkflow/log"
	"github.com/oarkflow/search"
)

const searchEngineKey = "stocks"

// IndexStocks (re)builds the in-memory symbol index used by the search
// endpoint; docs carry at least Symbol and Name
func IndexStocks(docs []map[string]any) error {
	engine, err := search.SetEngine[map[string]any](searchEngineKey, &search.Config{})
	if err != nil {
		return err
	}

	log.Info().Int("stocks", len(docs)).Msg("indexing stocks")
	engine.InsertWithPool(docs, runtime.NumCPU(), 1000)
	log.Info().Msg("indexed stocks")
	return nil
}

// SearchStocks looks the query up against the indexed symbols and names
func SearchStocks(query string) ([]map[string]any, error) {
	engine, err := search.GetEngine[map[string]any](searchEngineKey)
	if err != nil {
		return nil, err
	}

	result, err := engine.Search(&search.Params{
		Query:      query,
		Properties: []string{"Symbol", "Name"},
	})
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(result.Hits))
	for _, hit := range result.Hits {
		out = append(out, hit.Data)
	}
	return out, nil
}
