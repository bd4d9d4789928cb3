package contract

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/relgate/schema"
)

// LoadComparisons reads the comparison-results file produced by the artifact
// comparison subsystem. An empty path means no module wired a comparison and
// yields an empty collection. A path that cannot be read or parsed is a hard
// error, since the file was requested explicitly.
func LoadComparisons(path string) ([]schema.ComparisonResult, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read comparisons file: %w", err)
	}

	var results []schema.ComparisonResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse comparisons file %q: %w. Expected a JSON array of {module, changed, description} entries", path, err)
	}

	for i, r := range results {
		if strings.TrimSpace(r.ModuleID) == "" {
			return nil, fmt.Errorf("comparisons file %q: entry %d has an empty module id", path, i)
		}
	}
	return results, nil
}
