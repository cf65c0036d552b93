package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"go-viewer-dashboard/internal/model"
)

const keyPrefix = "dashboard:report:"

// ReportCache keeps built reports keyed by dashboard state.
type ReportCache interface {
	Get(ctx context.Context, key string) (*model.Report, bool, error)
	Set(ctx context.Context, key string, report *model.Report) error
}

// Key fingerprints a dashboard state. Country order and repeats do not
// change the key.
func Key(state model.DashboardState) string {
	seen := make(map[string]struct{}, len(state.Filter.Countries))
	countries := make([]string, 0, len(state.Filter.Countries))
	for _, c := range state.Filter.Countries {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		countries = append(countries, c)
	}
	sort.Strings(countries)
	state.Filter.Countries = countries

	raw, _ := json.Marshal(state)
	sum := sha256.Sum256(raw)
	return keyPrefix + hex.EncodeToString(sum[:])
}
