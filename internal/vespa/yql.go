package vespa

import (
	"fmt"
	"strings"

	"github.com/chiheb08/vespa-vectorstore/internal/faults"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

// BuildYQL synthesizes the retrieval query text. Clause order is fixed:
// tenant filter, source filter, keyword filter (hybrid mode only), then the
// nearestNeighbor clause. Absent filters do not reorder the present ones, so
// the same request always produces the same query text and evaluation logs
// stay reproducible.
func BuildYQL(mode models.SearchMode, filters models.SearchFilters, targetHits int) (string, error) {
	if !mode.Valid() {
		return "", faults.Newf(faults.KindValidation, "mode must be %q or %q, got %q", models.ModeVector, models.ModeHybrid, mode)
	}

	var whereParts []string
	if filters.TenantID != "" {
		whereParts = append(whereParts, fmt.Sprintf("tenant_id contains %q", filters.TenantID))
	}
	if filters.Source != "" {
		whereParts = append(whereParts, fmt.Sprintf("source contains %q", filters.Source))
	}
	if mode == models.ModeHybrid && filters.Keyword != "" {
		whereParts = append(whereParts, fmt.Sprintf("text contains %q", filters.Keyword))
	}

	wherePrefix := ""
	if len(whereParts) > 0 {
		wherePrefix = strings.Join(whereParts, " and ") + " and "
	}

	yql := fmt.Sprintf(
		"select chunk_id, doc_id, tenant_id, source, text from sources chunk where %s({targetHits:%d}nearestNeighbor(embedding, q));",
		wherePrefix, targetHits,
	)
	return yql, nil
}
