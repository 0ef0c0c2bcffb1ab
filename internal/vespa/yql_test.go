package vespa

import (
	"strings"
	"testing"

	"github.com/chiheb08/vespa-vectorstore/internal/faults"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

func TestBuildYQL(t *testing.T) {
	tests := []struct {
		name       string
		mode       models.SearchMode
		filters    models.SearchFilters
		targetHits int
		want       string
	}{
		{
			name:       "vector no filters",
			mode:       models.ModeVector,
			targetHits: 50,
			want:       `select chunk_id, doc_id, tenant_id, source, text from sources chunk where ({targetHits:50}nearestNeighbor(embedding, q));`,
		},
		{
			name:       "tenant filter only",
			mode:       models.ModeVector,
			filters:    models.SearchFilters{TenantID: "t1"},
			targetHits: 50,
			want:       `select chunk_id, doc_id, tenant_id, source, text from sources chunk where tenant_id contains "t1" and ({targetHits:50}nearestNeighbor(embedding, q));`,
		},
		{
			name:       "keyword ignored outside hybrid mode",
			mode:       models.ModeVector,
			filters:    models.SearchFilters{Keyword: "chmod"},
			targetHits: 10,
			want:       `select chunk_id, doc_id, tenant_id, source, text from sources chunk where ({targetHits:10}nearestNeighbor(embedding, q));`,
		},
		{
			name:       "hybrid with all filters keeps fixed clause order",
			mode:       models.ModeHybrid,
			filters:    models.SearchFilters{TenantID: "t1", Source: "docs", Keyword: "chmod"},
			targetHits: 50,
			want:       `select chunk_id, doc_id, tenant_id, source, text from sources chunk where tenant_id contains "t1" and source contains "docs" and text contains "chmod" and ({targetHits:50}nearestNeighbor(embedding, q));`,
		},
		{
			name:       "hybrid without keyword",
			mode:       models.ModeHybrid,
			filters:    models.SearchFilters{Source: "docs"},
			targetHits: 25,
			want:       `select chunk_id, doc_id, tenant_id, source, text from sources chunk where source contains "docs" and ({targetHits:25}nearestNeighbor(embedding, q));`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := BuildYQL(test.mode, test.filters, test.targetHits)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.want {
				t.Errorf("yql:\n got: %s\nwant: %s", got, test.want)
			}
		})
	}
}

func TestBuildYQL_Deterministic(t *testing.T) {
	filters := models.SearchFilters{TenantID: "t1", Source: "docs", Keyword: "docker"}

	first, err := BuildYQL(models.ModeHybrid, filters, 50)
	if err != nil {
		t.Fatal(err)
	}
	second, err := BuildYQL(models.ModeHybrid, filters, 50)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("query text differs across calls:\n%s\n%s", first, second)
	}

	idxTenant := strings.Index(first, "tenant_id contains")
	idxSource := strings.Index(first, "source contains")
	idxKeyword := strings.Index(first, "text contains")
	idxNN := strings.Index(first, "nearestNeighbor")
	if !(idxTenant < idxSource && idxSource < idxKeyword && idxKeyword < idxNN) {
		t.Errorf("clause order not tenant < source < keyword < nearestNeighbor: %s", first)
	}
}

func TestBuildYQL_UnknownModeIsValidationError(t *testing.T) {
	_, err := BuildYQL("semantic", models.SearchFilters{}, 50)
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if faults.KindOf(err) != faults.KindValidation {
		t.Errorf("kind: %s, want %s", faults.KindOf(err), faults.KindValidation)
	}
}
