package collation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

func names(recs []*entity.StockRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID+":"+r.Name)
	}
	return out
}

func TestSortRecords_OrdenAlfabeticoYDesempatePorID(t *testing.T) {
	recs := []*entity.StockRecord{
		{ID: "3", Name: "zapato"},
		{ID: "2", Name: "Árbol"},
		{ID: "5", Name: "banana"},
		{ID: "1", Name: "banana"},
		{ID: "4", Name: "Cable"},
	}

	SortRecords(recs)

	assert.Equal(t, []string{"2:Árbol", "1:banana", "5:banana", "4:Cable", "3:zapato"}, names(recs))
}
