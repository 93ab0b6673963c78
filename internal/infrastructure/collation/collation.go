// Package collation ordena registros por nombre con reglas Unicode, para que los
// backends sin ORDER BY (memoria, pebble, redis) listen igual que PostgreSQL.
package collation

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// SortRecords ordena in-place por nombre ascendente; empates por ID.
// collate.Collator no es seguro para uso concurrente, se crea uno por llamada.
func SortRecords(recs []*entity.StockRecord) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(recs, func(i, j int) bool {
		if cmp := c.CompareString(recs[i].Name, recs[j].Name); cmp != 0 {
			return cmp < 0
		}
		return recs[i].ID < recs[j].ID
	})
}
