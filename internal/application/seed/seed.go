// Package seed genera y carga productos de ejemplo en el store.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// Rango de inventario inicial de los productos generados.
const (
	MinCount = 5
	MaxCount = 50
)

var productNames = []string{
	"Bacon", "Ball", "Bike", "Car", "Chair", "Cheese", "Chicken", "Chips",
	"Computer", "Fish", "Gloves", "Hat", "Keyboard", "Mouse", "Pants", "Pizza",
	"Salad", "Sausages", "Shirt", "Shoes", "Soap", "Table", "Towels", "Tuna",
}

// Generate crea n productos con ID uuid, nombre de catálogo e inventario en [MinCount, MaxCount].
func Generate(n int, rng *rand.Rand) []entity.StockRecord {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	out := make([]entity.StockRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entity.StockRecord{
			ID:    uuid.NewString(),
			Name:  productNames[rng.IntN(len(productNames))],
			Count: int64(MinCount + rng.IntN(MaxCount-MinCount+1)),
		})
	}
	return out
}

// ReadCSV lee productos con columnas name,inventory_count[,id]; la primera fila es cabecera.
// latin1 decodifica archivos ISO-8859-1 (exportados desde hojas de cálculo).
func ReadCSV(r io.Reader, latin1 bool) ([]entity.StockRecord, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([]entity.StockRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) < 2 {
			return nil, fmt.Errorf("línea %d: se esperan al menos 2 columnas: %w", line, domain.ErrInvalidInput)
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			return nil, fmt.Errorf("línea %d: nombre vacío: %w", line, domain.ErrInvalidInput)
		}
		count, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("línea %d: inventory_count %q: %w", line, row[1], domain.ErrInvalidQuantity)
		}
		id := uuid.NewString()
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			id = strings.TrimSpace(row[2])
		}
		out = append(out, entity.StockRecord{ID: id, Name: name, Count: count})
	}
	return out, nil
}

// Seeder inserta lotes de productos. Con tx el lote es atómico; sin tx se omiten duplicados.
type Seeder struct {
	repo repository.StockRecordRepository
	tx   repository.StockRecordTxRunner
	log  *logger.Logger
}

func NewSeeder(repo repository.StockRecordRepository, tx repository.StockRecordTxRunner, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{repo: repo, tx: tx, log: log.Component("seed")}
}

// Seed inserta recs y devuelve cuántos se crearon.
func (s *Seeder) Seed(ctx context.Context, recs []entity.StockRecord) (int, error) {
	s.log.Info().Int("products", len(recs)).Msg("siembra iniciada")

	var created int
	var err error
	if s.tx != nil {
		err = s.tx.Run(ctx, func(repo repository.StockRecordRepository) error {
			n, insertErr := insertAll(ctx, repo, recs, false)
			created = n
			return insertErr
		})
		if err != nil {
			created = 0
		}
	} else {
		created, err = insertAll(ctx, s.repo, recs, true)
	}
	if err != nil {
		return created, err
	}

	s.log.Info().Int("created", created).Msg("siembra finalizada")
	return created, nil
}

func insertAll(ctx context.Context, repo repository.StockRecordRepository, recs []entity.StockRecord, skipDuplicates bool) (int, error) {
	created := 0
	for i := range recs {
		rec := recs[i]
		if err := repo.Create(ctx, &rec); err != nil {
			if skipDuplicates && errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			return created, fmt.Errorf("crear producto %s: %w", rec.ID, err)
		}
		created++
	}
	return created, nil
}
