package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// QuantityRequest body de PUT /api/products/:id, POST /order y POST /restock.
// Se decodifica como json.Number para no perder precisión por encima de 2^53.
// El tag validate solo alimenta el "required" de swag; la validación real está en Int.
type QuantityRequest struct {
	Quantity *json.Number `json:"quantity" validate:"required" swaggertype:"integer"`
}

// Int valida que quantity exista y sea un entero exacto representable en int64.
// Acepta notación decimal o exponencial solo si no tiene parte fraccionaria ("5.0", "1e3").
func (r QuantityRequest) Int() (int64, bool) {
	if r.Quantity == nil {
		return 0, false
	}
	return parseExactInt(r.Quantity.String())
}

func parseExactInt(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if !strings.ContainsAny(s, ".eE") {
		return 0, false
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	mantissa, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.Atoi(strings.TrimPrefix(s[i+1:], "+"))
		if err != nil {
			return 0, false
		}
		mantissa, exp = s[:i], e
	}
	intPart, frac, _ := strings.Cut(mantissa, ".")
	if intPart == "" && frac == "" {
		return 0, false
	}
	digits := intPart + frac
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	exp -= len(frac)

	// los ceros finales compensan exponentes negativos
	for exp < 0 && strings.HasSuffix(digits, "0") {
		digits = digits[:len(digits)-1]
		exp++
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 0, true
	}
	if exp < 0 || exp > 19 {
		return 0, false
	}
	n, err := strconv.ParseInt(sign+digits+strings.Repeat("0", exp), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ProductResponse salida de un producto. Los nombres JSON siguen los que consumen dashboard y store.
type ProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	InventoryCount int64     `json:"inventoryCount"`
	Version        int64     `json:"version"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AdjustmentResponse resultado de un ajuste de inventario exitoso.
type AdjustmentResponse struct {
	Message string          `json:"message"`
	Product ProductResponse `json:"product"`
}
