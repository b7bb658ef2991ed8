package handler

import "github.com/covu/backend/internal/domain/shared/valueobject"

// ngnFromFloat converts a request amount to Money, rounding to kobo
func ngnFromFloat(f float64) valueobject.Money {
	return valueobject.NewMoneyNGNFromFloat(f)
}
