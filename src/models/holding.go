package models

import (
	"time"
)

// HoldingStatus is the externally supplied lifecycle tag of a holding. The
// engine never infers it from dates; unrecognized values flag the row instead
// of being guessed at.
type HoldingStatus string

const (
	StatusUnvested  HoldingStatus = "Unvested"
	StatusVested    HoldingStatus = "Vested"
	StatusExercised HoldingStatus = "Exercised"
	StatusSold      HoldingStatus = "Sold"
)

func (s HoldingStatus) Valid() bool {
	switch s {
	case StatusUnvested, StatusVested, StatusExercised, StatusSold:
		return true
	}
	return false
}

// Holding is one equity-compensation grant record as supplied by the
// ingestion side. It is read-only input for the analytics engine.
type Holding struct {
	Ticker         string        `json:"ticker"`
	CompanyName    string        `json:"companyName"`
	GrantDate      time.Time     `json:"grantDate"`
	VestingDate    time.Time     `json:"vestingDate"`
	ExpirationDate *time.Time    `json:"expirationDate,omitempty"`
	SaleDate       *time.Time    `json:"saleDate,omitempty"`
	Quantity       float64       `json:"quantity"`
	VestedQuantity float64       `json:"vestedQuantity"`
	ExercisePrice  float64       `json:"exercisePrice"`
	SalePrice      *float64      `json:"salePrice,omitempty"`
	Status         HoldingStatus `json:"status"`
	GrantType      string        `json:"grantType,omitempty"`
}
