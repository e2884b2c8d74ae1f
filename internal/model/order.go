package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusDelivered = "Delivered"
)

const (
	UrgencyNormal   = "Normal"
	UrgencyHigh     = "High"
	UrgencyCritical = "Critical"
)

type Order struct {
	ID               int             `json:"id"`
	PharmacyName     string          `json:"pharmacyName"`
	PharmacyLocation string          `json:"pharmacyLocation"`
	ProductName      string          `json:"productName"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	Urgency          string          `json:"urgency"`
	DateOrdered      string          `json:"dateOrdered"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type OrderInput struct {
	PharmacyName     string          `json:"pharmacyName"`
	PharmacyLocation string          `json:"pharmacyLocation"`
	ProductName      string          `json:"productName"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Urgency          string          `json:"urgency"`
	DateOrdered      string          `json:"dateOrdered"`
}

// Summary holds the aggregates computed over a filtered order set.
type Summary struct {
	Total      int             `json:"total"`
	Pending    int             `json:"pending"`
	Approved   int             `json:"approved"`
	Delivered  int             `json:"delivered"`
	Critical   int             `json:"critical"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

type Export struct {
	ID       string
	Filename string
	Content  []byte
}

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusDelivered
}

func ValidUrgency(u string) bool {
	return u == UrgencyNormal || u == UrgencyHigh || u == UrgencyCritical
}
