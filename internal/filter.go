package internal

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pharmamed/orders/internal/model"
)

// FilterOrders returns the orders matching the selection, most recent
// first. The selection is either a business-date bucket or
// SelectionAll. Orders without a valid creation instant are excluded
// from every selection.
func FilterOrders(orders []model.Order, selection string) []model.Order {
	filtered := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		bucket, ok := BusinessDate(o.CreatedAt)
		if !ok {
			continue
		}
		if selection == SelectionAll || bucket == selection {
			filtered = append(filtered, o)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered
}

// Buckets returns the distinct business dates across all orders,
// most recent first.
func Buckets(orders []model.Order) []string {
	seen := make(map[string]struct{})
	var buckets []string
	for _, o := range orders {
		bucket, ok := BusinessDate(o.CreatedAt)
		if !ok {
			continue
		}
		if _, dup := seen[bucket]; dup {
			continue
		}
		seen[bucket] = struct{}{}
		buckets = append(buckets, bucket)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(buckets)))
	return buckets
}

// Summarize computes the dashboard aggregates over a filtered set.
func Summarize(orders []model.Order) model.Summary {
	s := model.Summary{Total: len(orders), TotalValue: decimal.Zero}
	for _, o := range orders {
		switch o.Status {
		case model.StatusPending:
			s.Pending++
		case model.StatusApproved:
			s.Approved++
		case model.StatusDelivered:
			s.Delivered++
		}
		if o.Urgency == model.UrgencyCritical {
			s.Critical++
		}
		s.TotalValue = s.TotalValue.Add(o.TotalPrice)
	}
	return s
}
