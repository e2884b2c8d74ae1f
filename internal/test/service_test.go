package test_test

import (
	"context"
	"errors"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/pharmamed/orders/internal"
	mock_internal "github.com/pharmamed/orders/internal/mock"
	"github.com/pharmamed/orders/internal/model"
)

var _ = Describe("Service", func() {
	var (
		srv internal.IService
		rep *mock_internal.MockIRepository
	)
	BeforeEach(func() {
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()

		logger, err := zap.NewDevelopment()
		Expect(err).ShouldNot(HaveOccurred())

		rep = mock_internal.NewMockIRepository(ctrl)

		srv = internal.NewService(rep, internal.NewExportGenerator(logger.Sugar()), "5678", logger.Sugar())
	})
	Context("Service tests", func() {
		It("GetOrders filters by bucket and summarizes", func() {
			ctx := context.Background()
			morning, _ := time.Parse(time.RFC3339, "2025-01-15T05:30:00Z") // buckets to 2025-01-14
			noon, _ := time.Parse(time.RFC3339, "2025-01-15T08:00:00Z")    // buckets to 2025-01-15

			stored := []model.Order{
				{ID: 1, Status: model.StatusPending, Urgency: model.UrgencyCritical, TotalPrice: decimal.NewFromInt(250), CreatedAt: morning},
				{ID: 2, Status: model.StatusApproved, TotalPrice: decimal.NewFromInt(100), CreatedAt: noon},
			}

			rep.EXPECT().List(ctx).Return(stored, nil)

			orders, summary, err := srv.GetOrders(ctx, "2025-01-14")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(orders).Should(HaveLen(1))
			Expect(orders[0].ID).Should(Equal(1))
			Expect(summary.Total).Should(Equal(1))
			Expect(summary.Critical).Should(Equal(1))
			Expect(summary.TotalValue.Equal(decimal.NewFromInt(250))).Should(BeTrue())
		})
		It("GetOrders with no matches", func() {
			ctx := context.Background()

			rep.EXPECT().List(ctx).Return(nil, nil)

			_, _, err := srv.GetOrders(ctx, internal.SelectionAll)
			Expect(err).Should(HaveOccurred())
			Expect(err).Should(Equal(internal.ErrNoRecords))
		})
		It("GetOrders with repository error", func() {
			ctx := context.Background()
			e := errors.New("some error")

			rep.EXPECT().List(ctx).Return(nil, e)

			_, _, err := srv.GetOrders(ctx, internal.SelectionAll)
			Expect(err).Should(Equal(e))
		})
		It("CreateOrder derives total price and defaults", func() {
			ctx := context.Background()
			input := model.OrderInput{
				PharmacyName:     "Central Pharmacy",
				PharmacyLocation: "Downtown Dubai",
				ProductName:      "Paracetamol 500mg",
				Quantity:         100,
				UnitPrice:        decimal.NewFromFloat(2.5),
				Urgency:          model.UrgencyNormal,
				DateOrdered:      "2025-01-15",
			}

			rep.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
				func(_ context.Context, o model.Order) (model.Order, error) {
					Expect(o.TotalPrice.Equal(decimal.NewFromInt(250))).Should(BeTrue())
					Expect(o.Status).Should(Equal(model.StatusPending))
					Expect(o.DateOrdered).Should(Equal("2025-01-15"))
					o.ID = 7
					return o, nil
				})

			order, err := srv.CreateOrder(ctx, input)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(order.ID).Should(Equal(7))
		})
		It("CreateOrder rejects missing fields before the repository", func() {
			ctx := context.Background()

			_, err := srv.CreateOrder(ctx, model.OrderInput{ProductName: "Paracetamol 500mg"})
			Expect(err).Should(HaveOccurred())
			Expect(errors.Is(err, internal.ErrValidation)).Should(BeTrue())
		})
		It("CreateOrder rejects unknown urgency", func() {
			ctx := context.Background()
			input := model.OrderInput{
				PharmacyName:     "Central Pharmacy",
				PharmacyLocation: "Downtown Dubai",
				ProductName:      "Paracetamol 500mg",
				Quantity:         1,
				UnitPrice:        decimal.NewFromInt(1),
				Urgency:          "ASAP",
			}

			_, err := srv.CreateOrder(ctx, input)
			Expect(err).Should(Equal(internal.ErrUnknownUrgency))
		})
		It("SetOrderStatus without error", func() {
			ctx := context.Background()

			rep.EXPECT().UpdateStatus(ctx, 1, model.StatusApproved).Return(model.Order{ID: 1, Status: model.StatusApproved}, nil)

			order, err := srv.SetOrderStatus(ctx, 1, model.StatusApproved)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(order.Status).Should(Equal(model.StatusApproved))
		})
		It("SetOrderStatus with unknown status", func() {
			ctx := context.Background()

			_, err := srv.SetOrderStatus(ctx, 1, "Shipped")
			Expect(err).Should(Equal(internal.ErrUnknownStatus))
		})
		It("DeleteOrder with correct code", func() {
			ctx := context.Background()

			rep.EXPECT().Delete(ctx, 1).Return(nil)

			err := srv.DeleteOrder(ctx, 1, "5678")
			Expect(err).ShouldNot(HaveOccurred())
		})
		It("DeleteOrder with wrong code skips the repository", func() {
			ctx := context.Background()

			err := srv.DeleteOrder(ctx, 1, "0000")
			Expect(err).Should(HaveOccurred())
			Expect(err).Should(Equal(internal.ErrWrongDeleteCode))
		})
		It("ExportOrders without error", func() {
			ctx := context.Background()
			noon, _ := time.Parse(time.RFC3339, "2025-01-15T08:00:00Z")

			rep.EXPECT().List(ctx).Return([]model.Order{
				{ID: 1, PharmacyName: "Central Pharmacy", ProductName: "Paracetamol 500mg", Quantity: 100, CreatedAt: noon, Urgency: model.UrgencyNormal, Status: model.StatusPending},
			}, nil)

			export, err := srv.ExportOrders(ctx, internal.SelectionAll)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(export.Content).ShouldNot(BeEmpty())
			Expect(export.Filename).Should(HavePrefix("pharmacy-orders-all-dates-"))
		})
		It("ExportOrders with nothing to export", func() {
			ctx := context.Background()

			rep.EXPECT().List(ctx).Return(nil, nil)

			_, err := srv.ExportOrders(ctx, internal.SelectionAll)
			Expect(err).Should(HaveOccurred())
			Expect(err).Should(Equal(internal.ErrEmptyExport))
		})
	})
})
