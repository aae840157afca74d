//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedCancellation(t *testing.T, f *fixture) uuid.UUID {
	t.Helper()
	id := f.requestCancellation(t, f.book(t, f.room101, f.room102), f.room101)
	f.approve(t, id)
	return id
}

func TestProcessRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 申請時の返金額でpendingの返金が作られる", func(t *testing.T) {
		f := newFixture(t)
		cancelID := approvedCancellation(t, f)

		out, err := f.refunds.ProcessRefund(ctx, commands.ProcessRefundInput{CancellationRequestID: cancelID, RefundMethodID: 2}, f.admin)

		require.NoError(t, err)
		refund, err := f.ledger.CancellationViews().FindRefundByID(ctx, out.RefundID)
		require.NoError(t, err)
		assert.Equal(t, int64(26400), refund.AmountCents)
		assert.Equal(t, "pending", refund.Status)
		assert.Equal(t, "bank_transfer", refund.RefundMethod)
		assert.Equal(t, f.admin.ID, refund.ProcessedBy)

		view, err := f.ledger.CancellationViews().FindByID(ctx, cancelID)
		require.NoError(t, err)
		assert.Equal(t, "refund_pending", view.Status)
		assert.Contains(t, f.ledger.EventTypes(), shared.EventRefundCreated)
	})

	t.Run("正常系: 申請後にポリシーが変わっても返金額は変わらない", func(t *testing.T) {
		f := newFixture(t)
		cancelID := approvedCancellation(t, f)
		f.clock.Set(date(2026, 3, 1))

		out, err := f.refunds.ProcessRefund(ctx, commands.ProcessRefundInput{CancellationRequestID: cancelID, RefundMethodID: 1}, f.admin)

		require.NoError(t, err)
		refund, err := f.ledger.CancellationViews().FindRefundByID(ctx, out.RefundID)
		require.NoError(t, err)
		assert.Equal(t, int64(26400), refund.AmountCents)
	})

	t.Run("異常系: 未承認の申請", func(t *testing.T) {
		f := newFixture(t)
		id := f.requestCancellation(t, f.book(t, f.room101), f.room101)

		_, err := f.refunds.ProcessRefund(ctx, commands.ProcessRefundInput{CancellationRequestID: id, RefundMethodID: 1}, f.admin)

		assert.ErrorIs(t, err, cancellation.ErrNotApproved)
	})

	t.Run("異常系: 二重返金", func(t *testing.T) {
		f := newFixture(t)
		cancelID := approvedCancellation(t, f)
		_, err := f.refunds.ProcessRefund(ctx, commands.ProcessRefundInput{CancellationRequestID: cancelID, RefundMethodID: 1}, f.admin)
		require.NoError(t, err)

		_, err = f.refunds.ProcessRefund(ctx, commands.ProcessRefundInput{CancellationRequestID: cancelID, RefundMethodID: 1}, f.admin)

		assert.ErrorIs(t, err, cancellation.ErrRefundAlreadyExists)
		assert.Equal(t, 1, f.ledger.RefundCount(cancelID))
	})

	t.Run("異常系: 返金方法が存在しない", func(t *testing.T) {
		f := newFixture(t)
		cancelID := approvedCancellation(t, f)

		_, err := f.refunds.ProcessRefund(ctx, commands.ProcessRefundInput{CancellationRequestID: cancelID, RefundMethodID: 99}, f.admin)

		assert.ErrorIs(t, err, cancellation.ErrRefundMethodNotFound)
		assert.Zero(t, f.ledger.RefundCount(cancelID))
	})

	t.Run("異常系: 申請が存在しない", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.refunds.ProcessRefund(ctx, commands.ProcessRefundInput{CancellationRequestID: uuid.New(), RefundMethodID: 1}, f.admin)

		assert.ErrorIs(t, err, cancellation.ErrRequestNotFound)
	})
}

func TestProcessRefund_Concurrent(t *testing.T) {
	f := newFixture(t)
	cancelID := approvedCancellation(t, f)
	const n = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.refunds.ProcessRefund(context.Background(),
				commands.ProcessRefundInput{CancellationRequestID: cancelID, RefundMethodID: 1}, f.admin)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, cancellation.ErrRefundAlreadyExists):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, rejected)
	assert.Equal(t, 1, f.ledger.RefundCount(cancelID))
}

func TestUpdateRefundStatus(t *testing.T) {
	ctx := context.Background()
	pendingRefund := func(t *testing.T, f *fixture) (uuid.UUID, uuid.UUID) {
		t.Helper()
		cancelID := approvedCancellation(t, f)
		out, err := f.refunds.ProcessRefund(ctx, commands.ProcessRefundInput{CancellationRequestID: cancelID, RefundMethodID: 1}, f.admin)
		require.NoError(t, err)
		return cancelID, out.RefundID
	}

	t.Run("正常系: processedで申請もrefund_processed", func(t *testing.T) {
		f := newFixture(t)
		cancelID, refundID := pendingRefund(t, f)

		err := f.refunds.UpdateRefundStatus(ctx, refundID, commands.UpdateRefundStatusInput{Status: "processed"})

		require.NoError(t, err)
		view, err := f.ledger.CancellationViews().FindByID(ctx, cancelID)
		require.NoError(t, err)
		assert.Equal(t, "refund_processed", view.Status)
		items, err := f.ledger.CancellationViews().ListForRefund(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("正常系: failedでは申請はrefund_pendingのまま", func(t *testing.T) {
		f := newFixture(t)
		cancelID, refundID := pendingRefund(t, f)

		err := f.refunds.UpdateRefundStatus(ctx, refundID, commands.UpdateRefundStatusInput{Status: "failed"})

		require.NoError(t, err)
		view, err := f.ledger.CancellationViews().FindByID(ctx, cancelID)
		require.NoError(t, err)
		assert.Equal(t, "refund_pending", view.Status)
	})

	t.Run("異常系: 完了済みの返金は変更できない", func(t *testing.T) {
		f := newFixture(t)
		_, refundID := pendingRefund(t, f)
		require.NoError(t, f.refunds.UpdateRefundStatus(ctx, refundID, commands.UpdateRefundStatusInput{Status: "processed"}))

		err := f.refunds.UpdateRefundStatus(ctx, refundID, commands.UpdateRefundStatusInput{Status: "failed"})

		assert.ErrorIs(t, err, cancellation.ErrInvalidRefundUpdate)
	})

	t.Run("異常系: 不明なステータス", func(t *testing.T) {
		f := newFixture(t)
		_, refundID := pendingRefund(t, f)

		err := f.refunds.UpdateRefundStatus(ctx, refundID, commands.UpdateRefundStatusInput{Status: "done"})

		assert.ErrorIs(t, err, cancellation.ErrInvalidRefundStatus)
	})

	t.Run("異常系: 返金が存在しない", func(t *testing.T) {
		f := newFixture(t)

		err := f.refunds.UpdateRefundStatus(ctx, uuid.New(), commands.UpdateRefundStatusInput{Status: "processed"})

		assert.ErrorIs(t, err, cancellation.ErrRefundNotFound)
	})
}
