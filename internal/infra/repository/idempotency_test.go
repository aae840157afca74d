//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"hotel-booking/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

func (m *MockDBTX) CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	mockArgs := m.Called(ctx, table, columns, src)
	return mockArgs.Get(0).(int64), mockArgs.Error(1)
}

func TestIdempotencyRepository_DeleteExpired(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tag       pgconn.CommandTag
		execErr   error
		want      int64
		wantError bool
	}{
		{
			name: "正常系: 期限切れのキーを削除件数とともに返す",
			tag:  pgconn.NewCommandTag("DELETE 3"),
			want: 3,
		},
		{
			name: "正常系: 対象なし",
			tag:  pgconn.NewCommandTag("DELETE 0"),
			want: 0,
		},
		{
			name:      "異常系: DBエラーはリポジトリエラーとして返す",
			tag:       pgconn.CommandTag{},
			execErr:   &pgconn.PgError{Code: "57014"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("Exec", mock.Anything, deleteExpiredIdempotencyKeysSQL, []any{now}).
				Return(tt.tag, tt.execErr)
			repo := NewIdempotencyRepository(dbtx)

			n, err := repo.DeleteExpired(context.Background(), now)

			if tt.wantError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, n)
			}
			dbtx.AssertExpectations(t)
		})
	}
}
