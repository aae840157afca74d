//go:build unit

package infra

import (
	"testing"

	"hotel-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr_ClassifiesPostgresErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want RepositoryErrorKind
	}{
		{"行なし", pgx.ErrNoRows, KindNotFound},
		{"一意制約違反", &pgconn.PgError{Code: "23505"}, KindDuplicateKey},
		{"外部キー違反", &pgconn.PgError{Code: "23503"}, KindForeignKeyViolated},
		{"排他制約違反", &pgconn.PgError{Code: "23P01"}, KindConflict},
		{"チェック制約違反", &pgconn.PgError{Code: "23514"}, KindCheckViolated},
		{"その他のPostgreSQLエラー", &pgconn.PgError{Code: "57014"}, KindDBFailure},
		{"非PostgreSQLエラー", errs.New("connection reset"), KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapRepoErr("operation failed", tt.err)
			assert.True(t, IsKind(err, tt.want), "got %v", err)
		})
	}
}

func TestWrapRepoErr_ExplicitKindWins(t *testing.T) {
	err := WrapRepoErr("refund not found", &pgconn.PgError{Code: "23505"}, KindNotFound)

	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindDuplicateKey))
}

func TestRepositoryError_UnwrapKeepsCause(t *testing.T) {
	err := WrapRepoErr("lookup failed", pgx.ErrNoRows)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Contains(t, err.Error(), "NOT_FOUND: lookup failed")
}

func TestNewRepoErr(t *testing.T) {
	err := NewRepoErr(KindPreconditionFailed, "status changed concurrently")

	assert.True(t, IsKind(err, KindPreconditionFailed))
	assert.Equal(t, "PRECONDITION_FAILED: status changed concurrently", err.Error())
}
