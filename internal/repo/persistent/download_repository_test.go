package persistent

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectDownloadKeyLookup(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM "downloads" WHERE user_id = \$1 AND template_id = \$2 AND idempotency_key = \$3`).
		WithArgs("user-1", "template-1", "key-1", 1).
		WillReturnRows(rows)
}

func expectWalletLock(mock sqlmock.Sqlmock, balance int) {
	mock.ExpectQuery(`SELECT \* FROM "wallets" WHERE user_id = \$1 .* FOR UPDATE`).
		WithArgs("user-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "balance"}).
			AddRow("wallet-1", "user-1", balance))
}

func TestDownloadRepository_RecordPaidDownload_DebitsOnce(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDownloadRepository(db)

	expectDownloadKeyLookup(mock, sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	expectWalletLock(mock, 10)
	mock.ExpectExec(`UPDATE "wallets" SET "balance"=\$1`).
		WithArgs(7, "wallet-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "credit_transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "downloads"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "templates" SET "downloads_count"=downloads_count \+ \$1`).
		WithArgs(1, "template-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	download, replay, err := repo.RecordPaidDownload("user-1", "template-1", "key-1", 3)
	require.NoError(t, err)
	require.NotNil(t, download)
	assert.False(t, replay)
	assert.Equal(t, 3, download.CostCredits)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownloadRepository_RecordPaidDownload_ReplayedKeySkipsDebit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDownloadRepository(db)

	// The prior row satisfies the request before any transaction opens, so a
	// retried key can never touch the wallet.
	expectDownloadKeyLookup(mock, sqlmock.NewRows(
		[]string{"id", "user_id", "template_id", "cost_credits", "idempotency_key"}).
		AddRow("download-1", "user-1", "template-1", 3, "key-1"))

	download, replay, err := repo.RecordPaidDownload("user-1", "template-1", "key-1", 3)
	require.NoError(t, err)
	require.NotNil(t, download)
	assert.True(t, replay)
	assert.Equal(t, "download-1", download.ID)
	assert.Equal(t, 3, download.CostCredits)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownloadRepository_RecordPaidDownload_InsufficientCreditsRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDownloadRepository(db)

	expectDownloadKeyLookup(mock, sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	expectWalletLock(mock, 1)
	mock.ExpectRollback()
	// After the failed transaction the key is checked once more in case a
	// concurrent request with the same key committed first.
	expectDownloadKeyLookup(mock, sqlmock.NewRows([]string{"id"}))

	download, replay, err := repo.RecordPaidDownload("user-1", "template-1", "key-1", 3)
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Nil(t, download)
	assert.False(t, replay)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownloadRepository_RecordPaidDownload_LostUniqueRaceReturnsWinnerRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDownloadRepository(db)

	expectDownloadKeyLookup(mock, sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	expectWalletLock(mock, 10)
	mock.ExpectExec(`UPDATE "wallets" SET "balance"=\$1`).
		WithArgs(7, "wallet-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "credit_transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "downloads"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()
	expectDownloadKeyLookup(mock, sqlmock.NewRows(
		[]string{"id", "user_id", "template_id", "cost_credits", "idempotency_key"}).
		AddRow("download-1", "user-1", "template-1", 3, "key-1"))

	download, replay, err := repo.RecordPaidDownload("user-1", "template-1", "key-1", 3)
	require.NoError(t, err)
	require.NotNil(t, download)
	assert.True(t, replay)
	assert.Equal(t, "download-1", download.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
