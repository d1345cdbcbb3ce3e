package renderdocument

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feasibility-workers/internal/common/config"
	"feasibility-workers/internal/common/errors"
	"feasibility-workers/internal/common/logger"
)

var fixedNow = time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)

func createTestConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		DocumentTTL: time.Hour,
		BrandName:   "AlphaBeta Consulting",
		Currency:    "EUR",
	}
}

func createTestInput(docType string) *Input {
	return &Input{
		AnswerSet:    json.RawMessage(`{"businessName":"Chez Léa","businessType":"service","targetRevenueService":4000}`),
		DocumentType: docType,
	}
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func createTestHandler(t *testing.T, rdb redis.Cmdable, db *sql.DB) *Handler {
	t.Helper()
	h, err := NewHandler(createTestConfig(), rdb, db, logger.NewTestLogger(t))
	require.NoError(t, err)
	h.now = func() time.Time { return fixedNow }
	return h
}

func TestLoadConfig(t *testing.T) {
	c := LoadConfig(&config.Config{Document: config.DocumentConfig{BrandName: "Acme", Currency: "CHF"}})
	assert.Equal(t, 30*time.Second, c.Timeout)
	assert.Equal(t, 24*time.Hour, c.DocumentTTL)
	assert.Equal(t, "Acme", c.BrandName)

	c = LoadConfig(&config.Config{
		Workers:  map[string]config.WorkerConfig{TaskType: {Timeout: 10000}},
		Document: config.DocumentConfig{TTL: 60000},
	})
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, time.Minute, c.DocumentTTL)
}

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		docType  string
		filename string
	}{
		{docType: "feasibility", filename: "Test-Faisabilite-Chez-Léa.pdf"},
		{docType: "summary", filename: "Resume-Operationnel-Chez-Léa.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.docType, func(t *testing.T) {
			mr, rdb := setupRedis(t)
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec("INSERT INTO document_audit").
				WithArgs(sqlmock.AnyArg(), tt.docType, tt.filename, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(1, 1))

			h := createTestHandler(t, rdb, db)
			out, err := h.Execute(context.Background(), createTestInput(tt.docType))
			require.NoError(t, err)

			assert.Equal(t, tt.filename, out.Filename)
			assert.Equal(t, tt.docType, out.DocumentType)
			assert.GreaterOrEqual(t, out.PageCount, 1)
			assert.Equal(t, "2026-10-17T09:30:00Z", out.ExpiresAt)

			stored, err := mr.Get(DocumentKey(out.DocumentID))
			require.NoError(t, err)
			assert.Equal(t, "%PDF", stored[:4])
			assert.Equal(t, out.SizeBytes, len(stored))
			assert.Equal(t, time.Hour, mr.TTL(DocumentKey(out.DocumentID)))

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_WithoutAudit(t *testing.T) {
	_, rdb := setupRedis(t)
	h := createTestHandler(t, rdb, nil)

	out, err := h.Execute(context.Background(), createTestInput("feasibility"))
	require.NoError(t, err)
	assert.NotEmpty(t, out.DocumentID)
	assert.Equal(t, 30, out.FeasibilityScore)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) (redis.Cmdable, *sql.DB)
		input *Input
		code  errors.ErrorCode
	}{
		{
			name: "unknown document type",
			setup: func(t *testing.T) (redis.Cmdable, *sql.DB) {
				rdb, _ := redismock.NewClientMock()
				return rdb, nil
			},
			input: createTestInput("invoice"),
			code:  errors.ErrCodeInvalidDocumentType,
		},
		{
			name: "redis write fails",
			setup: func(t *testing.T) (redis.Cmdable, *sql.DB) {
				mr, rdb := setupRedis(t)
				mr.Close()
				return rdb, nil
			},
			input: createTestInput("summary"),
			code:  errors.ErrCodeDocumentStoreFailed,
		},
		{
			name: "audit insert fails",
			setup: func(t *testing.T) (redis.Cmdable, *sql.DB) {
				_, rdb := setupRedis(t)
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				t.Cleanup(func() { db.Close() })
				mock.ExpectExec("INSERT INTO document_audit").WillReturnError(stderrors.New("relation does not exist"))
				return rdb, db
			},
			input: createTestInput("summary"),
			code:  errors.ErrCodeDatabaseInsertFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rdb, db := tt.setup(t)
			h := createTestHandler(t, rdb, db)

			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)

			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, tt.code, stdErr.Code)
		})
	}
}
