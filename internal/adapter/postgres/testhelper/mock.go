package testhelper

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/lexibase/curator/internal/adapter/postgres"
)

// NewMockQuerier returns a pgxmock pool usable wherever a postgres.Querier
// is expected, plus the mock handle for setting expectations.
func NewMockQuerier(t *testing.T) (postgres.Querier, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("testhelper: create pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, mock
}

// ExpectationsWereMet fails the test if any declared expectation was not
// satisfied.
func ExpectationsWereMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet pgxmock expectations: %v", err)
	}
}
