package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/qcdash/qc-dashboard/services/api/model"
)

func TestNotFoundMapsNoRows(t *testing.T) {
	assert.ErrorIs(t, notFound(pgx.ErrNoRows), model.ErrNotFound)
	assert.ErrorIs(t, notFound(fmt.Errorf("scan: %w", pgx.ErrNoRows)), model.ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, notFound(other))
	assert.NoError(t, notFound(nil))
}

func TestAffected(t *testing.T) {
	assert.ErrorIs(t, affected(pgconn.NewCommandTag("UPDATE 0"), nil), model.ErrNotFound)
	assert.NoError(t, affected(pgconn.NewCommandTag("UPDATE 1"), nil))

	boom := errors.New("boom")
	assert.Equal(t, boom, affected(pgconn.CommandTag{}, boom))
}
