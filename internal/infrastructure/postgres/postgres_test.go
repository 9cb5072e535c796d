package postgres

import (
	"context"
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// fakeRows sirve filas fijas; Scan copia cada valor en el destino por reflexión.
type fakeRows struct {
	data [][]any
	pos  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.data[r.pos-1], nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return errors.New("número de columnas distinto")
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if row[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(row[i]))
	}
	return nil
}

type fakeQuerier struct {
	rows    map[string][][]any
	execSQL []string
	failOn  string
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execSQL = append(q.execSQL, sql)
	return pgconn.CommandTag{}, nil
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	norm := strings.Join(strings.Fields(sql), " ") + " "
	for table, data := range q.rows {
		if strings.Contains(norm, "FROM "+table+" ") {
			if table == q.failOn {
				return nil, errors.New("relation does not exist")
			}
			return &fakeRows{data: data}, nil
		}
	}
	return &fakeRows{}, nil
}

func (q *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func i64(v int64) *int64 { return &v }

func TestInventorySource_EscaneaColecciones(t *testing.T) {
	ctx := context.Background()
	exp := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	q := &fakeQuerier{rows: map[string][][]any{
		"items":       {{int64(1), "Adrénaline", false}},
		"batches":     {{int64(10), int64(1), &exp}, {int64(11), int64(1), nil}},
		"stock_lines": {{int64(5), int64(1), i64(10), int64(3), decimal.RequireFromString("2.500")}, {int64(6), int64(1), nil, int64(3), decimal.Zero}},
		"containers":  {{int64(2), nil}},
	}}
	src := NewInventorySource(q)

	items, err := src.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Item{{ID: 1, Name: "Adrénaline", IsConsumable: false}}, items)

	batches, err := src.Batches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	require.NotNil(t, batches[0].ExpiresAt)
	assert.True(t, exp.Equal(*batches[0].ExpiresAt))
	assert.Nil(t, batches[1].ExpiresAt)

	lines, err := src.StockLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "2.5", lines[0].Quantity)
	assert.Equal(t, int64(10), *lines[0].Batch)
	assert.Nil(t, lines[1].Batch)
	assert.Equal(t, "0", lines[1].Quantity)

	containers, err := src.Containers(ctx)
	require.NoError(t, err)
	assert.Nil(t, containers[0].Location)

	// tabla vacía: slice vacío, no nil (colección cargada)
	sites, err := src.Sites(ctx)
	require.NoError(t, err)
	assert.NotNil(t, sites)
	assert.Empty(t, sites)
}

func TestInventorySource_ErrorDeConsulta(t *testing.T) {
	q := &fakeQuerier{rows: map[string][][]any{"locations": nil}, failOn: "locations"}
	_, err := NewInventorySource(q).Locations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list locations")
}

func TestAckStore_UsaUpsert(t *testing.T) {
	q := &fakeQuerier{rows: map[string][][]any{
		"alert_acknowledgments": {{"expired-1"}, {"low-stock-4"}},
	}}
	store := NewAckStore(q)
	ctx := context.Background()

	require.NoError(t, store.Acknowledge(ctx, entity.Acknowledgment{AlertID: "expired-1", UserID: "u"}))
	require.NoError(t, store.Unacknowledge(ctx, "expired-1"))
	require.Len(t, q.execSQL, 2)
	assert.Contains(t, q.execSQL[0], "ON CONFLICT (alert_id)")
	assert.Contains(t, q.execSQL[1], "DELETE FROM alert_acknowledgments")

	ids, err := store.IDs(ctx)
	require.NoError(t, err)
	assert.True(t, ids.Has("expired-1"))
	assert.True(t, ids.Has("low-stock-4"))
	assert.False(t, ids.Has("expiring-2"))
}

func TestMigrations_Anotadas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		body, err := migrationsFS.ReadFile(f)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", f)
		assert.Contains(t, string(body), "-- +goose Down", f)
	}
}
