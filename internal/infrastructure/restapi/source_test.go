package restapi_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstock-api/internal/infrastructure/restapi"
	"github.com/jhoicas/medstock-api/pkg/config"
)

func newSource(t *testing.T, h http.Handler, retries int) *restapi.Source {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return restapi.New(config.SourceConfig{
		BaseURL:  srv.URL,
		APIToken: "secreto",
		Timeout:  2 * time.Second,
		Retries:  retries,
	}, zerolog.Nop())
}

func TestItems_ListaPlanaYToken(t *testing.T) {
	var auth string
	mux := http.NewServeMux()
	mux.HandleFunc(restapi.PathItems, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		fmt.Fprint(w, `[{"id":1,"name":"Compresses","is_consumable":true}]`)
	})
	src := newSource(t, mux, 0)

	items, err := src.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Compresses", items[0].Name)
	assert.True(t, items[0].IsConsumable)
	assert.Equal(t, "Token secreto", auth)
}

func TestBatches_PaginadoYFechas(t *testing.T) {
	mux := http.NewServeMux()
	var srvURL string
	mux.HandleFunc(restapi.PathBatches, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"results":[{"id":3,"item":1,"expires_at":"no es fecha"},{"id":4,"item":2,"expires_at":"2024-06-01T00:00:00Z"}],"next":null}`)
			return
		}
		fmt.Fprintf(w, `{"results":[{"id":1,"item":1,"expires_at":"2024-02-15"},{"id":2,"item":1,"expires_at":null}],"next":"%s%s?page=2"}`, srvURL, restapi.PathBatches)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	srvURL = srv.URL
	src := restapi.New(config.SourceConfig{BaseURL: srv.URL, Timeout: time.Second}, zerolog.Nop())

	batches, err := src.Batches(context.Background())
	require.NoError(t, err)
	require.Len(t, batches, 4)

	require.NotNil(t, batches[0].ExpiresAt)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), *batches[0].ExpiresAt)
	assert.Nil(t, batches[1].ExpiresAt)
	assert.Nil(t, batches[2].ExpiresAt, "fecha ilegible = sin vencimiento")
	require.NotNil(t, batches[3].ExpiresAt)
	assert.Equal(t, 2024, batches[3].ExpiresAt.Year())
}

func TestBatches_FechaHoraSinZona(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(restapi.PathBatches, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":1,"item":1,"expires_at":"2024-06-01T00:00:00"},
			{"id":2,"item":1,"expires_at":"2024-06-01 08:30:00"},
			{"id":3,"item":1,"expires_at":"2024-06-01T00:00:00.250"}
		]`)
	})
	src := newSource(t, mux, 0)

	batches, err := src.Batches(context.Background())
	require.NoError(t, err)
	require.Len(t, batches, 3)
	for _, b := range batches {
		require.NotNil(t, b.ExpiresAt, "lote %d", b.ID)
		assert.Equal(t, time.June, b.ExpiresAt.Month(), "lote %d", b.ID)
		assert.Equal(t, 1, b.ExpiresAt.Day(), "lote %d", b.ID)
	}
	assert.Equal(t, 8, batches[1].ExpiresAt.Hour())
}

func TestPaginacionSinFin_Falla(t *testing.T) {
	var (
		srvURL string
		calls  int32
	)
	mux := http.NewServeMux()
	mux.HandleFunc(restapi.PathStockLines, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprintf(w, `{"results":[{"id":1,"item":1,"lot_instance":1,"quantity":"1"}],"next":"%s%s?page=2"}`, srvURL, restapi.PathStockLines)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	srvURL = srv.URL
	src := restapi.New(config.SourceConfig{BaseURL: srv.URL, Timeout: time.Second}, zerolog.Nop())

	lines, err := src.StockLines(context.Background())
	require.Error(t, err, "una lista truncada no se entrega como completa")
	assert.Nil(t, lines)
	assert.Contains(t, err.Error(), "páginas")
	assert.Positive(t, atomic.LoadInt32(&calls))
}

func TestStockLines_CantidadNumericaOTexto(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(restapi.PathStockLines, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":1,"item":1,"batch":2,"lot_instance":3,"quantity":"2.500"},
			{"id":2,"item":1,"batch":null,"lot_instance":3,"quantity":4},
			{"id":3,"item":1,"lot_instance":3,"quantity":null}
		]`)
	})
	src := newSource(t, mux, 0)

	lines, err := src.StockLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "2.500", lines[0].Quantity)
	assert.Equal(t, int64(2), *lines[0].Batch)
	assert.Equal(t, "4", lines[1].Quantity)
	assert.Nil(t, lines[1].Batch)
	assert.Equal(t, "", lines[2].Quantity)
}

func TestColeccionVaciaNoEsNil(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(restapi.PathSites, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[],"next":null}`)
	})
	src := newSource(t, mux, 0)

	sites, err := src.Sites(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sites)
	assert.Empty(t, sites)
}

func TestErrorServidor_Reintenta(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc(restapi.PathContainers, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `[{"id":1,"location":null}]`)
	})
	src := newSource(t, mux, 1)

	containers, err := src.Containers(context.Background())
	require.NoError(t, err)
	require.Len(t, containers, 1)
	assert.Nil(t, containers[0].Location)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestErrorCliente_NoReintentaYFalla(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc(restapi.PathLocations, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	})
	src := newSource(t, mux, 2)

	_, err := src.Locations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
