// Package restapi lee las colecciones de inventario desde la API REST del backend
// de inventario (listas planas o paginadas con {"results": [...], "next": url}).
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
	"github.com/jhoicas/medstock-api/pkg/config"
)

var _ repository.InventorySource = (*Source)(nil)

// Rutas de cada colección en el backend.
const (
	PathItems        = "/api/items/"
	PathBatches      = "/api/batches/"
	PathStockLines   = "/api/stock-lines/"
	PathSites        = "/api/sites/"
	PathLocations    = "/api/locations/"
	PathLotInstances = "/api/lot-instances/"
	PathContainers   = "/api/containers/"
)

// maxPages corta la paginación si el backend devuelve un "next" cíclico.
const maxPages = 500

// Source cliente resty hacia el backend de inventario.
type Source struct {
	http *resty.Client
	log  zerolog.Logger
}

// New construye el cliente con base URL, timeout, reintentos y token.
func New(cfg config.SourceConfig, log zerolog.Logger) *Source {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "application/json")
	if cfg.APIToken != "" {
		client.SetHeader("Authorization", "Token "+cfg.APIToken)
	}
	return &Source{http: client, log: log}
}

type page[T any] struct {
	Results []T     `json:"results"`
	Next    *string `json:"next"`
}

// getList recorre todas las páginas de path. Lista vacía = colección cargada sin registros.
func getList[T any](ctx context.Context, s *Source, path string) ([]T, error) {
	out := make([]T, 0)
	url := path
	for i := 0; i < maxPages && url != ""; i++ {
		resp, err := s.http.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", path, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("GET %s: status %d", path, resp.StatusCode())
		}

		body := bytes.TrimSpace(resp.Body())
		if len(body) > 0 && body[0] == '[' {
			var list []T
			if err := json.Unmarshal(body, &list); err != nil {
				return nil, fmt.Errorf("decodificar %s: %w", path, err)
			}
			return append(out, list...), nil
		}

		var p page[T]
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decodificar %s: %w", path, err)
		}
		out = append(out, p.Results...)
		url = ""
		if p.Next != nil {
			url = *p.Next
		}
	}
	if url != "" {
		return nil, fmt.Errorf("GET %s: más de %d páginas", path, maxPages)
	}
	s.log.Debug().Str("path", path).Int("count", len(out)).Msg("colección leída")
	return out, nil
}

func (s *Source) Items(ctx context.Context) ([]entity.Item, error) {
	return getList[entity.Item](ctx, s, PathItems)
}

func (s *Source) Batches(ctx context.Context) ([]entity.Batch, error) {
	raw, err := getList[batchWire](ctx, s, PathBatches)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Batch, 0, len(raw))
	for _, w := range raw {
		b := entity.Batch{ID: w.ID, Item: w.Item}
		if w.ExpiresAt != nil {
			t, ok := parseDate(*w.ExpiresAt)
			if !ok {
				s.log.Warn().Int64("batch_id", w.ID).Str("expires_at", *w.ExpiresAt).Msg("fecha de vencimiento ilegible, se ignora")
			} else {
				b.ExpiresAt = &t
			}
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *Source) StockLines(ctx context.Context) ([]entity.StockLine, error) {
	raw, err := getList[stockLineWire](ctx, s, PathStockLines)
	if err != nil {
		return nil, err
	}
	out := make([]entity.StockLine, 0, len(raw))
	for _, w := range raw {
		out = append(out, entity.StockLine{
			ID:          w.ID,
			Item:        w.Item,
			Batch:       w.Batch,
			LotInstance: w.LotInstance,
			Quantity:    w.Quantity.String(),
		})
	}
	return out, nil
}

func (s *Source) Sites(ctx context.Context) ([]entity.Site, error) {
	return getList[entity.Site](ctx, s, PathSites)
}

func (s *Source) Locations(ctx context.Context) ([]entity.Location, error) {
	return getList[entity.Location](ctx, s, PathLocations)
}

func (s *Source) LotInstances(ctx context.Context) ([]entity.LotInstance, error) {
	return getList[entity.LotInstance](ctx, s, PathLotInstances)
}

func (s *Source) Containers(ctx context.Context) ([]entity.Container, error) {
	return getList[entity.Container](ctx, s, PathContainers)
}
