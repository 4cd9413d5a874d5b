package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/nanokusa/go-shop-catalog/internal/catalog"
	"github.com/nanokusa/go-shop-catalog/internal/ident"
	"github.com/nanokusa/go-shop-catalog/internal/pagination"
	"github.com/nanokusa/go-shop-catalog/internal/redisx"
)

type ProductsHandler struct {
	Catalog *catalog.Service
	Redis   *redis.Client
}

// productView adds the derived fields clients render product cards from.
type productView struct {
	*catalog.Product
	FeaturedImage *catalog.Image     `json:"featured_image,omitempty"`
	PriceRange    catalog.PriceRange `json:"price_range"`
}

func newProductView(p *catalog.Product) (productView, error) {
	r, err := p.PriceRange()
	if err != nil {
		return productView{}, err
	}
	return productView{Product: p, FeaturedImage: p.FeaturedImage(), PriceRange: r}, nil
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
}

func (h *ProductsHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := ident.Parse[catalog.Product](chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyProduct, id.Int64())
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	p, err := h.Catalog.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := newProductView(p)
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := json.Marshal(view)
	if err != nil {
		writeError(w, err)
		return
	}
	_ = h.Redis.Set(ctx, key, b, redisx.TTLProduct).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *ProductsHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	opt, err := pageOption(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	conn, err := h.Catalog.List(ctx, opt)
	if err != nil {
		writeError(w, err)
		return
	}
	out := pagination.Connection[productView]{
		Edges:           make([]pagination.Edge[productView], 0, len(conn.Edges)),
		HasNextPage:     conn.HasNextPage,
		HasPreviousPage: conn.HasPreviousPage,
	}
	for _, e := range conn.Edges {
		view, err := newProductView(e.Node)
		if err != nil {
			writeError(w, err)
			return
		}
		out.Edges = append(out.Edges, pagination.Edge[productView]{Cursor: e.Cursor, Node: view})
	}
	writeJSON(w, http.StatusOK, out)
}
