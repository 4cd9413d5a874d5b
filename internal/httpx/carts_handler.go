package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nanokusa/go-shop-catalog/internal/cart"
	"github.com/nanokusa/go-shop-catalog/internal/catalog"
	"github.com/nanokusa/go-shop-catalog/internal/events"
	"github.com/nanokusa/go-shop-catalog/internal/ident"
	kafkax "github.com/nanokusa/go-shop-catalog/internal/kafka"
	"github.com/nanokusa/go-shop-catalog/internal/logger"
	"github.com/nanokusa/go-shop-catalog/internal/status"
)

type CartsHandler struct {
	Carts    *cart.Service
	Producer *kafkax.Producer
	Service  string
	Log      *logger.Logger
}

type cartItemReq struct {
	VariantID ident.ID[catalog.Variant] `json:"variant_id"`
}

func (h *CartsHandler) Register(r *chi.Mux) {
	r.Post("/carts", h.createCart)
	r.Get("/carts/{id}", h.getCart)
	r.Post("/carts/{id}/items", h.addItem)
	r.Delete("/carts/{id}/entries/{entryID}", h.removeEntry)
}

func (h *CartsHandler) createCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Carts.Create(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CartsHandler) getCart(w http.ResponseWriter, r *http.Request) {
	id, err := ident.Parse[cart.Cart](chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Carts.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartsHandler) addItem(w http.ResponseWriter, r *http.Request) {
	id, err := ident.Parse[cart.Cart](chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req cartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, status.InvalidArgument("body", "malformed", "a JSON object"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.Carts.AddItem(ctx, id, req.VariantID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.publishUpdate(r, c, events.CartActionItemAdded, req.VariantID.Int64(), 0)
	writeJSON(w, http.StatusOK, c)
}

func (h *CartsHandler) removeEntry(w http.ResponseWriter, r *http.Request) {
	id, err := ident.Parse[cart.Cart](chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	entryID, err := ident.Parse[cart.Entry](chi.URLParam(r, "entryID"))
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.Carts.RemoveItem(ctx, id, entryID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.publishUpdate(r, c, events.CartActionItemRemoved, 0, entryID.Int64())
	writeJSON(w, http.StatusOK, c)
}

func (h *CartsHandler) publishUpdate(r *http.Request, c *cart.Cart, action string, variantID, entryID int64) {
	var totalCents int64
	if total, err := c.TotalAmount(); err == nil {
		totalCents = total.MinorUnits()
	} else {
		h.Log.Warn("cart total unavailable for event", "cart_id", c.ID.Int64(), "err", err)
	}
	publish(h.Producer, h.Service, r.Header.Get("X-Request-Id"), events.EventCartUpdated,
		events.PartitionKey(c.ID.Int64()),
		events.CartUpdatedPayload{
			CartID:     c.ID.Int64(),
			Action:     action,
			VariantID:  variantID,
			EntryID:    entryID,
			EntryCount: len(c.Entries),
			TotalCents: totalCents,
		})
}
