package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nanokusa/go-shop-catalog/internal/cart"
	"github.com/nanokusa/go-shop-catalog/internal/checkout"
	"github.com/nanokusa/go-shop-catalog/internal/events"
	"github.com/nanokusa/go-shop-catalog/internal/ident"
	kafkax "github.com/nanokusa/go-shop-catalog/internal/kafka"
	"github.com/nanokusa/go-shop-catalog/internal/money"
	"github.com/nanokusa/go-shop-catalog/internal/status"
)

type CheckoutsHandler struct {
	Checkouts *checkout.Service
	Producer  *kafkax.Producer
	Service   string
}

type createCheckoutReq struct {
	CartID ident.ID[cart.Cart] `json:"cart_id"`
}

type submitCheckoutReq struct {
	ShippingID          *ident.ID[checkout.ShippingMethod] `json:"shipping_id,omitempty"`
	PaymentID           *ident.ID[checkout.PaymentMethod]  `json:"payment_id,omitempty"`
	ContactEmail        *string                            `json:"contact_email,omitempty"`
	ReceiverName        *string                            `json:"receiver_name,omitempty"`
	ReceiverCountryCode *string                            `json:"receiver_country_code,omitempty"`
	ReceiverAddress     *string                            `json:"receiver_address,omitempty"`
	ReceiverPostcode    *string                            `json:"receiver_postcode,omitempty"`
	ReceiverPhone       *string                            `json:"receiver_phone,omitempty"`
}

// checkoutView adds the derived total to the serialized aggregate.
type checkoutView struct {
	*checkout.Checkout
	TotalAmount *money.Money `json:"total_amount,omitempty"`
}

func newCheckoutView(ck *checkout.Checkout) (checkoutView, error) {
	total, err := ck.TotalAmount()
	if err != nil {
		return checkoutView{}, err
	}
	return checkoutView{Checkout: ck, TotalAmount: total}, nil
}

func (h *CheckoutsHandler) Register(r *chi.Mux) {
	r.Post("/checkouts", h.createCheckout)
	r.Get("/checkouts/{id}", h.getCheckout)
	r.Put("/checkouts/{id}/information", h.submitInformation)
	r.Get("/carts/{cartID}/checkout", h.getCheckoutByCart)
	r.Get("/shipping-methods", h.listShippingMethods)
	r.Get("/payment-methods", h.listPaymentMethods)
}

func (h *CheckoutsHandler) createCheckout(w http.ResponseWriter, r *http.Request) {
	var req createCheckoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, status.InvalidArgument("body", "malformed", "a JSON object"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ck, err := h.Checkouts.Create(ctx, req.CartID)
	if err != nil {
		writeError(w, err)
		return
	}
	publish(h.Producer, h.Service, r.Header.Get("X-Request-Id"), events.EventCheckoutCreated,
		events.PartitionKey(ck.ID.Int64()),
		events.CheckoutCreatedPayload{CheckoutID: ck.ID.Int64(), CartID: ck.Cart.ID.Int64()})

	view, err := newCheckoutView(ck)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *CheckoutsHandler) getCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := ident.Parse[checkout.Checkout](chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ck, err := h.Checkouts.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := newCheckoutView(ck)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CheckoutsHandler) getCheckoutByCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := ident.Parse[cart.Cart](chi.URLParam(r, "cartID"))
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ck, err := h.Checkouts.GetByCartID(ctx, cartID)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := newCheckoutView(ck)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CheckoutsHandler) submitInformation(w http.ResponseWriter, r *http.Request) {
	id, err := ident.Parse[checkout.Checkout](chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req submitCheckoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, status.InvalidArgument("body", "malformed", "a JSON object"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ck, err := h.Checkouts.SubmitInformation(ctx, id, checkout.SubmitInput{
		ShippingID:          req.ShippingID,
		PaymentID:           req.PaymentID,
		ContactEmail:        req.ContactEmail,
		ReceiverName:        req.ReceiverName,
		ReceiverCountryCode: req.ReceiverCountryCode,
		ReceiverAddress:     req.ReceiverAddress,
		ReceiverPostcode:    req.ReceiverPostcode,
		ReceiverPhone:       req.ReceiverPhone,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	payload := events.CheckoutUpdatedPayload{
		CheckoutID:        ck.ID.Int64(),
		CartID:            ck.Cart.ID.Int64(),
		HasReceiverFields: ck.ReceiverCountryCode != nil && ck.ReceiverPostcode != nil,
	}
	if ck.Shipping != nil {
		payload.ShippingVendor = ck.Shipping.Vendor
	}
	if ck.Payment != nil {
		payload.PaymentVendor = ck.Payment.Vendor
	}
	if ck.ShippingFee != nil {
		cents := ck.ShippingFee.MinorUnits()
		payload.ShippingFeeCents = &cents
	}
	publish(h.Producer, h.Service, r.Header.Get("X-Request-Id"), events.EventCheckoutUpdated,
		events.PartitionKey(ck.ID.Int64()), payload)

	view, err := newCheckoutView(ck)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CheckoutsHandler) listShippingMethods(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	methods, err := h.Checkouts.ListShippingMethods(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, methods)
}

func (h *CheckoutsHandler) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	methods, err := h.Checkouts.ListPaymentMethods(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, methods)
}
