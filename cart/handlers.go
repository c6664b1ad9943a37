package cart

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vitrina/models"
	"vitrina/persist"
	"vitrina/utils"

	"github.com/julienschmidt/httprouter"
)

// ProductFinder resolves product ids against the full catalog.
type ProductFinder interface {
	Product(id string) (models.Product, bool)
}

// Handler exposes the cart store over HTTP. Product ids in requests are
// resolved through the catalog before they reach the store.
type Handler struct {
	Carts   *Store
	Catalog ProductFinder
	Slots   persist.Slots
}

func NewHandler(carts *Store, catalog ProductFinder, slots persist.Slots) *Handler {
	return &Handler{Carts: carts, Catalog: catalog, Slots: slots}
}

// GetCart returns the user's cart snapshot, pulling the persisted slot back
// in when the in-memory cart is empty (fresh process, restored token).
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	snap := h.Carts.Snapshot(userID)
	if len(snap.Items) == 0 && h.Slots != nil {
		restored, err := persist.RestoreCart(r.Context(), h.Slots, userID)
		if err == nil {
			snap = h.Carts.Restore(restored)
		} else if !errors.Is(err, persist.ErrNotFound) {
			log.Println("GetCart restore error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, snap)
}

// AddItem adds a product to the cart, accumulating quantity on repeat adds.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddItem decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	product, ok := h.Catalog.Product(payload.ProductID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	snap, err := h.Carts.AddItem(userID, product, payload.Quantity)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, snap)
}

// SetQuantity overwrites a line item's quantity; zero removes it.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("SetQuantity decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	snap := h.Carts.SetQuantity(userID, ps.ByName("productid"), payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, snap)
}

// RemoveItem deletes a line item. Removing an absent item still succeeds.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	snap := h.Carts.RemoveItem(userID, ps.ByName("productid"))
	utils.RespondWithJSON(w, http.StatusOK, snap)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	snap := h.Carts.Clear(userID)
	utils.RespondWithJSON(w, http.StatusOK, snap)
}

// GetTotals derives the order total breakdown from the current cart.
func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	snap := h.Carts.Snapshot(userID)
	utils.RespondWithJSON(w, http.StatusOK, Totals(snap.Subtotal))
}
