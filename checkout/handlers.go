package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"vitrina/models"
	"vitrina/mq"
	"vitrina/receipt"
	"vitrina/utils"

	"github.com/julienschmidt/httprouter"
)

// PlaceOrderHandler validates the shipping form, snapshots the cart into an
// order, and clears the cart.
func (s *Service) PlaceOrderHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("PlaceOrder decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if fields := ValidateAddress(req.ShippingAddress); fields != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"error":  "Missing shipping details",
			"fields": fields,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := s.PlaceOrder(ctx, userID, req)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			utils.RespondWithError(w, http.StatusBadRequest, "No items in cart")
			return
		}
		log.Println("PlaceOrder error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	mq.Emit(r.Context(), "order-placed", mq.Event{
		EntityType: "order",
		Action:     "placed",
		EntityID:   order.OrderID,
		UserID:     userID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// PayHandler runs the simulated payment step for an order. Also registered on
// the retry route: a retry of a failed order always settles.
func (s *Service) PayHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := s.Pay(r.Context(), ps.ByName("orderid"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Println("Pay error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Payment processing failed")
		return
	}
	if order.UserID != userID {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	action := "failed"
	if order.Status == models.OrderPaid {
		action = "paid"
	}
	mq.Emit(r.Context(), "payment-"+action, mq.Event{
		EntityType: "order",
		Action:     action,
		EntityID:   order.OrderID,
		UserID:     userID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status": order.Status,
		"order":  order,
	})
}

// GetOrderHandler resolves the transient order snapshot for the confirmation
// view. A missing snapshot is an empty "not found" view, not a fault.
func (s *Service) GetOrderHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := s.Order(r.Context(), ps.ByName("orderid"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Println("GetOrder error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not read order")
		return
	}
	if order.UserID != userID {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// ReceiptHandler renders a PDF receipt for a paid order.
func (s *Service) ReceiptHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := s.Order(r.Context(), ps.ByName("orderid"))
	if err != nil || order.UserID != userID {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.Status != models.OrderPaid {
		utils.RespondWithError(w, http.StatusConflict, "Order not paid")
		return
	}

	pdf, err := receipt.Generate(order)
	if err != nil {
		log.Println("Receipt error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
