package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vitrina/models"
	"vitrina/utils"

	"github.com/julienschmidt/httprouter"
)

// ListProducts returns the current filtered view together with the active
// criteria. An empty view is a normal "no matches" response, not an error.
func (s *Store) ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"products": s.Filtered(),
		"criteria": s.Criteria(),
		"count":    len(s.Filtered()),
	})
}

// GetProduct resolves one product by id against the full collection and makes
// it the active selection.
func (s *Store) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	product, ok := s.SelectProduct(ps.ByName("productid"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// PatchFilter merges a partial criteria update and responds with the new view.
func (s *Store) PatchFilter(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var patch models.FilterPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Println("PatchFilter decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := s.SetFilter(patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"products": s.Filtered(),
		"criteria": s.Criteria(),
		"count":    len(s.Filtered()),
	})
}

// Reload replaces the collection from the provider.
func (s *Store) Reload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := s.Load(ctx); err != nil {
		log.Println("Reload catalog error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reload catalog")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"count": len(s.Products()),
	})
}
