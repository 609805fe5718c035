package product

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/decorra/decorra/internal/rest"
	"github.com/decorra/decorra/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ProductDTO struct {
	ID        string  `json:"id"`
	VendorID  string  `json:"vendorId"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	ImageUrl  string  `json:"imageUrl,omitempty"`
	Available bool    `json:"available"`
}

func toDTO(p Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID,
		VendorID:  p.VendorID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		ImageUrl:  p.ImageUrl,
		Available: p.Available,
	}
}

type productRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	ImageUrl  string  `json:"imageUrl"`
	Available bool    `json:"available"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateProduct adds a product to the current vendor's catalog.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating new product")

	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Unknown user"})
		return
	}

	var request productRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	created, err := h.service.Create(r.Context(), Product{
		VendorID:  currentUser.Uid,
		Name:      request.Name,
		Category:  request.Category,
		Price:     request.Price,
		Stock:     request.Stock,
		ImageUrl:  request.ImageUrl,
		Available: request.Available,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["productId"]

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(product)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetProducts lists the catalog, filtered by optional vendor and category
// query parameters.
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vendorUid := r.URL.Query().Get("vendor")
	category := r.URL.Query().Get("category")

	products, err := h.service.List(r.Context(), vendorUid, category)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		response = append(response, toDTO(product))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["productId"]
	log.Tracef("Updating product %s", id)

	existing, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var request productRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	existing.Name = request.Name
	existing.Category = request.Category
	existing.Price = request.Price
	existing.Stock = request.Stock
	existing.ImageUrl = request.ImageUrl
	existing.Available = request.Available

	updated, err := h.service.Update(r.Context(), existing)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["productId"]
	log.Tracef("Deleting product %s", id)

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidProduct):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
