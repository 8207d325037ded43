package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/service"
)

// InventoryHandler handles product creation and listing requests.
type InventoryHandler struct {
	inventory *service.InventoryService
	logger    zerolog.Logger
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventory *service.InventoryService, logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		logger:    logger.With().Str("handler", "inventory").Logger(),
	}
}

// addProductRequest is the body of POST /api/productos. Cantidad is a
// pointer so a missing field can be told apart from an explicit zero.
type addProductRequest struct {
	UserID      int64  `json:"usuario_id"`
	Name        string `json:"nombre"`
	Quantity    *int   `json:"cantidad"`
	Description string `json:"descripcion"`
}

// addProductResponse is the success body of POST /api/productos.
type addProductResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ProductID int64  `json:"producto_id"`
}

// AddProduct handles POST /api/productos.
func (h *InventoryHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("malformed product body")
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "Cuerpo de la solicitud no válido"})
		return
	}

	if req.Quantity == nil {
		writeError(w, &service.MissingFieldError{Field: "cantidad"})
		return
	}

	output, err := h.inventory.AddItem(r.Context(), service.AddItemInput{
		OwnerID:     req.UserID,
		Name:        req.Name,
		Quantity:    *req.Quantity,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	message := "Producto guardado exitosamente"
	if output.Degraded {
		message = "Producto guardado (modo simulación)"
	}

	writeJSON(w, http.StatusOK, addProductResponse{
		Success:   true,
		Message:   message,
		ProductID: output.ProductID,
	})
}

// productView is the product row shape the original frontend expects.
type productView struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"usuario_id"`
	Name        string    `json:"nombre"`
	Quantity    int       `json:"cantidad"`
	Description string    `json:"descripcion"`
	CreatedAt   time.Time `json:"fecha_creacion"`
	UpdatedAt   time.Time `json:"fecha_actualizacion"`
}

// listProductsResponse is the body of GET /api/productos/{userID}.
type listProductsResponse struct {
	Success  bool          `json:"success"`
	Products []productView `json:"productos"`
}

// ListProducts handles GET /api/productos/{userID}.
func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "El usuario no es válido"})
		return
	}

	output, err := h.inventory.ListItems(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]productView, 0, len(output.Products))
	for _, p := range output.Products {
		views = append(views, viewOfProduct(p))
	}

	writeJSON(w, http.StatusOK, listProductsResponse{
		Success:  true,
		Products: views,
	})
}

// viewOfProduct converts a domain product into the wire shape.
func viewOfProduct(p *domain.Product) productView {
	return productView{
		ID:          p.ID,
		UserID:      p.OwnerID,
		Name:        p.Name,
		Quantity:    p.Quantity,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
