package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/server"
	"github.com/streamlinehq/streamline/internal/service"
	"github.com/streamlinehq/streamline/internal/validation"
)

// CatalogHandler exposes the parts catalog and bundles.
type CatalogHandler struct {
	Handler
	catalog *service.CatalogService
}

func NewCatalogHandler(s *server.Server, catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{Handler: NewHandler(s), catalog: catalog}
}

type CreatePartRequest struct {
	SKU         string          `json:"sku" validate:"required,max=50"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (r *CreatePartRequest) Validate() error {
	return validation.Struct(r)
}

// CreatePart adds a catalog part.
func (h *CatalogHandler) CreatePart(c echo.Context, req *CreatePartRequest) (*domain.Part, error) {
	return h.catalog.CreatePart(c.Request().Context(), middleware.GetUserID(c), &domain.Part{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		UnitCost:    req.UnitCost,
		UnitPrice:   req.UnitPrice,
	})
}

type GetPartRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetPartRequest) Validate() error {
	return validation.Struct(r)
}

// GetPart fetches one part.
func (h *CatalogHandler) GetPart(c echo.Context, req *GetPartRequest) (*domain.Part, error) {
	return h.catalog.GetPart(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

type ListPartsRequest struct {
	IncludeInactive bool `query:"include_inactive"`
}

func (r *ListPartsRequest) Validate() error { return nil }

// ListParts returns the catalog.
func (h *CatalogHandler) ListParts(c echo.Context, req *ListPartsRequest) ([]domain.Part, error) {
	return h.catalog.ListParts(c.Request().Context(), middleware.GetUserID(c), req.IncludeInactive)
}

type BundleItemRequest struct {
	PartID   string          `json:"part_id" validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

type CreateBundleRequest struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=2000"`
	Price       decimal.Decimal     `json:"price"`
	Items       []BundleItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

func (r *CreateBundleRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateBundleRequest) toDomain() *domain.Bundle {
	items := make([]domain.BundleItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.BundleItem{
			PartID:   item.PartID,
			Quantity: item.Quantity,
		})
	}
	return &domain.Bundle{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Active:      true,
		Items:       items,
	}
}

// CreateBundle groups parts under one price.
func (h *CatalogHandler) CreateBundle(c echo.Context, req *CreateBundleRequest) (*domain.Bundle, error) {
	return h.catalog.CreateBundle(c.Request().Context(), middleware.GetUserID(c), req.toDomain())
}

type GetBundleRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetBundleRequest) Validate() error {
	return validation.Struct(r)
}

// GetBundle fetches a bundle with its items.
func (h *CatalogHandler) GetBundle(c echo.Context, req *GetBundleRequest) (*domain.Bundle, error) {
	return h.catalog.GetBundle(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

type ListBundlesRequest struct {
	IncludeInactive bool `query:"include_inactive"`
}

func (r *ListBundlesRequest) Validate() error { return nil }

// ListBundles returns bundles.
func (h *CatalogHandler) ListBundles(c echo.Context, req *ListBundlesRequest) ([]domain.Bundle, error) {
	return h.catalog.ListBundles(c.Request().Context(), middleware.GetUserID(c), req.IncludeInactive)
}

type UpdateBundleRequest struct {
	ID     string `param:"id" validate:"required,uuid"`
	Active *bool  `json:"active"`
	CreateBundleRequest
}

func (r *UpdateBundleRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateBundle overwrites a bundle and replaces its items.
func (h *CatalogHandler) UpdateBundle(c echo.Context, req *UpdateBundleRequest) (*domain.Bundle, error) {
	bundle := req.toDomain()
	bundle.ID = req.ID
	if req.Active != nil {
		bundle.Active = *req.Active
	}
	return h.catalog.UpdateBundle(c.Request().Context(), middleware.GetUserID(c), bundle)
}

type DeleteBundleRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteBundleRequest) Validate() error {
	return validation.Struct(r)
}

// DeleteBundle removes a bundle.
func (h *CatalogHandler) DeleteBundle(c echo.Context, req *DeleteBundleRequest) error {
	return h.catalog.DeleteBundle(c.Request().Context(), middleware.GetUserID(c), req.ID)
}
