package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/server/http/dto"
)

// ListingHandler serves the catalogue and the seller's listing management.
type ListingHandler struct {
	facade ListingFacade
}

func NewListingHandler(facade ListingFacade) *ListingHandler {
	return &ListingHandler{facade: facade}
}

// Search handles GET /api/listings.
func (h *ListingHandler) Search(c *gin.Context) {
	var query dto.ListingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBadRequest(c, err.Error())
		return
	}

	filter := model.ListingFilter{
		Query:      strings.TrimSpace(query.Q),
		CategoryID: query.Category,
	}
	var ok bool
	if filter.MinPrice, ok = parsePrice(c, "min_price", query.MinPrice); !ok {
		return
	}
	if filter.MaxPrice, ok = parsePrice(c, "max_price", query.MaxPrice); !ok {
		return
	}

	listings, err := h.facade.SearchListings(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingResponses(listings))
}

// Get handles GET /api/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	listing, err := h.facade.GetListing(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingResponse(*listing))
}

// Create handles POST /api/listings.
func (h *ListingHandler) Create(c *gin.Context) {
	var req dto.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	listing, err := h.facade.CreateListing(c.Request.Context(), CurrentIdentity(c), fromListingRequest(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toListingResponse(*listing))
}

// Update handles PUT /api/listings/:id.
func (h *ListingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	listing, err := h.facade.UpdateListing(c.Request.Context(), CurrentIdentity(c), id, fromListingRequest(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingResponse(*listing))
}

// Mine handles GET /api/seller/listings.
func (h *ListingHandler) Mine(c *gin.Context) {
	listings, err := h.facade.ListSellerListings(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingResponses(listings))
}

func parsePrice(c *gin.Context, name, raw string) (*decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		writeBadRequest(c, "invalid "+name)
		return nil, false
	}
	return &value, true
}

func fromListingRequest(req dto.ListingRequest) model.Listing {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return model.Listing{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      active,
	}
}

func toListingResponses(listings []model.Listing) []dto.ListingResponse {
	response := make([]dto.ListingResponse, 0, len(listings))
	for _, l := range listings {
		response = append(response, toListingResponse(l))
	}
	return response
}

func toListingResponse(l model.Listing) dto.ListingResponse {
	return dto.ListingResponse{
		ID:          l.ID,
		SellerID:    l.SellerID,
		CategoryID:  l.CategoryID,
		Name:        l.Name,
		Description: l.Description,
		Weight:      l.Weight,
		Price:       l.Price.StringFixed(2),
		Stock:       l.Stock,
		Active:      l.Active,
		CreatedAt:   l.CreatedAt,
	}
}
