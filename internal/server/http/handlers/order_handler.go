package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints for both buyers and sellers.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

type orderCall func(c *gin.Context, actor model.Identity, id int64) (*model.Order, error)

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	actor := CurrentIdentity(c)
	order, err := h.facade.CreateOrder(c.Request.Context(), actor, req.ListingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order, actor.UserID))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	h.handle(c, func(c *gin.Context, actor model.Identity, id int64) (*model.Order, error) {
		return h.facade.GetOrder(c.Request.Context(), actor, id)
	})
}

// ListBuyer handles GET /api/orders.
func (h *OrderHandler) ListBuyer(c *gin.Context) {
	actor := CurrentIdentity(c)
	orders, err := h.facade.ListBuyerOrders(c.Request.Context(), actor)
	h.list(c, actor, orders, err)
}

// ListSeller handles GET /api/seller/orders.
func (h *OrderHandler) ListSeller(c *gin.Context) {
	actor := CurrentIdentity(c)
	orders, err := h.facade.ListSellerOrders(c.Request.Context(), actor)
	h.list(c, actor, orders, err)
}

// SetPrice handles POST /api/seller/orders/:id/price.
func (h *OrderHandler) SetPrice(c *gin.Context) {
	var req dto.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	h.handle(c, func(c *gin.Context, actor model.Identity, id int64) (*model.Order, error) {
		return h.facade.SetFinalPrice(c.Request.Context(), actor, id, req.Price)
	})
}

// Pay handles POST /api/orders/:id/pay.
func (h *OrderHandler) Pay(c *gin.Context) {
	h.handle(c, func(c *gin.Context, actor model.Identity, id int64) (*model.Order, error) {
		return h.facade.PayOrder(c.Request.Context(), actor, id)
	})
}

// Ship handles POST /api/seller/orders/:id/ship. The body is optional; an
// empty one, even after request decompression, ships without a tracking code.
func (h *OrderHandler) Ship(c *gin.Context) {
	var req dto.ShipRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			writeBadRequest(c, err.Error())
			return
		}
	}
	h.handle(c, func(c *gin.Context, actor model.Identity, id int64) (*model.Order, error) {
		return h.facade.ShipOrder(c.Request.Context(), actor, id, req.TrackingCode)
	})
}

// ConfirmDelivery handles POST /api/orders/:id/confirm-delivery.
func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	h.handle(c, func(c *gin.Context, actor model.Identity, id int64) (*model.Order, error) {
		return h.facade.ConfirmDelivery(c.Request.Context(), actor, id)
	})
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.handle(c, func(c *gin.Context, actor model.Identity, id int64) (*model.Order, error) {
		return h.facade.CancelOrder(c.Request.Context(), actor, id)
	})
}

// Rate handles POST /api/orders/:id/rating.
func (h *OrderHandler) Rate(c *gin.Context) {
	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	h.handle(c, func(c *gin.Context, actor model.Identity, id int64) (*model.Order, error) {
		return h.facade.RateOrder(c.Request.Context(), actor, id, req.Rating, req.Comment)
	})
}

func (h *OrderHandler) handle(c *gin.Context, call orderCall) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor := CurrentIdentity(c)
	order, err := call(c, actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, actor.UserID))
}

func (h *OrderHandler) list(c *gin.Context, actor model.Identity, orders []model.Order, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o, actor.UserID))
	}
	c.JSON(http.StatusOK, response)
}

func toOrderResponse(order model.Order, viewerID int64) dto.OrderResponse {
	actions := make([]string, 0)
	for _, a := range order.ActionsFor(viewerID) {
		actions = append(actions, string(a))
	}
	return dto.OrderResponse{
		ID:            order.ID,
		ListingID:     order.ListingID,
		ListingName:   order.ListingName,
		BuyerID:       order.BuyerID,
		SellerID:      order.SellerID,
		Quantity:      order.Quantity,
		Price:         order.Price.StringFixed(2),
		Status:        string(order.Status),
		OrderedAt:     order.OrderedAt,
		PaidAt:        order.PaidAt,
		ShippedAt:     order.ShippedAt,
		TrackingCode:  order.TrackingCode,
		Rating:        order.Rating,
		RatingComment: order.RatingComment,
		RatedAt:       order.RatedAt,
		Shipping: dto.ShippingResponse{
			Street:       order.Shipping.Street,
			Number:       order.Shipping.Number,
			Complement:   order.Shipping.Complement,
			Neighborhood: order.Shipping.Neighborhood,
			City:         order.Shipping.City,
			State:        order.Shipping.State,
			PostalCode:   order.Shipping.PostalCode,
		},
		Actions: actions,
	}
}
