package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/server/http/dto"
)

type AddressHandler struct {
	facade AddressFacade
}

func NewAddressHandler(facade AddressFacade) *AddressHandler {
	return &AddressHandler{facade: facade}
}

// Add handles POST /api/addresses.
func (h *AddressHandler) Add(c *gin.Context) {
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	address, err := h.facade.AddAddress(c.Request.Context(), CurrentIdentity(c), model.Address{
		Title:        req.Title,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAddressResponse(*address))
}

// List handles GET /api/addresses.
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.facade.ListAddresses(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		response = append(response, toAddressResponse(a))
	}
	c.JSON(http.StatusOK, response)
}

func toAddressResponse(a model.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:           a.ID,
		Title:        a.Title,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
	}
}
