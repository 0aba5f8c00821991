package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/lastchanceair/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/cities", h.cities)
	router.GET("/deals", h.deals)
	router.GET("/flights", h.search)
	router.GET("/flights/:id", h.get)
}

func (h *FlightHandler) cities(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Cities(c.Request.Context()))
}

func (h *FlightHandler) deals(c *gin.Context) {
	deals, err := h.service.Deals(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deals)
}

func (h *FlightHandler) search(c *gin.Context) {
	result, err := h.service.Search(c.Request.Context(), flights.SearchQuery{
		From: c.Query("from"),
		To:   c.Query("to"),
		Date: c.Query("date"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Flight not found"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}
