package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"skyjourney/internal/domain"
	"skyjourney/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup, mw *Auth) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", mw.RequireAdmin(), h.create)
	router.PUT("/:id", mw.RequireAdmin(), h.update)
	router.DELETE("/:id", mw.RequireAdmin(), h.delete)
}

// list returns all flights, or a filtered set when the from/to/departureDate
// query parameters are present. A partial set of search parameters is a 400.
func (h *FlightHandler) list(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	departureDate := c.Query("departureDate")

	if from != "" || to != "" || departureDate != "" {
		if from == "" || to == "" || departureDate == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid search parameters"})
			return
		}
		h.search(c, from, to, departureDate)
		return
	}

	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) search(c *gin.Context, from, to, departureDate string) {
	input := flights.SearchInput{From: from, To: to, Passengers: 1}

	date, err := parseDate(departureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid search parameters"})
		return
	}
	input.DepartureDate = date

	if raw := c.Query("passengers"); raw != "" {
		passengers, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid search parameters"})
			return
		}
		input.Passengers = passengers
	}

	result, err := h.service.Search(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var flight domain.Flight
	if err := c.ShouldBindJSON(&flight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid flight data"})
		return
	}
	flight.ID = 0

	if err := h.service.Create(c.Request.Context(), &flight); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var patch domain.FlightPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid flight data"})
		return
	}

	flight, err := h.service.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
	}
	return id, err
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
