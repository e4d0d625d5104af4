package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skyjourney/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID     int64                    `json:"flightId" binding:"required"`
	SeatsBooked  int                      `json:"seatsBooked" binding:"required"`
	TotalPrice   string                   `json:"totalPrice" binding:"required"`
	ContactEmail string                   `json:"contactEmail" binding:"required"`
	ContactPhone string                   `json:"contactPhone" binding:"required"`
	Passengers   []booking.PassengerInput `json:"passengers"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup, mw *Auth) {
	router.Use(mw.RequireUser())
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id/cancel", h.cancel)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	details, err := h.service.Get(c.Request.Context(), id, CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking data"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), booking.CreateBookingInput{
		UserID:       CurrentUser(c).ID,
		FlightID:     req.FlightID,
		SeatsBooked:  req.SeatsBooked,
		TotalPrice:   req.TotalPrice,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Passengers:   req.Passengers,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	cancelled, err := h.service.Cancel(c.Request.Context(), id, CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}
