package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"railway/internal/domain"
	"railway/internal/domain/models"
	"railway/internal/http/middleware"
	"railway/internal/services"
	"railway/internal/utils"

	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	Tickets []models.TicketRequest `json:"tickets"`
}

// ListOrders: GET /order/?created_at=YYYY-MM-DD, the caller's orders only.
func ListOrders(c *gin.Context) {
	user := middleware.GetIdentity(c)
	var day *time.Time
	if raw := strings.TrimSpace(c.Query("created_at")); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "created_at", Msg: "date has wrong format, use YYYY-MM-DD"})
			return
		}
		day = &d
	}
	out, err := orders(c).ListOrders(c.Request.Context(), user.UserID, day)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CreateOrder: POST /order/ {"tickets": [{"cargo", "seat", "journey"}]}.
// All tickets are booked or none is.
func CreateOrder(c *gin.Context) {
	user := middleware.GetIdentity(c)
	var req createOrderRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	order, err := orders(c).CreateOrder(c.Request.Context(), user.UserID, req.Tickets)
	if err != nil {
		var te domain.TicketError
		if errors.As(err, &te) {
			respondTicketError(c, te, len(req.Tickets))
			return
		}
		var ve domain.ValidationError
		if errors.As(err, &ve) && ve.Field == "tickets" {
			respondFields(c, map[string]any{"tickets": ve.Msg})
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := orders(c).GetOrder(c.Request.Context(), middleware.GetIdentity(c).UserID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder cancels the caller's order together with its tickets.
func DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := orders(c).DeleteOrder(c.Request.Context(), middleware.GetIdentity(c).UserID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// OrderETicket streams the PDF e-ticket of one of the caller's orders.
func OrderETicket(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateETicket(c.Request.Context(), middleware.GetIdentity(c).UserID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
