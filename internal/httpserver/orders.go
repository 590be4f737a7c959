package httpserver

import (
	"errors"
	"net/http"

	"stockorders/internal/domain"
	ordersvc "stockorders/internal/service/order"

	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	DeliveryAddressID string               `json:"deliveryAddressId"`
	InvoiceAddressID  string               `json:"invoiceAddressId"`
	Lines             []ordersvc.LineInput `json:"lines"`
}

func createOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, ok := currentCustomer(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		summary, err := svc.Create(c.Request.Context(), ordersvc.CreateInput{
			CustomerID:        customer.ID,
			DeliveryAddressID: req.DeliveryAddressID,
			InvoiceAddressID:  req.InvoiceAddressID,
			Lines:             req.Lines,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrValidation):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, domain.ErrInvalidReference):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusCreated, summary)
	}
}

func cancelOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, ok := currentCustomer(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		cancelled, err := svc.Cancel(c.Request.Context(), c.Param("id"), customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !cancelled {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listMyOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, ok := currentCustomer(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		orders, err := svc.ListByCustomer(c.Request.Context(), customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(orders))
	}
}

func listAllOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(orders))
	}
}

func listStocksHandler(stocks StockLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := stocks.ListActive(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(list))
	}
}

func listAddressesHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, ok := currentCustomer(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		addresses, err := svc.ListAddresses(c.Request.Context(), customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(addresses))
	}
}

// emptyIfNil keeps empty result sets rendering as [] instead of null.
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
