package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Defaults mirror the fixed seed values the report screens were built
// around.
const (
	defaultReportCity         = "İstanbul"
	defaultReportCustomerName = "TLS Ornek"
)

func customerSummaryHandler(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := svc.CustomerOrderSummaries(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(summaries))
	}
}

func productCustomersHandler(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := svc.ProductCustomersReport(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(report))
	}
}

func multiQuantityOrdersHandler(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.MultiQuantityOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(orders))
	}
}

func differentAddressOrdersHandler(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.DifferentAddressOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(orders))
	}
}

func cityOrdersHandler(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.DefaultQuery("city", defaultReportCity)
		orders, err := svc.OrdersByCity(c.Request.Context(), city)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(orders))
	}
}

func namedCustomerOrdersHandler(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.DefaultQuery("name", defaultReportCustomerName)
		orders, err := svc.OrdersByCustomerName(c.Request.Context(), name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(orders))
	}
}

func customerOrderDetailsHandler(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		details, err := svc.CustomerOrderDetails(c.Request.Context(), c.Param("customerId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, emptyIfNil(details))
	}
}
