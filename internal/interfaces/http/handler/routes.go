package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/khata/backend/internal/interfaces/http/router"
)

// Handlers bundles every resource handler of the ledger API
type Handlers struct {
	Suppliers    *PartnerHandler
	Parties      *PartnerHandler
	Bills        *BillHandler
	Memos        *MemoHandler
	PartPayments *PartPaymentHandler
	OrderForms   *OrderFormHandler
	Reports      *ReportHandler
	Banks        *BankHandler
	Audit        *AuditHandler
}

// PartnerRoutes creates the route group for one partner role
func PartnerRoutes(name string, handler *PartnerHandler) *router.DomainGroup {
	group := router.NewDomainGroup(name, "/"+name)
	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.GET("/:id", handler.GetByID)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	return group
}

// BankRoutes creates the route group for the bank master
func BankRoutes(handler *BankHandler) *router.DomainGroup {
	group := router.NewDomainGroup("banks", "/banks")
	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.GET("/:id", handler.GetByID)
	return group
}

// BillRoutes creates the route group for the bill register
func BillRoutes(handler *BillHandler) *router.DomainGroup {
	group := router.NewDomainGroup("bills", "/bills")
	group.POST("", handler.Insert)
	group.GET("", handler.Retrieve)
	group.GET("/pending", handler.Pending)
	group.GET("/:id", handler.GetByID)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	return group
}

// MemoRoutes creates the route group for memo settlement
func MemoRoutes(handler *MemoHandler) *router.DomainGroup {
	group := router.NewDomainGroup("memos", "/memos")
	group.POST("", handler.Insert)
	group.GET("", handler.List)
	group.GET("/by-number", handler.GetByNumber)
	group.POST("/total", handler.Total)
	group.GET("/:id", handler.GetByID)
	group.DELETE("/:id", handler.Delete)
	return group
}

// PartPaymentRoutes creates the route group for the credit pool
func PartPaymentRoutes(handler *PartPaymentHandler) *router.DomainGroup {
	group := router.NewDomainGroup("part-payments", "/part-payments")
	group.GET("/unused", handler.Unused)
	group.GET("/by-memo/:id", handler.ByMemo)
	group.POST("/total", handler.Total)
	return group
}

// OrderFormRoutes creates the route group for order forms
func OrderFormRoutes(handler *OrderFormHandler) *router.DomainGroup {
	group := router.NewDomainGroup("order-forms", "/order-forms")
	group.POST("", handler.Insert)
	group.GET("", handler.Retrieve)
	group.POST("/:id/delivered", handler.MarkDelivered)
	group.DELETE("/:id", handler.Delete)
	return group
}

// ReportRoutes creates the route group for reports. pdfMiddleware guards
// only the PDF endpoint.
func ReportRoutes(handler *ReportHandler, pdfMiddleware ...gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("reports", "/reports")
	group.GET("/kinds", handler.Kinds)
	group.POST("", handler.Generate)

	pdf := group.Group("pdf", "/pdf")
	pdf.Use(pdfMiddleware...)
	pdf.POST("", handler.PDF)
	return group
}

// AuditRoutes creates the read-only route group for the audit log
func AuditRoutes(handler *AuditHandler) *router.DomainGroup {
	group := router.NewDomainGroup("audit", "/audit")
	group.GET("", handler.Search)
	group.GET("/:table/:id", handler.History)
	return group
}

// Groups returns the route groups of every handler in h
func (h *Handlers) Groups(pdfMiddleware ...gin.HandlerFunc) []router.RouteRegistrar {
	return []router.RouteRegistrar{
		PartnerRoutes("suppliers", h.Suppliers),
		PartnerRoutes("parties", h.Parties),
		BankRoutes(h.Banks),
		BillRoutes(h.Bills),
		MemoRoutes(h.Memos),
		PartPaymentRoutes(h.PartPayments),
		OrderFormRoutes(h.OrderForms),
		ReportRoutes(h.Reports, pdfMiddleware...),
		AuditRoutes(h.Audit),
	}
}
