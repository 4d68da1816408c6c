package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamlinehq/streamline/internal/handler"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/server"
)

// registerAPIRoutes wires the versioned business API. Every route here
// requires a verified Clerk session; role checks happen in the service
// layer against the local user record.
func registerAPIRoutes(e *echo.Echo, h *handler.Handlers, m *middleware.Middlewares, s *server.Server) {
	api := e.Group("/api/v1")
	api.Use(m.RateLimit.Limit(s.Config.Server.RateLimitPerSecond, s.Config.Server.RateLimitBurst))
	api.Use(m.Auth.RequireAuth)

	// Users and bulk admin actions.
	api.GET("/users", handler.Handle(h.Users.Handler, h.Users.List, http.StatusOK))
	api.POST("/users", handler.Handle(h.Users.Handler, h.Users.Create, http.StatusCreated))
	api.GET("/users/me", handler.Handle(h.Users.Handler, h.Users.Me, http.StatusOK))
	api.POST("/users/bulk", handler.Handle(h.Users.Handler, h.Users.BulkAction, http.StatusOK))

	// Contacts.
	api.GET("/contacts", handler.Handle(h.Contacts.Handler, h.Contacts.List, http.StatusOK))
	api.POST("/contacts", handler.Handle(h.Contacts.Handler, h.Contacts.Create, http.StatusCreated))
	api.GET("/contacts/:id", handler.Handle(h.Contacts.Handler, h.Contacts.Get, http.StatusOK))
	api.PUT("/contacts/:id", handler.Handle(h.Contacts.Handler, h.Contacts.Update, http.StatusOK))
	api.DELETE("/contacts/:id", handler.HandleNoContent(h.Contacts.Handler, h.Contacts.Delete, http.StatusNoContent))

	// Jobs and their status lifecycle.
	api.GET("/jobs", handler.Handle(h.Jobs.Handler, h.Jobs.List, http.StatusOK))
	api.POST("/jobs", handler.Handle(h.Jobs.Handler, h.Jobs.Create, http.StatusCreated))
	api.GET("/jobs/:id", handler.Handle(h.Jobs.Handler, h.Jobs.Get, http.StatusOK))
	api.PUT("/jobs/:id", handler.Handle(h.Jobs.Handler, h.Jobs.Update, http.StatusOK))
	api.PATCH("/jobs/:id/status", handler.Handle(h.Jobs.Handler, h.Jobs.UpdateStatus, http.StatusOK))
	api.DELETE("/jobs/:id", handler.HandleNoContent(h.Jobs.Handler, h.Jobs.Delete, http.StatusNoContent))
	api.GET("/jobs/:id/assignments", handler.Handle(h.Schedule.Handler, h.Schedule.ListJobAssignments, http.StatusOK))

	// Scheduling: resources, bookings, conflict checks.
	api.GET("/resources", handler.Handle(h.Schedule.Handler, h.Schedule.ListResources, http.StatusOK))
	api.POST("/resources", handler.Handle(h.Schedule.Handler, h.Schedule.CreateResource, http.StatusCreated))
	api.GET("/resources/:id/conflicts", handler.Handle(h.Schedule.Handler, h.Schedule.CheckConflicts, http.StatusOK))
	api.POST("/assignments", handler.Handle(h.Schedule.Handler, h.Schedule.AssignResource, http.StatusCreated))
	api.DELETE("/assignments/:id", handler.HandleNoContent(h.Schedule.Handler, h.Schedule.DeleteAssignment, http.StatusNoContent))

	// Invoices.
	api.GET("/invoices", handler.Handle(h.Invoices.Handler, h.Invoices.List, http.StatusOK))
	api.POST("/invoices", handler.Handle(h.Invoices.Handler, h.Invoices.Create, http.StatusCreated))
	api.GET("/invoices/export", handler.HandleFile(h.Invoices.Handler, h.Invoices.Export, http.StatusOK, "invoices.csv", "text/csv"))
	api.GET("/invoices/:id", handler.Handle(h.Invoices.Handler, h.Invoices.Get, http.StatusOK))
	api.PUT("/invoices/:id", handler.Handle(h.Invoices.Handler, h.Invoices.Update, http.StatusOK))
	api.POST("/invoices/:id/send", handler.Handle(h.Invoices.Handler, h.Invoices.Send, http.StatusOK))
	api.PATCH("/invoices/:id/status", handler.Handle(h.Invoices.Handler, h.Invoices.UpdateStatus, http.StatusOK))

	// Inbox: conversations, messages, routing.
	api.GET("/conversations", handler.Handle(h.Inbox.Handler, h.Inbox.ListConversations, http.StatusOK))
	api.POST("/conversations", handler.Handle(h.Inbox.Handler, h.Inbox.CreateConversation, http.StatusCreated))
	api.GET("/conversations/:id", handler.Handle(h.Inbox.Handler, h.Inbox.GetConversation, http.StatusOK))
	api.POST("/conversations/:id/messages", handler.Handle(h.Inbox.Handler, h.Inbox.AddMessage, http.StatusCreated))
	api.POST("/conversations/:id/route", handler.Handle(h.Inbox.Handler, h.Inbox.Route, http.StatusOK))
	api.PATCH("/conversations/:id/assign", handler.Handle(h.Inbox.Handler, h.Inbox.Assign, http.StatusOK))

	// Sales pipeline and lead scoring.
	api.GET("/leads", handler.Handle(h.Leads.Handler, h.Leads.List, http.StatusOK))
	api.POST("/leads", handler.Handle(h.Leads.Handler, h.Leads.Create, http.StatusCreated))
	api.POST("/leads/score", handler.Handle(h.Leads.Handler, h.Leads.Score, http.StatusOK))
	api.GET("/leads/:id", handler.Handle(h.Leads.Handler, h.Leads.Get, http.StatusOK))
	api.PUT("/leads/:id", handler.Handle(h.Leads.Handler, h.Leads.Update, http.StatusOK))
	api.GET("/leads/:id/score", handler.Handle(h.Leads.Handler, h.Leads.GetScore, http.StatusOK))

	// Parts catalog and bundles.
	api.GET("/parts", handler.Handle(h.Catalog.Handler, h.Catalog.ListParts, http.StatusOK))
	api.POST("/parts", handler.Handle(h.Catalog.Handler, h.Catalog.CreatePart, http.StatusCreated))
	api.GET("/parts/:id", handler.Handle(h.Catalog.Handler, h.Catalog.GetPart, http.StatusOK))
	api.GET("/bundles", handler.Handle(h.Catalog.Handler, h.Catalog.ListBundles, http.StatusOK))
	api.POST("/bundles", handler.Handle(h.Catalog.Handler, h.Catalog.CreateBundle, http.StatusCreated))
	api.GET("/bundles/:id", handler.Handle(h.Catalog.Handler, h.Catalog.GetBundle, http.StatusOK))
	api.PUT("/bundles/:id", handler.Handle(h.Catalog.Handler, h.Catalog.UpdateBundle, http.StatusOK))
	api.DELETE("/bundles/:id", handler.HandleNoContent(h.Catalog.Handler, h.Catalog.DeleteBundle, http.StatusNoContent))
}
