// Package http implements the inbound REST API of the allocation engine:
// transition endpoints for the admin console plus the read-side picking
// queries. Requests are shape-checked against the embedded OpenAPI
// document, bound into DTOs and validated before reaching the use cases.
package http

import (
	"errors"
	"net/http"

	"allocation/internal/core/application/usecases/commands"
	"allocation/internal/core/application/usecases/queries"
	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"
	"allocation/internal/core/domain/services"
	"allocation/internal/core/ports"
	"allocation/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	receiveSerialsHandler  commands.ReceiveSerialsCommandHandler
	assignSerialsHandler   commands.AssignSerialsCommandHandler
	unassignSerialsHandler commands.UnassignSerialsCommandHandler
	allocateSerialsHandler commands.AllocateSerialsCommandHandler
	markUnavailableHandler commands.MarkUnavailableCommandHandler

	// Query handlers
	getAvailableSerialsHandler queries.GetAvailableSerialsQueryHandler
	getAssignedSerialsHandler  queries.GetAssignedSerialsQueryHandler
	getAllocatedSerialsHandler queries.GetAllocatedSerialsQueryHandler
	getInventoryCountsHandler  queries.GetInventoryCountsQueryHandler

	validate *validator.Validate
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	receiveSerialsHandler commands.ReceiveSerialsCommandHandler,
	assignSerialsHandler commands.AssignSerialsCommandHandler,
	unassignSerialsHandler commands.UnassignSerialsCommandHandler,
	allocateSerialsHandler commands.AllocateSerialsCommandHandler,
	markUnavailableHandler commands.MarkUnavailableCommandHandler,
	getAvailableSerialsHandler queries.GetAvailableSerialsQueryHandler,
	getAssignedSerialsHandler queries.GetAssignedSerialsQueryHandler,
	getAllocatedSerialsHandler queries.GetAllocatedSerialsQueryHandler,
	getInventoryCountsHandler queries.GetInventoryCountsQueryHandler,
) *Server {
	return &Server{
		receiveSerialsHandler:      receiveSerialsHandler,
		assignSerialsHandler:       assignSerialsHandler,
		unassignSerialsHandler:     unassignSerialsHandler,
		allocateSerialsHandler:     allocateSerialsHandler,
		markUnavailableHandler:     markUnavailableHandler,
		getAvailableSerialsHandler: getAvailableSerialsHandler,
		getAssignedSerialsHandler:  getAssignedSerialsHandler,
		getAllocatedSerialsHandler: getAllocatedSerialsHandler,
		getInventoryCountsHandler:  getInventoryCountsHandler,
		validate:                   validator.New(),
	}
}

// RegisterRoutes mounts every API route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/serials", s.ReceiveSerials)
	api.POST("/serials/allocate", s.AllocateSerials)
	api.POST("/serials/mark-unavailable", s.MarkUnavailable)

	api.POST("/order-items/:orderItemId/serials/assign", s.AssignSerials)
	api.POST("/order-items/:orderItemId/serials/unassign", s.UnassignSerials)
	api.GET("/order-items/:orderItemId/serials/assigned", s.GetAssignedSerials)
	api.GET("/order-items/:orderItemId/serials/allocated", s.GetAllocatedSerials)

	api.GET("/products/:productId/serials/available", s.GetAvailableSerials)
	api.GET("/products/:productId/inventory", s.GetInventoryCounts)
}

// ReceiveSerials handles POST /api/v1/serials - warehouse intake.
func (s *Server) ReceiveSerials(ctx echo.Context) error {
	var req ReceiveSerialsRequest
	if err := s.bind(ctx, &req); err != nil {
		return err
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewReceiveSerialsCommand(productID, req.SerialNumbers, req.Actor)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err = s.receiveSerialsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusForError(err), err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AssignSerials handles POST /api/v1/order-items/:orderItemId/serials/assign.
func (s *Server) AssignSerials(ctx echo.Context) error {
	orderItemID, err := kernel.UUIDFromString(ctx.Param("orderItemId"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	var req AssignSerialsRequest
	if err = s.bind(ctx, &req); err != nil {
		return err
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	serialIDs, err := parseUUIDs(req.SerialIDs)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewAssignSerialsCommand(orderItemID, productID, serialIDs, req.Actor)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err = s.assignSerialsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusForError(err), err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnassignSerials handles POST /api/v1/order-items/:orderItemId/serials/unassign.
func (s *Server) UnassignSerials(ctx echo.Context) error {
	orderItemID, err := kernel.UUIDFromString(ctx.Param("orderItemId"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	var req UnassignSerialsRequest
	if err = s.bind(ctx, &req); err != nil {
		return err
	}

	serialIDs, err := parseUUIDs(req.SerialIDs)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewUnassignSerialsCommand(orderItemID, serialIDs, req.Actor)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err = s.unassignSerialsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusForError(err), err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AllocateSerials handles POST /api/v1/serials/allocate.
func (s *Server) AllocateSerials(ctx echo.Context) error {
	var req AllocateSerialsRequest
	if err := s.bind(ctx, &req); err != nil {
		return err
	}

	serialIDs, err := parseUUIDs(req.SerialIDs)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	dealerAccountID, err := kernel.UUIDFromString(req.DealerAccountID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewAllocateSerialsCommand(serialIDs, dealerAccountID, req.Actor)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err = s.allocateSerialsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusForError(err), err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkUnavailable handles POST /api/v1/serials/mark-unavailable.
func (s *Server) MarkUnavailable(ctx echo.Context) error {
	var req MarkUnavailableRequest
	if err := s.bind(ctx, &req); err != nil {
		return err
	}

	serialIDs, err := parseUUIDs(req.SerialIDs)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	reason, err := serialunit.StateFromString(req.Reason)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewMarkUnavailableCommand(serialIDs, reason, req.Actor)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err = s.markUnavailableHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusForError(err), err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableSerials handles GET /api/v1/products/:productId/serials/available.
// An optional state query parameter filters on another lifecycle state;
// the default is IN_STOCK.
func (s *Server) GetAvailableSerials(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("productId"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	state := serialunit.InStock
	if raw := ctx.QueryParam("state"); raw != "" {
		if state, err = serialunit.StateFromString(raw); err != nil {
			return errorJSON(ctx, http.StatusBadRequest, err)
		}
	}

	query, err := queries.NewGetAvailableSerialsQueryWithState(productID, state)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	serials, err := s.getAvailableSerialsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, statusForError(err), err)
	}

	response := make([]AvailableSerialResponse, len(serials))
	for i, serial := range serials {
		response[i] = AvailableSerialResponse{
			ID:           serial.ID.String(),
			SerialNumber: serial.SerialNumber,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAssignedSerials handles GET /api/v1/order-items/:orderItemId/serials/assigned.
func (s *Server) GetAssignedSerials(ctx echo.Context) error {
	orderItemID, err := kernel.UUIDFromString(ctx.Param("orderItemId"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	query, err := queries.NewGetAssignedSerialsQuery(orderItemID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	serials, err := s.getAssignedSerialsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, statusForError(err), err)
	}

	response := make([]AssignedSerialResponse, len(serials))
	for i, serial := range serials {
		response[i] = AssignedSerialResponse{
			ID:           serial.ID.String(),
			SerialNumber: serial.SerialNumber,
			AssignedAt:   serial.AssignedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAllocatedSerials handles GET /api/v1/order-items/:orderItemId/serials/allocated.
func (s *Server) GetAllocatedSerials(ctx echo.Context) error {
	orderItemID, err := kernel.UUIDFromString(ctx.Param("orderItemId"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	query, err := queries.NewGetAllocatedSerialsQuery(orderItemID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	serials, err := s.getAllocatedSerialsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, statusForError(err), err)
	}

	response := make([]AllocatedSerialResponse, len(serials))
	for i, serial := range serials {
		response[i] = AllocatedSerialResponse{
			ID:              serial.ID.String(),
			SerialNumber:    serial.SerialNumber,
			DealerAccountID: serial.DealerAccountID.String(),
			AllocatedAt:     serial.AllocatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetInventoryCounts handles GET /api/v1/products/:productId/inventory.
func (s *Server) GetInventoryCounts(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("productId"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	query, err := queries.NewGetInventoryCountsQuery(productID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	counts, err := s.getInventoryCountsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, statusForError(err), err)
	}

	return ctx.JSON(http.StatusOK, InventoryCountsResponse{
		InStock:   counts.InStock,
		Assigned:  counts.Assigned,
		Allocated: counts.Allocated,
		Sold:      counts.Sold,
		Damaged:   counts.Damaged,
		Total:     counts.Total(),
	})
}

// bind decodes the request body into dto and runs struct validation.
// A failure writes the 400 response and returns its error.
func (s *Server) bind(ctx echo.Context, dto any) error {
	if err := ctx.Bind(dto); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, errors.New("invalid request body"))
	}
	if err := s.validate.Struct(dto); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}
	return nil
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromString(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// statusForError maps the allocation error taxonomy onto HTTP statuses.
// Conflict-class rejections (lost CAS race, wrong lifecycle state, wrong
// product, duplicate serial) all signal that the caller's view is stale
// and a re-fetch is in order.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrConflict),
		errors.Is(err, ports.ErrDuplicateSerialNumber),
		errors.Is(err, serialunit.ErrNotInStock),
		errors.Is(err, serialunit.ErrNotAssigned),
		errors.Is(err, serialunit.ErrAllocationIsTerminal),
		errors.Is(err, serialunit.ErrProductMismatch):
		return http.StatusConflict
	case errors.Is(err, services.ErrQuantityExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
