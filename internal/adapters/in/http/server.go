// Package http exposes the shipment coordination API over echo.
// It coordinates between HTTP handlers and application use cases and owns
// the mapping from domain errors to status codes.
package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP surface for shipment coordination.
type Server struct {
	// Command handlers
	createShipmentHandler commands.CreateShipmentCommandHandler
	confirmHandler        commands.ConfirmShipmentCommandHandler
	updateStatusHandler   commands.UpdateShipmentStatusCommandHandler
	addReturnsHandler     commands.AddReturnItemsCommandHandler
	updateShipmentHandler commands.UpdateShipmentCommandHandler
	deleteShipmentHandler commands.DeleteShipmentCommandHandler
	sendWhatsAppHandler   commands.SendWhatsAppCommandHandler

	// Query handlers
	getShipmentHandler     queries.GetShipmentQueryHandler
	listShipmentsHandler   queries.ListShipmentsQueryHandler
	dashboardReportHandler queries.DashboardReportQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	confirmHandler commands.ConfirmShipmentCommandHandler,
	updateStatusHandler commands.UpdateShipmentStatusCommandHandler,
	addReturnsHandler commands.AddReturnItemsCommandHandler,
	updateShipmentHandler commands.UpdateShipmentCommandHandler,
	deleteShipmentHandler commands.DeleteShipmentCommandHandler,
	sendWhatsAppHandler commands.SendWhatsAppCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	listShipmentsHandler queries.ListShipmentsQueryHandler,
	dashboardReportHandler queries.DashboardReportQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:  createShipmentHandler,
		confirmHandler:         confirmHandler,
		updateStatusHandler:    updateStatusHandler,
		addReturnsHandler:      addReturnsHandler,
		updateShipmentHandler:  updateShipmentHandler,
		deleteShipmentHandler:  deleteShipmentHandler,
		sendWhatsAppHandler:    sendWhatsAppHandler,
		getShipmentHandler:     getShipmentHandler,
		listShipmentsHandler:   listShipmentsHandler,
		dashboardReportHandler: dashboardReportHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1 plus the health probe.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/shipments", s.CreateShipment)
	v1.GET("/shipments", s.ListShipments)
	v1.GET("/shipments/:id", s.GetShipment)
	v1.PUT("/shipments/:id", s.UpdateShipment)
	v1.DELETE("/shipments/:id", s.DeleteShipment)
	v1.POST("/shipments/:id/confirm", s.ConfirmShipment)
	v1.PUT("/shipments/:id/status", s.UpdateShipmentStatus)
	v1.POST("/shipments/:id/returns", s.AddReturnItems)
	v1.GET("/shipments/:id/pdf", s.GetShipmentDocument)
	v1.POST("/shipments/:id/send-whatsapp", s.SendWhatsApp)
	v1.GET("/reports/dashboard", s.DashboardReport)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req createShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shopID, err := kernel.UUIDFromString(req.ShopID)
	if err != nil {
		return badRequest(ctx, "Invalid shop id: "+err.Error())
	}

	driverID, err := optionalUUID(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return badRequest(ctx, "Invalid date, expected "+dateLayout)
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		input, inputErr := itemInputFromRequest(item)
		if inputErr != nil {
			return respondError(ctx, inputErr)
		}
		items = append(items, input)
	}

	cmd, err := commands.NewCreateShipmentCommand(shopID, driverID, date, items, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toShipmentResponse(queries.NewShipmentResponse(created)))
}

// ConfirmShipment handles POST /api/v1/shipments/{id}/confirm.
// A notification channel failure does not fail the request; it is reported
// in the notifications block of the response.
func (s *Server) ConfirmShipment(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	cmd, err := commands.NewConfirmShipmentCommand(id)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.confirmHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, confirmShipmentResponse{
		Shipment:      toShipmentResponse(queries.NewShipmentResponse(result.Shipment)),
		Notifications: toNotificationsResponse(result.Notifications),
	})
}

// UpdateShipmentStatus handles PUT /api/v1/shipments/{id}/status?status=<value>.
func (s *Server) UpdateShipmentStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	status, err := shipment.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(id, status)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, confirmShipmentResponse{
		Shipment:      toShipmentResponse(queries.NewShipmentResponse(result.Shipment)),
		Notifications: toNotificationsResponse(result.Notifications),
	})
}

// AddReturnItems handles POST /api/v1/shipments/{id}/returns.
func (s *Server) AddReturnItems(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var req addReturnItemsRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.ReturnItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		input, inputErr := returnItemInputFromRequest(item)
		if inputErr != nil {
			return respondError(ctx, inputErr)
		}
		items = append(items, input)
	}

	cmd, err := commands.NewAddReturnItemsCommand(id, items)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.addReturnsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipmentResponse(queries.NewShipmentResponse(updated)))
}

// UpdateShipment handles PUT /api/v1/shipments/{id}.
func (s *Server) UpdateShipment(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var req updateShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shopID, err := optionalUUID(req.ShopID)
	if err != nil {
		return badRequest(ctx, "Invalid shop id: "+err.Error())
	}

	driverID, err := optionalUUID(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	var date *time.Time
	if req.Date != nil {
		parsed, dateErr := time.Parse(dateLayout, *req.Date)
		if dateErr != nil {
			return badRequest(ctx, "Invalid date, expected "+dateLayout)
		}
		date = &parsed
	}

	var regularItems []commands.ItemInput
	if req.Items != nil {
		regularItems = make([]commands.ItemInput, 0, len(req.Items))
		for _, item := range req.Items {
			input, inputErr := itemInputFromRequest(item)
			if inputErr != nil {
				return respondError(ctx, inputErr)
			}
			regularItems = append(regularItems, input)
		}
	}

	var returnItems []commands.ReturnItemInput
	if req.ReturnItems != nil {
		returnItems = make([]commands.ReturnItemInput, 0, len(req.ReturnItems))
		for _, item := range req.ReturnItems {
			input, inputErr := returnItemInputFromRequest(item)
			if inputErr != nil {
				return respondError(ctx, inputErr)
			}
			returnItems = append(returnItems, input)
		}
	}

	cmd, err := commands.NewUpdateShipmentCommand(
		id, shopID, driverID, date, req.Notes, regularItems, returnItems)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.updateShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipmentResponse(queries.NewShipmentResponse(updated)))
}

// DeleteShipment handles DELETE /api/v1/shipments/{id}.
func (s *Server) DeleteShipment(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	cmd, err := commands.NewDeleteShipmentCommand(id)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deleteShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SendWhatsApp handles POST /api/v1/shipments/{id}/send-whatsapp.
func (s *Server) SendWhatsApp(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	cmd, err := commands.NewSendWhatsAppCommand(id)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.sendWhatsAppHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipmentResponse(queries.NewShipmentResponse(updated)))
}

// GetShipment handles GET /api/v1/shipments/{id}.
func (s *Server) GetShipment(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return respondError(ctx, err)
	}

	found, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipmentResponse(found))
}

// GetShipmentDocument handles GET /api/v1/shipments/{id}/pdf.
// Streams the stored delivery note artifact; 404 when none was generated.
func (s *Server) GetShipmentDocument(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return respondError(ctx, err)
	}

	found, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	if found.DocumentPath == "" {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "No document generated for shipment " + found.Number,
		})
	}

	return ctx.Attachment(found.DocumentPath, filepath.Base(found.DocumentPath))
}

// ListShipments handles GET /api/v1/shipments with the shared filter params.
func (s *Server) ListShipments(ctx echo.Context) error {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	page, err := intQueryParam(ctx, "page", 0)
	if err != nil {
		return badRequest(ctx, "Invalid page")
	}

	size, err := intQueryParam(ctx, "size", 0)
	if err != nil {
		return badRequest(ctx, "Invalid size")
	}

	query, err := queries.NewListShipmentsQuery(filter, page, size)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.listShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	shipments := make([]shipmentResponse, 0, len(result.Shipments))
	for _, sh := range result.Shipments {
		shipments = append(shipments, toShipmentResponse(sh))
	}

	return ctx.JSON(http.StatusOK, listShipmentsResponse{
		Shipments:     shipments,
		Page:          result.Page,
		Size:          result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		Summary:       toSummaryResponse(result.Summary),
	})
}

// DashboardReport handles GET /api/v1/reports/dashboard.
func (s *Server) DashboardReport(ctx echo.Context) error {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	granularity, err := services.GranularityFromString(ctx.QueryParam("chartGroupBy"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewDashboardReportQuery(filter, granularity)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.dashboardReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	sold := make([]productReportRow, 0, len(result.ProductsSold))
	for _, row := range result.ProductsSold {
		sold = append(sold, toProductReportRow(row))
	}

	returned := make([]productReportRow, 0, len(result.ProductsReturned))
	for _, row := range result.ProductsReturned {
		returned = append(returned, toProductReportRow(row))
	}

	chart := make([]chartBucketResponse, 0, len(result.Chart))
	for _, bucket := range result.Chart {
		chart = append(chart, chartBucketResponse{
			Label:        bucket.Label,
			RegularTotal: bucket.RegularTotal,
			ReturnTotal:  bucket.ReturnTotal,
			NetTotal:     bucket.NetTotal,
		})
	}

	return ctx.JSON(http.StatusOK, dashboardReportResponse{
		Summary:          toSummaryResponse(result.Summary),
		ShipmentCount:    result.ShipmentCount,
		ProductsSold:     sold,
		ProductsReturned: returned,
		Chart:            chart,
		Granularity:      result.Granularity,
	})
}

func toProductReportRow(row queries.ProductReportRow) productReportRow {
	return productReportRow{
		ProductID:   row.ProductID.String(),
		ProductName: row.ProductName,
		ProductCode: row.ProductCode,
		Quantity:    row.Quantity,
		TotalAmount: row.TotalAmount,
	}
}

func toNotificationsResponse(result services.DispatchResult) notificationsResponse {
	resp := notificationsResponse{
		EmailSent:    result.EmailSent,
		WhatsAppSent: result.WhatsAppSent,
	}
	if result.EmailErr != nil {
		resp.EmailError = result.EmailErr.Error()
	}
	if result.WhatsAppErr != nil {
		resp.WhatsAppError = result.WhatsAppErr.Error()
	}
	return resp
}

// filterFromQuery parses the shared filter query parameters used by the
// listing and the dashboard report.
func filterFromQuery(ctx echo.Context) (shipment.Filter, error) {
	var dateFrom, dateTo *time.Time
	if raw := ctx.QueryParam("startDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return shipment.Filter{}, errs.NewValueIsInvalidErrorWithCause("startDate", err)
		}
		dateFrom = &parsed
	}
	if raw := ctx.QueryParam("endDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return shipment.Filter{}, errs.NewValueIsInvalidErrorWithCause("endDate", err)
		}
		dateTo = &parsed
	}

	var shopID, driverID *kernel.UUID
	if raw := ctx.QueryParam("shopId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return shipment.Filter{}, errs.NewValueIsInvalidErrorWithCause("shopId", err)
		}
		shopID = &id
	}
	if raw := ctx.QueryParam("driverId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return shipment.Filter{}, errs.NewValueIsInvalidErrorWithCause("driverId", err)
		}
		driverID = &id
	}

	var statuses []shipment.Status
	if raw := ctx.QueryParam("statuses"); raw != "" {
		for _, value := range strings.Split(raw, ",") {
			status, err := shipment.StatusFromString(strings.TrimSpace(value))
			if err != nil {
				return shipment.Filter{}, err
			}
			statuses = append(statuses, status)
		}
	}

	return queries.NewListShipmentsFilter(dateFrom, dateTo, shopID, driverID, statuses), nil
}

func itemInputFromRequest(req itemRequest) (commands.ItemInput, error) {
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return commands.ItemInput{}, errs.NewValueIsInvalidErrorWithCause("productId", err)
	}
	return commands.NewItemInput(productID, req.Quantity, req.Notes)
}

func returnItemInputFromRequest(req returnItemRequest) (commands.ReturnItemInput, error) {
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return commands.ReturnItemInput{}, errs.NewValueIsInvalidErrorWithCause("productId", err)
	}

	var reason *shipment.ReturnReason
	if req.Reason != nil {
		parsed, reasonErr := shipment.ReturnReasonFromString(*req.Reason)
		if reasonErr != nil {
			return commands.ReturnItemInput{}, reasonErr
		}
		reason = &parsed
	}

	return commands.NewReturnItemInput(productID, req.Quantity, reason, req.Notes)
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func intQueryParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps domain errors to HTTP status codes: missing references
// to 404, validation failures to 400, optimistic lock conflicts to 409,
// everything else to 500.
func respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
