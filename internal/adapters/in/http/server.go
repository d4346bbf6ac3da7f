// Package http exposes the application use cases over an Echo HTTP API.
package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/pos"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	headerActorID        = "X-Actor-Id"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler          commands.CreateOrderCommandHandler
	confirmOrderHandler         commands.ConfirmOrderCommandHandler
	amendOrderHandler           commands.AmendOrderCommandHandler
	serveOrderHandler           commands.ServeOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	reportTicketProgressHandler commands.ReportTicketProgressCommandHandler
	openSessionHandler          commands.OpenSessionCommandHandler
	closeSessionHandler         commands.CloseSessionCommandHandler
	attachOrdersHandler         commands.AttachOrdersCommandHandler
	captureTransactionHandler   commands.CaptureTransactionCommandHandler
	voidTransactionHandler      commands.VoidTransactionCommandHandler

	kitchenBoardHandler queries.GetKitchenBoardQueryHandler
	orderTrackerHandler queries.GetOrderTrackerQueryHandler
	openSessionQuery    queries.GetOpenSessionQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	amendOrderHandler commands.AmendOrderCommandHandler,
	serveOrderHandler commands.ServeOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	reportTicketProgressHandler commands.ReportTicketProgressCommandHandler,
	openSessionHandler commands.OpenSessionCommandHandler,
	closeSessionHandler commands.CloseSessionCommandHandler,
	attachOrdersHandler commands.AttachOrdersCommandHandler,
	captureTransactionHandler commands.CaptureTransactionCommandHandler,
	voidTransactionHandler commands.VoidTransactionCommandHandler,
	kitchenBoardHandler queries.GetKitchenBoardQueryHandler,
	orderTrackerHandler queries.GetOrderTrackerQueryHandler,
	openSessionQuery queries.GetOpenSessionQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		confirmOrderHandler:         confirmOrderHandler,
		amendOrderHandler:           amendOrderHandler,
		serveOrderHandler:           serveOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		reportTicketProgressHandler: reportTicketProgressHandler,
		openSessionHandler:          openSessionHandler,
		closeSessionHandler:         closeSessionHandler,
		attachOrdersHandler:         attachOrdersHandler,
		captureTransactionHandler:   captureTransactionHandler,
		voidTransactionHandler:      voidTransactionHandler,
		kitchenBoardHandler:         kitchenBoardHandler,
		orderTrackerHandler:         orderTrackerHandler,
		openSessionQuery:            openSessionQuery,
	}
}

// RegisterRoutes wires all endpoints onto the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/amend", s.AmendOrder)
	api.POST("/orders/:id/serve", s.ServeOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/tracker/:number", s.GetOrderTracker)

	api.POST("/tickets/:id/progress", s.ReportTicketProgress)
	api.GET("/kitchen/board", s.GetKitchenBoard)

	api.POST("/sessions", s.OpenSession)
	api.POST("/sessions/:id/close", s.CloseSession)
	api.GET("/terminals/:terminalId/session", s.GetOpenSession)

	api.POST("/transactions/:id/orders", s.AttachOrders)
	api.POST("/transactions/:id/capture", s.CaptureTransaction)
	api.POST("/transactions/:id/void", s.VoidTransaction)
}

type orderLineBody struct {
	CatalogItemID string `json:"catalog_item_id"`
	Quantity      int    `json:"quantity"`
}

type createOrderBody struct {
	OrderType string          `json:"order_type"`
	TableID   *string         `json:"table_id,omitempty"`
	Lines     []orderLineBody `json:"lines"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body createOrderBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderType, err := orderTypeFromString(body.OrderType)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var tableID *kernel.UUID
	if body.TableID != nil {
		id, tableErr := kernel.UUIDFromString(*body.TableID)
		if tableErr != nil {
			return badRequest(ctx, "Invalid table id")
		}
		tableID = &id
	}

	lines, err := linesFromBody(body.Lines)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, orderType, tableID, lines, actor(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

type confirmOrderBody struct {
	Tax int64 `json:"tax"`
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body confirmOrderBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID, kernel.NewMoney(body.Tax),
		actor(ctx), ctx.Request().Header.Get(headerIdempotencyKey))
	if err != nil {
		return badRequest(ctx, "Invalid confirmation data: "+err.Error())
	}

	if handleErr := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type amendOrderBody struct {
	AddLines      []orderLineBody `json:"add_lines"`
	RemoveLineIDs []string        `json:"remove_line_ids"`
}

// AmendOrder handles POST /api/v1/orders/:id/amend.
func (s *Server) AmendOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body amendOrderBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	addLines, err := linesFromBody(body.AddLines)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	removeLineIDs := make([]kernel.UUID, 0, len(body.RemoveLineIDs))
	for _, raw := range body.RemoveLineIDs {
		lineID, lineErr := kernel.UUIDFromString(raw)
		if lineErr != nil {
			return badRequest(ctx, "Invalid line id")
		}
		removeLineIDs = append(removeLineIDs, lineID)
	}

	cmd, err := commands.NewAmendOrderCommand(orderID, addLines, removeLineIDs, actor(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid amendment: "+err.Error())
	}

	if handleErr := s.amendOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ServeOrder handles POST /api/v1/orders/:id/serve.
func (s *Server) ServeOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewServeOrderCommand(orderID, actor(ctx))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.serveOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor(ctx))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type ticketProgressBody struct {
	Progress string `json:"progress"`
}

// ReportTicketProgress handles POST /api/v1/tickets/:id/progress.
func (s *Server) ReportTicketProgress(ctx echo.Context) error {
	ticketID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid ticket id")
	}

	var body ticketProgressBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	progress, err := progressFromString(body.Progress)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReportTicketProgressCommand(ticketID, progress, actor(ctx))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.reportTicketProgressHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetKitchenBoard handles GET /api/v1/kitchen/board.
// The optional "station" query parameter narrows the board to one station.
func (s *Server) GetKitchenBoard(ctx echo.Context) error {
	query := queries.NewGetKitchenBoardQuery(ctx.QueryParam("station"))

	board, err := s.kitchenBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, board)
}

// GetOrderTracker handles GET /api/v1/orders/tracker/:number.
func (s *Server) GetOrderTracker(ctx echo.Context) error {
	query, err := queries.NewGetOrderTrackerQuery(ctx.Param("number"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	tracker, err := s.orderTrackerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, tracker)
}

type openSessionBody struct {
	TerminalID   string `json:"terminal_id"`
	OperatorID   string `json:"operator_id"`
	OpeningFloat int64  `json:"opening_float"`
}

// OpenSession handles POST /api/v1/sessions.
func (s *Server) OpenSession(ctx echo.Context) error {
	var body openSessionBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	sessionID := kernel.NewUUID()
	cmd, err := commands.NewOpenSessionCommand(sessionID, body.TerminalID, body.OperatorID,
		kernel.NewMoney(body.OpeningFloat))
	if err != nil {
		return badRequest(ctx, "Invalid session data: "+err.Error())
	}

	if handleErr := s.openSessionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": sessionID.String()})
}

type closeSessionBody struct {
	CountedCash int64 `json:"counted_cash"`
}

// CloseSession handles POST /api/v1/sessions/:id/close.
func (s *Server) CloseSession(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	var body closeSessionBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCloseSessionCommand(sessionID, kernel.NewMoney(body.CountedCash))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.closeSessionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOpenSession handles GET /api/v1/terminals/:terminalId/session.
func (s *Server) GetOpenSession(ctx echo.Context) error {
	query, err := queries.NewGetOpenSessionQuery(ctx.Param("terminalId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	session, err := s.openSessionQuery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, session)
}

type attachOrdersBody struct {
	SessionID string   `json:"session_id"`
	OrderIDs  []string `json:"order_ids"`
}

// AttachOrders handles POST /api/v1/transactions/:id/orders.
// The transaction is created on first attach, so the client chooses its id.
func (s *Server) AttachOrders(ctx echo.Context) error {
	transactionID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid transaction id")
	}

	var body attachOrdersBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	sessionID, err := kernel.UUIDFromString(body.SessionID)
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	orderIDs := make([]kernel.UUID, 0, len(body.OrderIDs))
	for _, raw := range body.OrderIDs {
		orderID, orderErr := kernel.UUIDFromString(raw)
		if orderErr != nil {
			return badRequest(ctx, "Invalid order id")
		}
		orderIDs = append(orderIDs, orderID)
	}

	cmd, err := commands.NewAttachOrdersCommand(transactionID, sessionID, orderIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.attachOrdersHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type captureTransactionBody struct {
	AmountTendered int64  `json:"amount_tendered"`
	Method         string `json:"method"`
}

// CaptureTransaction handles POST /api/v1/transactions/:id/capture.
func (s *Server) CaptureTransaction(ctx echo.Context) error {
	transactionID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid transaction id")
	}

	var body captureTransactionBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	method, err := paymentMethodFromString(body.Method)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCaptureTransactionCommand(transactionID,
		kernel.NewMoney(body.AmountTendered), method,
		actor(ctx), ctx.Request().Header.Get(headerIdempotencyKey))
	if err != nil {
		return badRequest(ctx, "Invalid capture data: "+err.Error())
	}

	if handleErr := s.captureTransactionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VoidTransaction handles POST /api/v1/transactions/:id/void.
func (s *Server) VoidTransaction(ctx echo.Context) error {
	transactionID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid transaction id")
	}

	cmd, err := commands.NewVoidTransactionCommand(transactionID, actor(ctx))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.voidTransactionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func actor(ctx echo.Context) string {
	return ctx.Request().Header.Get(headerActorID)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func linesFromBody(body []orderLineBody) ([]commands.OrderLineRequest, error) {
	lines := make([]commands.OrderLineRequest, 0, len(body))
	for _, line := range body {
		catalogItemID, err := kernel.UUIDFromString(line.CatalogItemID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("catalog_item_id", err)
		}
		lines = append(lines, commands.OrderLineRequest{
			CatalogItemID: catalogItemID,
			Quantity:      line.Quantity,
		})
	}
	return lines, nil
}

func orderTypeFromString(raw string) (order.Type, error) {
	switch raw {
	case "dine_in":
		return order.DineIn, nil
	case "takeaway":
		return order.Takeaway, nil
	case "delivery":
		return order.Delivery, nil
	default:
		return 0, errs.NewValueIsInvalidError("order_type")
	}
}

func paymentMethodFromString(raw string) (pos.PaymentMethod, error) {
	switch raw {
	case "cash":
		return pos.PaymentCash, nil
	case "card":
		return pos.PaymentCard, nil
	default:
		return 0, errs.NewValueIsInvalidError("method")
	}
}

func progressFromString(raw string) (commands.TicketProgress, error) {
	switch raw {
	case "started":
		return commands.ProgressStarted, nil
	case "completed":
		return commands.ProgressCompleted, nil
	default:
		return 0, errs.NewValueIsInvalidError("progress")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application and domain errors onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrAmountMismatch):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrAlreadySettled),
		errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, commands.ErrTerminalHasOpenSession),
		errors.Is(err, commands.ErrOrderNotServed),
		errors.Is(err, pos.ErrSessionIsClosed):
		status = http.StatusConflict
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
