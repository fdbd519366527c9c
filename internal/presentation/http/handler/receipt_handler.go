package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/application/service"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/request"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/response"
	"github.com/sangkips/logistics-api/pkg/pagination"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReceiptHandler handles receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	exportService  *service.ExportService
	printerService *service.PrinterService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(
	receiptService *service.ReceiptService,
	exportService *service.ExportService,
	printerService *service.PrinterService,
) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		exportService:  exportService,
		printerService: printerService,
	}
}

// List handles listing receipt headers
func (h *ReceiptHandler) List(c *gin.Context) {
	var req request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if fieldErrs := request.FieldErrors(err); len(fieldErrs) > 0 {
			response.ValidationError(c, fieldErrs)
			return
		}
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := &repository.ReceiptFilter{
		Pagination: pagination.FromQuery(req.Page, req.PerPage),
		Search:     req.Search,
		From:       request.ParseDate(&req.From),
		To:         request.ParseDate(&req.To),
	}
	if req.PaymentStatus != "" {
		status := enum.PaymentStatus(req.PaymentStatus)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid payment status")
			return
		}
		filter.PaymentStatus = &status
	}
	customerID, ok := request.ParseUUID(req.CustomerID)
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	filter.CustomerID = customerID

	result, err := h.receiptService.ListReceipts(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Receipts retrieved successfully", result)
}

// Create handles creating a receipt together with its items
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.ReceiptItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = itemInput(item)
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), &service.CreateReceiptInput{
		CustomerID:      req.CustomerID,
		IssueDate:       request.ParseDate(req.IssueDate),
		PaymentStatus:   enum.PaymentStatus(req.PaymentStatus),
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		LoadingDate:     request.ParseDate(req.LoadingDate),
		ETA:             request.ParseDate(req.ETA),
		ContainerNumber: req.ContainerNumber,
		CreatedByID:     GetStaffID(c),
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Get handles getting a receipt with its items
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Update handles updating a receipt header
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}

	var req request.UpdateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateReceiptInput{
		ID:              id,
		CustomerID:      req.CustomerID,
		IssueDate:       request.ParseDate(req.IssueDate),
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		LoadingDate:     request.ParseDate(req.LoadingDate),
		ETA:             request.ParseDate(req.ETA),
		ContainerNumber: req.ContainerNumber,
	}
	if req.PaymentStatus != nil {
		status := enum.PaymentStatus(*req.PaymentStatus)
		input.PaymentStatus = &status
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt updated successfully", receipt)
}

// Delete handles deleting a receipt and its items
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt deleted successfully", nil)
}

// AddItem handles appending an item to a receipt
func (h *ReceiptHandler) AddItem(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}

	var req request.ReceiptItemRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.receiptService.AddItem(c.Request.Context(), id, itemInput(req)); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithReceipt(c, http.StatusCreated, id, "Item added successfully")
}

// UpdateItem handles changing one item of a receipt
func (h *ReceiptHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId", "item")
	if !ok {
		return
	}

	var req request.UpdateReceiptItemRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.receiptService.UpdateItem(c.Request.Context(), id, itemID, service.UpdateItemInput{
		Description: req.Description,
		CBM:         req.CBM,
		UnitPrice:   req.UnitPrice,
		CategoryID:  req.CategoryID,
		ShipmentID:  req.ShipmentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithReceipt(c, http.StatusOK, id, "Item updated successfully")
}

// RemoveItem handles deleting one item of a receipt
func (h *ReceiptHandler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId", "item")
	if !ok {
		return
	}

	if err := h.receiptService.RemoveItem(c.Request.Context(), id, itemID); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithReceipt(c, http.StatusOK, id, "Item removed successfully")
}

// Export handles downloading a receipt as a spreadsheet
func (h *ReceiptHandler) Export(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}

	filename, buf, err := h.exportService.ExportReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

// Print handles sending a receipt to the thermal printer
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		// the receipt was found but the printer failed
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}

// respondWithReceipt answers item edits with the whole receipt so the
// client sees the recomputed total.
func (h *ReceiptHandler) respondWithReceipt(c *gin.Context, status int, id uuid.UUID, message string) {
	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, status, message, receipt)
}

func itemInput(req request.ReceiptItemRequest) service.ReceiptItemInput {
	return service.ReceiptItemInput{
		Description: req.Description,
		CBM:         req.CBM,
		UnitPrice:   req.UnitPrice,
		CategoryID:  req.CategoryID,
		ShipmentID:  req.ShipmentID,
	}
}
