package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/logistics-api/internal/application/service"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/request"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/response"
	"github.com/sangkips/logistics-api/pkg/pagination"
)

// ShipmentHandler handles shipment HTTP requests
type ShipmentHandler struct {
	shipmentService *service.ShipmentService
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(shipmentService *service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// List handles listing shipments
func (h *ShipmentHandler) List(c *gin.Context) {
	var req request.ShipmentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := &repository.ShipmentFilter{
		Pagination: pagination.FromQuery(req.Page, req.PerPage),
		Search:     req.Search,
	}
	if req.Status != "" {
		status := enum.ShipmentStatus(req.Status)
		filter.Status = &status
	}
	customerID, ok := request.ParseUUID(req.CustomerID)
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	filter.CustomerID = customerID

	result, err := h.shipmentService.ListShipments(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Shipments retrieved successfully", result)
}

// Create handles creating a shipment
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req request.CreateShipmentRequest
	if !bindJSON(c, &req) {
		return
	}

	shipment, err := h.shipmentService.CreateShipment(c.Request.Context(), &service.CreateShipmentInput{
		TrackingNumber:    req.TrackingNumber,
		CustomerID:        req.CustomerID,
		Origin:            req.Origin,
		Destination:       req.Destination,
		Description:       req.Description,
		Weight:            req.Weight,
		Dimensions:        req.Dimensions,
		Status:            enum.ShipmentStatus(req.Status),
		ShippedDate:       request.ParseDate(req.ShippedDate),
		EstimatedDelivery: request.ParseDate(req.EstimatedDelivery),
		ActualDelivery:    request.ParseDate(req.ActualDelivery),
		CreatedByID:       GetStaffID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shipment created successfully", shipment)
}

// Get handles getting a single shipment
func (h *ShipmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "shipment")
	if !ok {
		return
	}

	shipment, err := h.shipmentService.GetShipment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shipment retrieved successfully", shipment)
}

// Update handles updating a shipment
func (h *ShipmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "shipment")
	if !ok {
		return
	}

	var req request.UpdateShipmentRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateShipmentInput{
		ID:                id,
		TrackingNumber:    req.TrackingNumber,
		CustomerID:        req.CustomerID,
		Origin:            req.Origin,
		Destination:       req.Destination,
		Description:       req.Description,
		Weight:            req.Weight,
		Dimensions:        req.Dimensions,
		ShippedDate:       request.ParseDate(req.ShippedDate),
		EstimatedDelivery: request.ParseDate(req.EstimatedDelivery),
		ActualDelivery:    request.ParseDate(req.ActualDelivery),
	}
	if req.Status != nil {
		status := enum.ShipmentStatus(*req.Status)
		input.Status = &status
	}

	shipment, err := h.shipmentService.UpdateShipment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shipment updated successfully", shipment)
}

// Delete handles deleting a shipment. Receipt items keep their prices.
func (h *ShipmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "shipment")
	if !ok {
		return
	}

	if err := h.shipmentService.DeleteShipment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shipment deleted successfully", nil)
}
