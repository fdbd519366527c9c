package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/logistics-api/internal/application/service"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/request"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/response"
)

// StaffHandler handles staff management HTTP requests
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// List handles listing staff members
func (h *StaffHandler) List(c *gin.Context) {
	result, err := h.staffService.ListStaff(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Staff retrieved successfully", result)
}

// Create handles creating a staff member
func (h *StaffHandler) Create(c *gin.Context) {
	var req request.CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), &service.CreateStaffInput{
		Username:   req.Username,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Password:   req.Password,
		Role:       enum.StaffRole(req.Role),
		Department: req.Department,
		Phone:      req.Phone,
		EmployeeID: req.EmployeeID,
		IsActive:   req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff member created successfully", staff)
}

// Get handles getting a single staff member
func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "staff")
	if !ok {
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member retrieved successfully", staff)
}

// Update handles updating a staff member
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "staff")
	if !ok {
		return
	}

	var req request.UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateStaffInput{
		ID:         id,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Password:   req.Password,
		Department: req.Department,
		Phone:      req.Phone,
		IsActive:   req.IsActive,
	}
	if req.Role != nil {
		role := enum.StaffRole(*req.Role)
		input.Role = &role
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member updated successfully", staff)
}

// Delete handles deleting a staff member
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "staff")
	if !ok {
		return
	}

	if staffID := GetStaffID(c); staffID != nil && *staffID == id {
		response.BadRequest(c, "You cannot delete your own account")
		return
	}

	if err := h.staffService.DeleteStaff(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member deleted successfully", nil)
}
