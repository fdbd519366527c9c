package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/logistics-api/internal/application/service"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/request"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.customerService.ListCustomers(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), createCustomerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// CreateOrGet returns the customer with the given company name, creating it
// when none exists
func (h *CustomerHandler) CreateOrGet(c *gin.Context) {
	var req request.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, created, err := h.customerService.CreateOrGetCustomer(c.Request.Context(), createCustomerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	if created {
		response.Created(c, "Customer created successfully", customer)
		return
	}
	response.OK(c, "Customer already exists", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	var req request.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:                  id,
		CompanyName:         req.CompanyName,
		ContactPerson:       req.ContactPerson,
		Phone:               req.Phone,
		Email:               req.Email,
		Address:             req.Address,
		CompanyRegistration: req.CompanyRegistration,
		IsActive:            req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

func createCustomerInput(req *request.CreateCustomerRequest) *service.CreateCustomerInput {
	return &service.CreateCustomerInput{
		CompanyName:         req.CompanyName,
		ContactPerson:       req.ContactPerson,
		Phone:               req.Phone,
		Email:               req.Email,
		Address:             req.Address,
		CompanyRegistration: req.CompanyRegistration,
		IsActive:            req.IsActive,
	}
}
