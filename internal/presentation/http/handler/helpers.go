package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/request"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/response"
	"github.com/sangkips/logistics-api/pkg/pagination"
)

// GetStaffID extracts the signed-in staff ID from the Gin context
func GetStaffID(c *gin.Context) *uuid.UUID {
	staffIDVal, exists := c.Get("staff_id")
	if !exists {
		return nil
	}
	staffID, ok := staffIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &staffID
}

// GetRole extracts the signed-in staff role from the Gin context
func GetRole(c *gin.Context) enum.StaffRole {
	return enum.StaffRole(c.GetString("role"))
}

// bindJSON decodes the body into req. Validation failures are answered
// with 422 and their field errors; malformed bodies with 400.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fieldErrs := request.FieldErrors(err); len(fieldErrs) > 0 {
			response.ValidationError(c, fieldErrs)
			return false
		}
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// pathID parses the named path parameter as a UUID
func pathID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	return pagination.FromQuery(c.Query("page"), c.Query("per_page"))
}
