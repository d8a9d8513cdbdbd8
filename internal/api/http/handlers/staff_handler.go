package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-service/internal/api/dto"
	"github.com/spec-kit/staff-service/internal/auth"
	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/service"
	"github.com/spec-kit/staff-service/internal/validation"
	apperrors "github.com/spec-kit/staff-service/pkg/util"
)

// StaffHandler exposes the staff resource endpoints.
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// Login handles POST /staff/login.
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Email and password are required!")
	}

	result, err := h.staffService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    result.SessionToken,
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"message":    "Login successful!",
		"staffId":    result.Staff.ID,
		"token":      result.AccessToken,
		"expires_at": result.ExpiresAt,
	})
}

// Logout handles POST /staff/logout.
func (h *StaffHandler) Logout(c *fiber.Ctx) error {
	if token, ok := auth.SessionTokenFromContext(c); ok {
		if err := h.staffService.Logout(c.Context(), token); err != nil {
			return err
		}
	}
	c.ClearCookie(auth.SessionCookieName)
	return c.JSON(fiber.Map{"message": "Logged out successfully!"})
}

// Me handles GET /staff/me.
func (h *StaffHandler) Me(c *fiber.Ctx) error {
	staff, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required!")
	}
	return c.JSON(staffResponse(staff))
}

// Create handles POST /staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	fields, err := parseFields(c)
	if err != nil {
		return err
	}
	if err := validation.ValidateCreate(fields); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	input := service.CreateStaffInput{
		Username: fields["username"].(string),
		Email:    fields["email"].(string),
		Phone:    fields["phone"].(string),
		CNIC:     fields["cnic"].(string),
		Password: fields["password"].(string),
		Role:     fields["role"].(string),
	}
	if _, err := h.staffService.Create(c.Context(), input); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Staff created successfully!"})
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	list, err := h.staffService.List(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(list))
	for i := range list {
		resp = append(resp, staffResponse(&list[i]))
	}
	return c.JSON(resp)
}

// Get handles GET /staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	staff, err := h.staffService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(staffResponse(staff))
}

// Update handles PATCH and PUT /staff/:id. Both apply a partial merge of the
// supplied fields.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	fields, err := parseFields(c)
	if err != nil {
		return err
	}
	if err := validation.ValidateUpdate(fields); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	patch := service.StaffPatch{
		Username: stringField(fields, "username"),
		Email:    stringField(fields, "email"),
		Phone:    stringField(fields, "phone"),
		CNIC:     stringField(fields, "cnic"),
		Password: stringField(fields, "password"),
		Role:     stringField(fields, "role"),
	}
	updated, err := h.staffService.Update(c.Context(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Staff updated successfully!",
		"staff":   staffResponse(updated),
	})
}

// Delete handles DELETE /staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if err := h.staffService.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Staff deleted successfully!"})
}

func parseFields(c *fiber.Ctx) (validation.Fields, error) {
	var fields validation.Fields
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return nil, apperrors.NewValidationError("invalid payload")
	}
	return fields, nil
}

func stringField(fields validation.Fields, name string) *string {
	value, ok := fields[name]
	if !ok {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return nil
	}
	return &str
}

func staffResponse(staff *domain.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		ID:        staff.ID,
		Username:  staff.Username,
		Email:     staff.Email,
		Phone:     staff.Phone,
		CNIC:      staff.CNIC,
		Role:      staff.Role,
		CreatedAt: staff.CreatedAt,
		UpdatedAt: staff.UpdatedAt,
	}
}
