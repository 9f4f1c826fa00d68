package handler

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/domain/entity"
	"mims-console/internal/infrastructure/backend"
	"mims-console/internal/presentation/http/dto/response"
)

// maxAssetSize caps uploaded logo/stamp images.
const maxAssetSize = 5 << 20

// ProfileHandler handles business profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the session's business profile. 404 means the account has
// not completed onboarding yet.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), SessionEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Business profile", profile)
}

// Save creates or replaces the business profile. The request is multipart
// so the logo and stamp images travel with the form fields.
func (h *ProfileHandler) Save(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Expected a multipart form")
		return
	}

	input := &service.SaveProfileInput{
		Profile: entity.BusinessProfile{
			BusinessName:     formValue(form, "business_name"),
			BusinessMobile:   formValue(form, "business_mobile"),
			BusinessAddress:  formValue(form, "business_address"),
			BusinessCategory: formValue(form, "business_category"),
		},
	}

	input.Logo, err = formFile(form, "logo")
	if err != nil {
		response.BadRequest(c, "Could not read the logo image")
		return
	}
	input.Stamp, err = formFile(form, "stamp")
	if err != nil {
		response.BadRequest(c, "Could not read the stamp image")
		return
	}

	if err := h.profileService.Save(c.Request.Context(), SessionEmail(c), input); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business profile saved", nil)
}

func formValue(form *multipart.Form, name string) string {
	values := form.Value[name]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func formFile(form *multipart.Form, name string) (*backend.FilePart, error) {
	files := form.File[name]
	if len(files) == 0 {
		return nil, nil
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAssetSize))
	if err != nil {
		return nil, err
	}

	return &backend.FilePart{Filename: files[0].Filename, Data: data}, nil
}
