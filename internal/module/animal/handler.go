package animal

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

// maxImageBytes caps a single uploaded image.
const maxImageBytes = 10 << 20

// AnimalHandler handles REST API requests for animal listings.
type AnimalHandler struct {
	svc Service
}

// NewAnimalHandler creates a new AnimalHandler with the given service.
func NewAnimalHandler(svc Service) *AnimalHandler {
	return &AnimalHandler{svc: svc}
}

// List handles GET /api/v1/animals.
func (h *AnimalHandler) List(c *gin.Context) {
	query, err := ParseListQuery(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	page := pkg.ParsePageRequest(c)

	result, err := h.svc.List(c.Request.Context(), query, page, c.Request.URL.Path)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, NewListResponse(result))
}

// Get handles GET /api/v1/animals/:term where term is a numeric id or a slug.
func (h *AnimalHandler) Get(c *gin.Context) {
	animal, err := h.svc.GetByTerm(c.Request.Context(), c.Param("term"))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, NewAnimalDetail(animal))
}

// Create handles POST /api/v1/animals/cat and POST /api/v1/animals/dog.
func (h *AnimalHandler) Create(animalType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			pkg.Error(c, domain.ErrUnauthenticated)
			return
		}

		var req CreateAnimalRequest
		if !pkg.BindAndValidate(c, &req) {
			return
		}

		animal, err := h.svc.Create(c.Request.Context(), actor, animalType, req)
		if err != nil {
			pkg.Error(c, err)
			return
		}

		c.JSON(http.StatusCreated, pkg.Response{
			Code:    http.StatusCreated,
			Message: "success",
			Data:    NewAnimalDetail(animal),
		})
	}
}

// Update handles PUT /api/v1/animals/:term.
func (h *AnimalHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	var req UpdateAnimalRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	animal, err := h.svc.Update(c.Request.Context(), actor, c.Param("term"), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, NewAnimalDetail(animal))
}

// Delete handles DELETE /api/v1/animals/:term.
func (h *AnimalHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, c.Param("term")); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// UploadImage handles POST /api/v1/animals/:term/images (multipart form,
// field "image").
func (h *AnimalHandler) UploadImage(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "image file is required", err))
		return
	}
	if fileHeader.Size > maxImageBytes {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "image file too large", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "could not read uploaded file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "could not read uploaded file", err))
		return
	}

	animal, err := h.svc.AddImage(c.Request.Context(), actor, c.Param("term"),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "success",
		Data:    NewAnimalDetail(animal),
	})
}

// DeleteImage handles DELETE /api/v1/animals/:term/images/:imageID.
func (h *AnimalHandler) DeleteImage(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	imageID, err := strconv.ParseUint(c.Param("imageID"), 10, 64)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid image id", nil))
		return
	}

	if err := h.svc.RemoveImage(c.Request.Context(), actor, c.Param("term"), uint(imageID)); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
