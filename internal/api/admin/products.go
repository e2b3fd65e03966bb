package admin

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"watch-storefront/internal/api/products"
	"watch-storefront/internal/service"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

var formFields = []string{
	"titleEn", "titleIt", "descriptionEn", "descriptionIt",
	"price", "status", "brand", "model", "year", "condition",
}

// UpdateProduct handles PUT /api/admin/products/:id as multipart/form-data.
// An "image" file replaces every existing image of the product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize+(1<<20))
	if _, err := c.MultipartForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid form data"})
		return
	}

	in := formInput(c)

	var upload *service.Upload
	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image upload"})
		return
	default:
		if !allowedImageExt[strings.ToLower(filepath.Ext(fh.Filename))] {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Image must be a .jpg, .jpeg, .png or .webp file"})
			return
		}
		if fh.Size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Image must not exceed 10 MB"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image upload"})
			return
		}
		defer f.Close()

		h.log.InfoContext(ctx, "processing image file", "product_id", id, "filename", fh.Filename, "size", fh.Size)
		upload = &service.Upload{File: f, Filename: fh.Filename}
	}

	p, err := h.svc.UpdateWithUpload(ctx, id, in, upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		default:
			h.log.ErrorContext(ctx, "error updating product", "product_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	h.log.InfoContext(ctx, "product updated", "product_id", p.ID, "images", len(p.Images))
	c.JSON(http.StatusOK, products.ToProductDTO(*p))
}

// formInput copies the submitted text fields. Absent fields stay nil.
func formInput(c *gin.Context) service.ProductInput {
	vals := make(map[string]*string, len(formFields))
	for _, k := range formFields {
		if v, ok := c.GetPostForm(k); ok {
			v := v
			vals[k] = &v
		}
	}
	return service.ProductInput{
		TitleEn:       vals["titleEn"],
		TitleIt:       vals["titleIt"],
		DescriptionEn: vals["descriptionEn"],
		DescriptionIt: vals["descriptionIt"],
		Price:         vals["price"],
		Status:        vals["status"],
		Brand:         vals["brand"],
		Model:         vals["model"],
		Year:          vals["year"],
		Condition:     vals["condition"],
	}
}
