package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veenadevi/tn-lms-backend/internal/content"
)

// ContentController handles uploaded digital material: scans, photos,
// documents.
type ContentController struct {
	storage  *content.Storage
	maxFiles int
	maxBytes int64
}

func NewContentController(storage *content.Storage, maxFiles int, maxFileSizeMB int64) *ContentController {
	return &ContentController{
		storage:  storage,
		maxFiles: maxFiles,
		maxBytes: maxFileSizeMB << 20,
	}
}

// Upload accepts a multipart batch of files and routes each into its storage
// area under a timestamp-prefixed sanitized name.
// POST /content/upload
func (controller *ContentController) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondBadRequest(c, "invalid multipart form")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		respondBadRequest(c, "no files supplied")
		return
	}
	if len(files) > controller.maxFiles {
		respondBadRequest(c, fmt.Sprintf("too many files: at most %d per upload", controller.maxFiles))
		return
	}

	uploaded := make([]content.FileInfo, 0, len(files))
	for _, header := range files {
		if header.Size > controller.maxBytes {
			respondBadRequest(c, fmt.Sprintf("%s exceeds the %dMB limit", header.Filename, controller.maxBytes>>20))
			return
		}

		area, err := content.ClassifyFile(header.Header.Get("Content-Type"), header.Filename)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "unsupported upload type",
				Details: header.Filename,
			})
			return
		}

		src, err := header.Open()
		if err != nil {
			respondInternalError(c, err, "upload open")
			return
		}

		info, err := controller.storage.Save(area, content.StoredName(header.Filename), src)
		src.Close()
		if err != nil {
			respondInternalError(c, err, "upload save")
			return
		}
		uploaded = append(uploaded, *info)
	}

	c.JSON(http.StatusOK, gin.H{"uploaded": uploaded})
}

// Files lists stored files grouped by area with size and relative path.
// GET /content/files
func (controller *ContentController) Files(c *gin.Context) {
	listing, err := controller.storage.List()
	if err != nil {
		respondInternalError(c, err, "content listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// Download streams a stored file back by its relative path.
// GET /content/download?path=...
func (controller *ContentController) Download(c *gin.Context) {
	relPath := c.Query("path")
	if relPath == "" {
		respondBadRequest(c, "path query parameter is required")
		return
	}

	abs, err := controller.storage.Resolve(relPath)
	if err != nil {
		respondNotFound(c, "file")
		return
	}
	c.File(abs)
}
