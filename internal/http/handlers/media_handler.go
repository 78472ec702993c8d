package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/greenstep-az/ecorewards-backend/internal/http/handlers/common"
	"github.com/greenstep-az/ecorewards-backend/internal/storage"
)

// Upload types accepted for receipt photos.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/heif": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

// MediaHandler stores uploaded receipt photos.
type MediaHandler struct {
	storage *storage.ReceiptStorage
}

func NewMediaHandler(storage *storage.ReceiptStorage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// UploadReceiptImage POST /media/receipts
func (h *MediaHandler) UploadReceiptImage(c *gin.Context) {
	visitorID, err := common.VisitorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "field file is required")
		return
	}

	if file.Size == 0 {
		common.RespondBadRequest(c, "file cannot be empty")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		common.RespondBadRequest(c, fmt.Sprintf("unsupported file extension %s", ext))
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondInternalError(c, "")
		return
	}
	defer src.Close()

	// The first 512 bytes are enough to identify the real file type.
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		common.RespondBadRequest(c, "cannot read the file")
		return
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown {
		common.RespondBadRequest(c, "cannot identify file type, only images are accepted")
		return
	}

	contentType := kind.MIME.Value
	if !allowedMimeTypes[contentType] {
		common.RespondBadRequest(c, fmt.Sprintf("unsupported file type %s, only images are accepted", contentType))
		return
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			common.RespondInternalError(c, "")
			return
		}
	}

	relativePath, size, err := h.storage.Save(c.Request.Context(), visitorID, file.Filename, src)
	if err != nil {
		var tooLarge *storage.ErrFileTooLarge
		if errors.As(err, &tooLarge) {
			common.RespondError(c, http.StatusRequestEntityTooLarge, tooLarge.Error())
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":       "/media/" + filepath.ToSlash(relativePath),
		"file_type": contentType,
		"file_size": size,
	})
}
