package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenstep-az/ecorewards-backend/internal/http/handlers/common"
	"github.com/greenstep-az/ecorewards-backend/internal/ocr"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
	"github.com/greenstep-az/ecorewards-backend/internal/service"
)

// ReceiptHandler serves receipt submission and the OCR helper.
type ReceiptHandler struct {
	svc      *service.ReceiptService
	vendors  *repository.VendorRepository
	analyzer *ocr.Analyzer
}

func NewReceiptHandler(svc *service.ReceiptService, vendors *repository.VendorRepository, analyzer *ocr.Analyzer) *ReceiptHandler {
	return &ReceiptHandler{svc: svc, vendors: vendors, analyzer: analyzer}
}

// Submit POST /receipts
func (h *ReceiptHandler) Submit(c *gin.Context) {
	visitorID, err := common.VisitorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		VendorName     string  `json:"vendor_name" binding:"required"`
		PurchaseAmount float64 `json:"purchase_amount" binding:"required"`
		PurchaseDate   string  `json:"purchase_date" binding:"required"`
		ImageURL       *string `json:"image_url"`
		OCRData        *string `json:"ocr_data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	receipt, err := h.svc.Submit(c.Request.Context(), visitorID, service.SubmitReceiptInput{
		VendorName:     req.VendorName,
		PurchaseAmount: req.PurchaseAmount,
		PurchaseDate:   req.PurchaseDate,
		ImageURL:       req.ImageURL,
		OCRData:        req.OCRData,
	})
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			common.RespondBadRequest(c, validationErr.Error())
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

// ListMine GET /receipts/my
func (h *ReceiptHandler) ListMine(c *gin.Context) {
	visitorID, err := common.VisitorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	receipts, err := h.svc.List(c.Request.Context(), visitorID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}

// AnalyzeOCR POST /receipts/ocr
//
// Runs the uploaded image through the vision model and returns the
// extracted fields. The result only prefills the submission form, the
// visitor confirms before anything is stored.
func (h *ReceiptHandler) AnalyzeOCR(c *gin.Context) {
	var req struct {
		ImageURL string `json:"image_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "image_url is required")
		return
	}

	if !h.analyzer.Enabled() {
		common.RespondError(c, http.StatusServiceUnavailable, "receipt analysis is not configured")
		return
	}

	vendors, err := h.vendors.ListApproved(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	names := make([]string, 0, len(vendors))
	for _, v := range vendors {
		names = append(names, v.Name)
	}

	result, err := h.analyzer.AnalyzeReceipt(c.Request.Context(), absoluteImageURL(c, req.ImageURL), names)
	if err != nil {
		common.RespondError(c, http.StatusBadGateway, "failed to analyze receipt")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// absoluteImageURL turns a relative /media path into a URL the vision API
// can fetch.
func absoluteImageURL(c *gin.Context, imageURL string) string {
	if len(imageURL) == 0 || imageURL[0] != '/' {
		return imageURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + imageURL
}
