package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/services"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/utils"
)

// ImportVehicles handles POST /api/v1/imports/vehicles - parses an uploaded
// spreadsheet and replaces the backend's vehicle table with its accepted
// rows (staff only)
func ImportVehicles(c *gin.Context) {
	runImport(c, func(ctx context.Context, svc *services.ImportService, token string, f *excelize.File) (services.ImportResult, error) {
		return svc.ImportVehicles(ctx, token, f)
	})
}

// ImportCompleted handles POST /api/v1/imports/completed - parses an
// uploaded spreadsheet and submits its "Sortie Usine" rows (staff only)
func ImportCompleted(c *gin.Context) {
	runImport(c, func(ctx context.Context, svc *services.ImportService, token string, f *excelize.File) (services.ImportResult, error) {
		return svc.ImportCompleted(ctx, token, f)
	})
}

// runImport implements the shared upload flow: validate the multipart file,
// parse it as a workbook (file-level failure only), then hand it to the
// import service. Row-level problems never surface individually; only the
// aggregate counts do.
func runImport(c *gin.Context, runner func(context.Context, *services.ImportService, string, *excelize.File) (services.ImportResult, error)) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "A spreadsheet file is required",
			},
		})
		return
	}

	if err := utils.ValidateSpreadsheetFile(fileHeader); err != nil {
		code := "INVALID_FILE"
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE",
				"message": "Could not read the uploaded file",
			},
		})
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close upload: %v", closeErr)
		}
	}()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		// File-level rejection: nothing is uploaded.
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE",
				"message": "The uploaded file is not a readable spreadsheet",
			},
		})
		return
	}
	defer func() {
		if closeErr := workbook.Close(); closeErr != nil {
			log.Printf("warning: failed to close workbook: %v", closeErr)
		}
	}()

	svc := services.NewImportService(services.GetCRVOService())
	result, err := runner(c.Request.Context(), svc, session.Token, workbook)
	if err != nil {
		// Already-submitted rows are not rolled back; the counts say how far
		// the operation got.
		log.Printf("import failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"data":    result,
			"error": gin.H{
				"code":    "IMPORT_FAILED",
				"message": "One or more rows could not be submitted to the CRVO backend",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
