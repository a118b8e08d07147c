package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/services"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportVehicles handles GET /api/v1/exports/vehicles - renders the filtered
// vehicle list as a spreadsheet. By default the workbook is streamed as an
// attachment; with ?archive=true it is stored in S3 and a presigned download
// URL is returned instead. Query params: search, status, substage, stamp
func ExportVehicles(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	state, ok := filterStateOrAbort(c)
	if !ok {
		return
	}

	vehicles, ok := fetchVehiclesForSession(c, session)
	if !ok {
		return
	}
	filtered := services.FilterVehicles(appClock, vehicles, state)

	exporter := services.NewExportService(appClock)
	workbook, err := exporter.BuildVehicleWorkbook(filtered)
	if err != nil {
		log.Printf("export build failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_FAILED",
				"message": "Failed to build the export spreadsheet",
			},
		})
		return
	}

	content, err := exporter.WorkbookBytes(workbook)
	if err != nil {
		log.Printf("export serialization failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_FAILED",
				"message": "Failed to serialize the export spreadsheet",
			},
		})
		return
	}

	stamp := c.DefaultQuery("stamp", appClock.Now().Format("20060102"))
	filename := utils.ExportFileName(stamp)

	if c.Query("archive") == "true" {
		url, err := exporter.ArchiveWorkbook(content, filename)
		if err != nil {
			log.Printf("export archive failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ARCHIVE_FAILED",
					"message": "Failed to archive the export spreadsheet",
				},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"filename":    filename,
				"downloadUrl": url,
				"rows":        len(filtered),
			},
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, content)
}
