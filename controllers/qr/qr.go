package qrcontroller

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/xsevenai/pos-api/models"
	"gorm.io/gorm"
)

type GenerateQRInput struct {
	Label     string `json:"label" binding:"required"`      // e.g. "Table 4"
	TargetURL string `json:"target_url" binding:"required"` // what the code opens
	Size      int    `json:"size"`                          // pixels, default 512
}

var unsafeChars = regexp.MustCompile(`[^\w\d\-_\.]`)

// GenerateQRHandler renders a QR PNG for a menu or table URL, stores it under
// the uploads dir and records it in the DB.
func GenerateQRHandler(db *gorm.DB, uploadDir string, publicBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input GenerateQRInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if _, err := url.ParseRequestURI(input.TargetURL); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target_url is not a valid URL"})
			return
		}

		size := input.Size
		if size <= 0 {
			size = 512
		}
		if size > 2048 {
			size = 2048
		}

		// Sanitize label for use as a filename
		cleanName := unsafeChars.ReplaceAllString(input.Label, "_")
		filename := fmt.Sprintf("%d_%s.png", time.Now().Unix(), cleanName)

		// Ensure upload directory exists
		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to create upload folder: %v", err),
			})
			return
		}

		savePath := filepath.Join(uploadDir, filename)
		if err := qrcode.WriteFile(input.TargetURL, qrcode.Medium, size, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to generate QR code: %v", err),
			})
			return
		}

		// Construct public URL
		fileURL := fmt.Sprintf("%s/qrfiles/%s", publicBaseURL, filename)

		qrFile, err := models.SaveQRFile(db, input.Label, input.TargetURL, filename, fileURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save QR file record"})
			return
		}

		log.Printf("QR code generated: %s -> %s", input.Label, fileURL)

		c.JSON(http.StatusCreated, qrFile)
	}
}

// ListQRFilesHandler returns all generated QR codes, newest first.
func ListQRFilesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		files, err := models.GetAllQRFiles(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch QR files"})
			return
		}
		c.JSON(http.StatusOK, files)
	}
}
