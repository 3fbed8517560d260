package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xsevenai/pos-api/models"
	"gorm.io/gorm"
)

type ProductInput struct {
	ID          string  `json:"id"` // optional, generated when empty
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Available   *bool   `json:"available"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Image       string  `json:"image"`
	CategoryIDs []uint  `json:"category_ids"`
}

// CreateProduct creates a new product, optionally attached to categories.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		id := strings.TrimSpace(input.ID)
		if id == "" {
			id = "P-" + strings.ToUpper(uuid.NewString()[:8])
		}

		available := true
		if input.Available != nil {
			available = *input.Available
		}

		var categories []models.Category
		if len(input.CategoryIDs) > 0 {
			if err := db.Where("id IN ?", input.CategoryIDs).Find(&categories).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
				return
			}
			if len(categories) != len(input.CategoryIDs) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category id"})
				return
			}
		}

		newProduct := models.Product{
			ID:          id,
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Available:   available,
			Stock:       input.Stock,
			Image:       input.Image,
			Categories:  categories,
		}

		if err := db.Create(&newProduct).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Failed to create product (duplicate id?)"})
			return
		}

		c.JSON(http.StatusCreated, newProduct)
	}
}
