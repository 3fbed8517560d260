package productcontroller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"github.com/xsevenai/pos-api/models"
	"github.com/xsevenai/pos-api/testutil"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func addSheetRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetValue(v)
	}
}

func postImport(t *testing.T, db *gorm.DB, build func(sheet *xlsx.Sheet)) *httptest.ResponseRecorder {
	t.Helper()

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	require.NoError(t, err)
	addSheetRow(sheet, "ID", "Name", "Description", "Price", "Stock", "Available", "Image", "CategoryIDs")
	build(sheet)

	var sheetBuf bytes.Buffer
	require.NoError(t, file.Write(&sheetBuf))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "products.xlsx")
	require.NoError(t, err)
	_, err = part.Write(sheetBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/products/import-excel", &body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	ImportProductsFromExcel(db)(c)
	return w
}

func TestImportProductsFromExcel(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.CreateProduct(t, db, "P001", 12.99, 50)

	w := postImport(t, db, func(sheet *xlsx.Sheet) {
		addSheetRow(sheet, "P010", "Spring Rolls", "Crispy vegetable rolls", "4.50", "20", "true", "", "")
		addSheetRow(sheet, "P001", "Classic Burger Deluxe", "Double patty", "13.50", "40", "true", "", "")
		// missing id and unparseable price are skipped, not fatal
		addSheetRow(sheet, "", "No ID", "", "1.00", "5", "true", "", "")
		addSheetRow(sheet, "P011", "Bad Price", "", "free", "5", "true", "", "")
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		CreatedCount int `json:"created_count"`
		UpdatedCount int `json:"updated_count"`
		SkippedCount int `json:"skipped_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.CreatedCount)
	assert.Equal(t, 1, resp.UpdatedCount)
	assert.Equal(t, 2, resp.SkippedCount)

	var created models.Product
	require.NoError(t, db.First(&created, "id = ?", "P010").Error)
	assert.Equal(t, "Spring Rolls", created.Name)
	assert.Equal(t, 4.50, created.Price)
	assert.Equal(t, 20, created.Stock)

	var updated models.Product
	require.NoError(t, db.First(&updated, "id = ?", "P001").Error)
	assert.Equal(t, "Classic Burger Deluxe", updated.Name)
	assert.Equal(t, 13.50, updated.Price)
	assert.Equal(t, 40, updated.Stock)

	// the bad rows created nothing
	var n int64
	require.NoError(t, db.Model(&models.Product{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestImportProductsEmptySheet(t *testing.T) {
	db := testutil.OpenDB(t)

	// header only, no data rows
	w := postImport(t, db, func(sheet *xlsx.Sheet) {})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportProductsMissingFile(t *testing.T) {
	db := testutil.OpenDB(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/products/import-excel", nil)
	ImportProductsFromExcel(db)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportProductsToExcel(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.CreateProduct(t, db, "P001", 12.99, 50)
	testutil.CreateProduct(t, db, "P002", 14.50, 30)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/products/export-excel", nil)
	ExportProductsToExcel(db)(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products.xlsx")

	xlFile, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, xlFile.Sheets, 1)

	sheet := xlFile.Sheets[0]
	require.Equal(t, 3, sheet.MaxRow) // header + 2 products

	var ids []string
	for i := 1; i < sheet.MaxRow; i++ {
		ids = append(ids, sheet.Rows[i].Cells[0].String())
	}
	assert.ElementsMatch(t, []string{"P001", "P002"}, ids)
}
