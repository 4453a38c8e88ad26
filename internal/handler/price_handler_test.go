package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prakasautama/procost/internal/entity"
	"github.com/prakasautama/procost/internal/repository"
	"github.com/prakasautama/procost/internal/service"
	"github.com/prakasautama/procost/internal/testutil"
	"gorm.io/gorm"
)

func setupPriceTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	priceSvc := service.NewPriceService(repos.Price, repos.Ipd, repos.Supplier, db, nil)
	ipdSvc := service.NewIpdService(repos.Ipd, nil)

	priceHandler := NewPriceHandler(priceSvc)
	ipdHandler := NewIpdHandler(ipdSvc)

	router.GET("/price", priceHandler.List)
	router.POST("/price", priceHandler.Create)
	router.PUT("/price/:id", priceHandler.Update)
	router.DELETE("/price/:id", priceHandler.Delete)
	router.GET("/price-quarters", priceHandler.Quarters)
	router.GET("/siis", priceHandler.Siis)
	router.GET("/total", priceHandler.Total)
	router.GET("/ipd/verify", ipdHandler.Verify)
	router.POST("/ipd", ipdHandler.Create)

	return db, router
}

func seedPriceFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	db.Create(&entity.SupplierMaster{
		ID: "sup-1", SupplierCode: "SUP-001", SupplierName: "Acme Steel", CreatedAt: time.Now(),
	})
	db.Create(&entity.IpdRecord{
		ID: "ipd-1", IpdSiis: "SIIS-001", Supplier: "Acme Steel",
		IpdQuotation: "REF-1", CreatedAt: time.Now(),
	})
}

func TestPriceCreateHeaderWithDetails(t *testing.T) {
	db, router := setupPriceTest(t)
	seedPriceFixture(t, db)

	w := testutil.DoRequest(router, "POST", "/price", map[string]interface{}{
		"supplier_id": "sup-1",
		"start_date":  "2025-01-01",
		"quarter":     "Q1",
		"details": []map[string]interface{}{
			{"ipd_quotation": "REF-1", "material_source": "local", "price": 10.5},
			{"ipd_quotation": "REF-2", "material_source": "import", "price": 7.25},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var headerCount, detailCount int64
	db.Model(&entity.PriceHeader{}).Count(&headerCount)
	db.Model(&entity.PriceDetail{}).Count(&detailCount)
	if headerCount != 1 || detailCount != 2 {
		t.Errorf("Expected 1 header and 2 details, got %d / %d", headerCount, detailCount)
	}
}

func TestPriceCreateRejectsBadDate(t *testing.T) {
	db, router := setupPriceTest(t)
	seedPriceFixture(t, db)

	w := testutil.DoRequest(router, "POST", "/price", map[string]interface{}{
		"supplier_id": "sup-1",
		"start_date":  "01/01/2025",
		"quarter":     "Q1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for bad date, got %d: %s", w.Code, w.Body.String())
	}

	var headerCount int64
	db.Model(&entity.PriceHeader{}).Count(&headerCount)
	if headerCount != 0 {
		t.Errorf("Expected no header persisted, found %d", headerCount)
	}
}

func TestPriceUpdateHeaderWindowOnly(t *testing.T) {
	db, router := setupPriceTest(t)
	seedPriceFixture(t, db)

	w := testutil.DoRequest(router, "POST", "/price", map[string]interface{}{
		"supplier_id": "sup-1",
		"start_date":  "2025-01-01",
		"quarter":     "Q1",
		"details": []map[string]interface{}{
			{"ipd_quotation": "REF-1", "price": 1.0},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Seed create failed: %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["id"].(string)

	// Only the quarter, no supplier_id or start_date in the payload
	w2 := testutil.DoRequest(router, "PUT", "/price/"+id, map[string]interface{}{
		"quarter": "Q2",
	})
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200 for partial update, got %d: %s", w2.Code, w2.Body.String())
	}

	var header entity.PriceHeader
	if err := db.Where("id = ?", id).First(&header).Error; err != nil {
		t.Fatalf("Reload header: %v", err)
	}
	if header.Quarter != "Q2" {
		t.Errorf("Expected quarter updated to Q2, got %q", header.Quarter)
	}
	if header.SupplierID != "sup-1" {
		t.Errorf("Expected supplier untouched, got %q", header.SupplierID)
	}
	if header.StartDate.Format("2006-01-02") != "2025-01-01" {
		t.Errorf("Expected start date untouched, got %v", header.StartDate)
	}

	var detailCount int64
	db.Model(&entity.PriceDetail{}).Where("header_id = ?", id).Count(&detailCount)
	if detailCount != 1 {
		t.Errorf("Expected details untouched, found %d", detailCount)
	}

	// Malformed date still rejected
	w3 := testutil.DoRequest(router, "PUT", "/price/"+id, map[string]interface{}{
		"start_date": "01/01/2025",
	})
	if w3.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad start_date, got %d: %s", w3.Code, w3.Body.String())
	}
}

func TestPriceDeleteCascadesDetails(t *testing.T) {
	db, router := setupPriceTest(t)
	seedPriceFixture(t, db)

	w := testutil.DoRequest(router, "POST", "/price", map[string]interface{}{
		"supplier_id": "sup-1",
		"start_date":  "2025-01-01",
		"quarter":     "Q1",
		"details": []map[string]interface{}{
			{"ipd_quotation": "REF-1", "price": 1.0},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Seed create failed: %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["id"].(string)

	w2 := testutil.DoRequest(router, "DELETE", "/price/"+id, nil)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	var detailCount int64
	db.Model(&entity.PriceDetail{}).Count(&detailCount)
	if detailCount != 0 {
		t.Errorf("Expected details deleted with header, found %d", detailCount)
	}
}

func TestSiisEndpointMatchesAcrossQuarters(t *testing.T) {
	db, router := setupPriceTest(t)
	seedPriceFixture(t, db)

	for _, q := range []struct {
		quarter string
		start   string
		price   float64
	}{
		{"Q1", "2025-01-01", 10.0},
		{"Q2", "2025-04-01", 11.5},
	} {
		w := testutil.DoRequest(router, "POST", "/price", map[string]interface{}{
			"supplier_id": "sup-1",
			"start_date":  q.start,
			"quarter":     q.quarter,
			"details": []map[string]interface{}{
				{"ipd_quotation": "REF-1", "material_source": "local", "price": q.price},
			},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("Seed create failed: %d: %s", w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(router, "GET", "/siis?supplier_id=sup-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	rows := testutil.ParseList(w)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 matched rows across quarters, got %d", len(rows))
	}
	if rows[0]["quarter"] != "Q1" || rows[1]["quarter"] != "Q2" {
		t.Errorf("Expected ascending quarter order, got %v / %v", rows[0]["quarter"], rows[1]["quarter"])
	}
	if rows[0]["ipd_siis"] != "SIIS-001" {
		t.Errorf("Expected catalog SIIS joined in, got %v", rows[0]["ipd_siis"])
	}
}

func TestSiisRequiresSupplier(t *testing.T) {
	_, router := setupPriceTest(t)
	w := testutil.DoRequest(router, "GET", "/siis", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without supplier_id, got %d", w.Code)
	}
}

func TestQuartersDistinct(t *testing.T) {
	db, router := setupPriceTest(t)
	seedPriceFixture(t, db)

	for _, q := range []string{"Q1", "Q1", "Q2"} {
		db.Create(&entity.PriceHeader{
			ID: "h-" + q + time.Now().Format("150405.000000"), SupplierID: "sup-1",
			StartDate: time.Now(), Quarter: q,
		})
		time.Sleep(time.Millisecond)
	}

	w := testutil.DoRequest(router, "GET", "/price-quarters?supplier_id=sup-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	quarters := resp["quarters"].([]interface{})
	if len(quarters) != 2 {
		t.Errorf("Expected 2 distinct quarters, got %v", quarters)
	}
}

func TestIpdVerify(t *testing.T) {
	db, router := setupPriceTest(t)
	seedPriceFixture(t, db)

	w := testutil.DoRequest(router, "GET", "/ipd/verify?ipd_siis=SIIS-001", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["exists"] != true {
		t.Errorf("Expected exists=true for registered SIIS, got %v", resp["exists"])
	}

	// Unknown SIIS is a clean negative, not an error
	w2 := testutil.DoRequest(router, "GET", "/ipd/verify?ipd_siis=SIIS-UNKNOWN", nil)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := testutil.ParseResponse(w2)
	if resp2["exists"] != false {
		t.Errorf("Expected exists=false for unknown SIIS, got %v", resp2["exists"])
	}
	_ = db
}

func TestTotalCounts(t *testing.T) {
	db, router := setupPriceTest(t)
	seedPriceFixture(t, db)
	db.Create(&entity.PriceHeader{ID: "h-t1", SupplierID: "sup-1", StartDate: time.Now(), Quarter: "Q1"})

	w := testutil.DoRequest(router, "GET", "/total", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["suppliers"].(float64) != 1 {
		t.Errorf("Expected 1 supplier, got %v", resp["suppliers"])
	}
	if resp["ipd_records"].(float64) != 1 {
		t.Errorf("Expected 1 ipd record, got %v", resp["ipd_records"])
	}
	if resp["price_headers"].(float64) != 1 {
		t.Errorf("Expected 1 price header, got %v", resp["price_headers"])
	}
}
