package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prakasautama/procost/internal/entity"
	"github.com/prakasautama/procost/internal/repository"
	"github.com/prakasautama/procost/internal/service"
	"github.com/prakasautama/procost/internal/testutil"
	"gorm.io/gorm"
)

func setupBomCostTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	bomSvc := service.NewBomCostService(repos.BomCost, repos.Rate, repos.Project)
	rateSvc := service.NewRateService(repos.Rate)
	exportSvc := service.NewExportService(repos.BomCost, repos.Project)

	h := NewBomCostHandler(bomSvc, rateSvc, exportSvc)

	router.GET("/bp", h.ListRates)
	router.POST("/bp", h.CreateRate)
	router.DELETE("/bp/:id", h.DeleteRate)
	router.GET("/bom-cost", h.List)
	router.POST("/bom-cost", h.Create)
	router.GET("/bom-cost/export", h.ExportXLSX)
	router.PUT("/bom-cost/:id", h.Update)
	router.DELETE("/bom-cost/:id", h.Delete)
	router.GET("/bom-cost-summary", h.Summary)

	return db, router
}

func seedCostFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	testutil.SeedProject(t, db, "proj-cost", "Cost Project",
		&entity.Material{ID: "mat-cost", Name: "Bracket", Component: "bracket", BomQty: 3},
	)
	db.Create(&entity.BpRate{ID: "rate-usd", Currency: "USD", BpValue: 15000})
}

func TestBomCostCreateComputesSnapshot(t *testing.T) {
	db, router := setupBomCostTest(t)
	seedCostFixture(t, db)

	w := testutil.DoRequest(router, "POST", "/bom-cost", map[string]interface{}{
		"project_id":  "proj-cost",
		"component":   "bracket",
		"price":       2.00,
		"currency":    "USD",
		"landed_cost": "10%",
		"tpl":         "5%",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	// 2.00 * 1.10 * 0.05 * 15000 = 1650.00, bearing = 1650 * 3
	if resp["landed_idr_price"].(float64) != 1650.00 {
		t.Errorf("Expected landed IDR price 1650.00, got %v", resp["landed_idr_price"])
	}
	if resp["cost_bearing"].(float64) != 4950.00 {
		t.Errorf("Expected cost bearing 4950.00, got %v", resp["cost_bearing"])
	}
}

func TestBomCostCreateMissingRatePersistsNothing(t *testing.T) {
	db, router := setupBomCostTest(t)
	seedCostFixture(t, db)

	w := testutil.DoRequest(router, "POST", "/bom-cost", map[string]interface{}{
		"project_id":  "proj-cost",
		"component":   "bracket",
		"price":       2.00,
		"currency":    "EUR",
		"landed_cost": "10",
		"tpl":         "5",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for missing rate, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["error"] == nil {
		t.Error("Expected error message in response")
	}

	var count int64
	db.Model(&entity.BomCost{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no rows persisted after failure, found %d", count)
	}
}

func TestBomCostCreateUnknownComponent(t *testing.T) {
	db, router := setupBomCostTest(t)
	seedCostFixture(t, db)

	w := testutil.DoRequest(router, "POST", "/bom-cost", map[string]interface{}{
		"project_id": "proj-cost",
		"component":  "no-such-part",
		"price":      1.00,
		"currency":   "USD",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown component, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBomCostUpdateRecomputes(t *testing.T) {
	db, router := setupBomCostTest(t)
	seedCostFixture(t, db)

	w := testutil.DoRequest(router, "POST", "/bom-cost", map[string]interface{}{
		"project_id":  "proj-cost",
		"component":   "bracket",
		"price":       2.00,
		"currency":    "USD",
		"landed_cost": "10",
		"tpl":         "5",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["id"].(string)

	// Doubling the unit price doubles the derived snapshot
	w2 := testutil.DoRequest(router, "PUT", "/bom-cost/"+id, map[string]interface{}{
		"project_id":  "proj-cost",
		"component":   "bracket",
		"price":       4.00,
		"currency":    "USD",
		"landed_cost": "10",
		"tpl":         "5",
	})
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	resp := testutil.ParseResponse(w2)
	if resp["landed_idr_price"].(float64) != 3300.00 {
		t.Errorf("Expected recomputed landed price 3300.00, got %v", resp["landed_idr_price"])
	}
}

func TestBomCostSummaryTotals(t *testing.T) {
	db, router := setupBomCostTest(t)
	seedCostFixture(t, db)
	db.Create(&entity.Material{ID: "mat-cost2", ProjectID: "proj-cost", Name: "Bolt",
		Component: "bolt", BomQty: 10, Status: make(entity.StatusChecklist, entity.MilestoneCount)})

	for _, body := range []map[string]interface{}{
		{"project_id": "proj-cost", "component": "bracket", "price": 2.00,
			"currency": "USD", "landed_cost": "10", "tpl": "5", "tooling_cost": 500.0},
		{"project_id": "proj-cost", "component": "bolt", "price": 0.50,
			"currency": "USD", "landed_cost": "0", "tpl": "5", "tooling_cost": 100.0},
	} {
		w := testutil.DoRequest(router, "POST", "/bom-cost", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("Seed create failed: %d: %s", w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(router, "GET", "/bom-cost-summary?project_id=proj-cost", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	// bracket: 4950.00, bolt: 0.50*1.00*0.05*15000=375.00 * 10 = 3750.00
	if resp["total_cost_bearing"].(float64) != 8700.00 {
		t.Errorf("Expected total cost bearing 8700.00, got %v", resp["total_cost_bearing"])
	}
	if resp["total_tooling_cost"].(float64) != 600.00 {
		t.Errorf("Expected total tooling cost 600.00, got %v", resp["total_tooling_cost"])
	}
}

func TestBpRateInsertOnlyModel(t *testing.T) {
	_, router := setupBomCostTest(t)

	w := testutil.DoRequest(router, "POST", "/bp", map[string]interface{}{
		"currency": "USD",
		"bp_value": 15500.0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["id"].(string)

	w2 := testutil.DoRequest(router, "GET", "/bp", nil)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	rates := testutil.ParseList(w2)
	if len(rates) != 1 {
		t.Fatalf("Expected 1 rate, got %d", len(rates))
	}

	w3 := testutil.DoRequest(router, "DELETE", "/bp/"+id, nil)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
}

func TestBomCostExportRequiresProject(t *testing.T) {
	_, router := setupBomCostTest(t)
	w := testutil.DoRequest(router, "GET", "/bom-cost/export", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without project_id, got %d", w.Code)
	}
}
