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

func setupProjectTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	projectSvc := service.NewProjectService(repos.Project, db)
	uploadSvc := service.NewUploadService(repos.Upload, nil, "", false)

	projectHandler := NewProjectHandler(projectSvc)
	uploadHandler := NewUploadHandler(uploadSvc)

	router.GET("/projects", projectHandler.List)
	router.POST("/projects", projectHandler.Create)
	router.GET("/projects/:id", projectHandler.Get)
	router.PATCH("/projects/:id", projectHandler.Update)
	router.DELETE("/projects/:id", projectHandler.Delete)
	router.GET("/materials", projectHandler.ListComponents)
	router.GET("/uploads", uploadHandler.List)

	return db, router
}

func TestProjectCreateStartsAtZeroPercent(t *testing.T) {
	_, router := setupProjectTest(t)

	w := testutil.DoRequest(router, "POST", "/projects", map[string]interface{}{
		"name":     "Frame Assembly",
		"customer": "PT Motor",
		"materials": []map[string]interface{}{
			{"name": "Bracket", "component": "bracket", "bom_qty": 2, "UoM": "pcs"},
			{"name": "Bolt M6", "component": "bolt-m6", "bom_qty": 8, "UoM": "pcs"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["percent"].(float64) != 0 {
		t.Errorf("Expected project percent 0, got %v", resp["percent"])
	}
	materials := resp["materials"].([]interface{})
	if len(materials) != 2 {
		t.Fatalf("Expected 2 materials, got %d", len(materials))
	}
	first := materials[0].(map[string]interface{})
	if first["percent"].(float64) != 0 {
		t.Errorf("Expected material percent 0, got %v", first["percent"])
	}
}

func TestMilestoneToggleRecomputesPercents(t *testing.T) {
	db, router := setupProjectTest(t)

	testutil.SeedProject(t, db, "proj-001", "Toggle Project",
		&entity.Material{ID: "mat-001", Name: "Bracket"},
		&entity.Material{ID: "mat-002", Name: "Bolt"},
	)

	// Check Quotation (weight 20) on the first material
	w := testutil.DoRequest(router, "PATCH", "/projects/proj-001", map[string]interface{}{
		"material_id":  "mat-001",
		"status_index": 1,
		"value":        true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["percent"].(float64) != 20 {
		t.Errorf("Expected material percent 20, got %v", resp["percent"])
	}
	// Project mean: round((20 + 0) / 2) = 10
	if resp["project_percent"].(float64) != 10 {
		t.Errorf("Expected project percent 10, got %v", resp["project_percent"])
	}

	// Uncheck brings it back to zero
	w2 := testutil.DoRequest(router, "PATCH", "/projects/proj-001", map[string]interface{}{
		"material_id":  "mat-001",
		"status_index": 1,
		"value":        false,
	})
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := testutil.ParseResponse(w2)
	if resp2["percent"].(float64) != 0 || resp2["project_percent"].(float64) != 0 {
		t.Errorf("Expected percents back to 0, got %v / %v", resp2["percent"], resp2["project_percent"])
	}
}

func TestMilestoneToggleSlotOutOfRange(t *testing.T) {
	db, router := setupProjectTest(t)
	testutil.SeedProject(t, db, "proj-002", "Bounds Project",
		&entity.Material{ID: "mat-010", Name: "Bracket"},
	)

	w := testutil.DoRequest(router, "PATCH", "/projects/proj-002", map[string]interface{}{
		"material_id":  "mat-010",
		"status_index": 9,
		"value":        true,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for out-of-range slot, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["error"] == nil {
		t.Error("Expected error message in response")
	}
}

func TestProjectUpdateReplacesMaterialSet(t *testing.T) {
	db, router := setupProjectTest(t)

	checked := make(entity.StatusChecklist, entity.MilestoneCount)
	checked[0] = true
	testutil.SeedProject(t, db, "proj-003", "Replace Project",
		&entity.Material{ID: "mat-keep", Name: "Bracket", Status: checked, Percent: 10},
		&entity.Material{ID: "mat-drop", Name: "Old Part"},
	)
	db.Create(&entity.Upload{ID: "up-1", MaterialID: "mat-drop", Filename: "spec.pdf", Path: "uploads/spec.pdf"})

	w := testutil.DoRequest(router, "PATCH", "/projects/proj-003", map[string]interface{}{
		"materials": []map[string]interface{}{
			{"id": "mat-keep", "name": "Bracket v2", "bom_qty": 4},
			{"name": "New Part"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var materials []entity.Material
	db.Where("project_id = ?", "proj-003").Order("order_index ASC").Find(&materials)
	if len(materials) != 2 {
		t.Fatalf("Expected 2 materials after replacement, got %d", len(materials))
	}
	if materials[0].ID != "mat-keep" || materials[0].Name != "Bracket v2" {
		t.Errorf("Expected mat-keep updated in place, got %+v", materials[0])
	}
	// In-place update keeps the checklist and percent
	if materials[0].Percent != 10 || !materials[0].Status.Normalized()[0] {
		t.Errorf("Expected preserved checklist on mat-keep, got percent=%d status=%v",
			materials[0].Percent, materials[0].Status)
	}
	if materials[1].Percent != 0 {
		t.Errorf("Expected fresh material at 0 percent, got %d", materials[1].Percent)
	}

	// The dropped material's attachments went with it
	var uploadCount int64
	db.Model(&entity.Upload{}).Where("material_id = ?", "mat-drop").Count(&uploadCount)
	if uploadCount != 0 {
		t.Errorf("Expected uploads of dropped material deleted, found %d", uploadCount)
	}
}

func TestProjectDeleteCascades(t *testing.T) {
	db, router := setupProjectTest(t)

	testutil.SeedProject(t, db, "proj-004", "Cascade Project",
		&entity.Material{ID: "mat-c1", Name: "Bracket"},
	)
	db.Create(&entity.Upload{ID: "up-c1", MaterialID: "mat-c1", Filename: "dwg.pdf", Path: "uploads/dwg.pdf"})

	w := testutil.DoRequest(router, "DELETE", "/projects/proj-004", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var projCount, matCount, upCount int64
	db.Model(&entity.Project{}).Where("id = ?", "proj-004").Count(&projCount)
	db.Model(&entity.Material{}).Where("project_id = ?", "proj-004").Count(&matCount)
	db.Model(&entity.Upload{}).Where("material_id = ?", "mat-c1").Count(&upCount)
	if projCount != 0 || matCount != 0 || upCount != 0 {
		t.Errorf("Expected full cascade, remaining: project=%d materials=%d uploads=%d",
			projCount, matCount, upCount)
	}
}

func TestProjectDeleteNotFound(t *testing.T) {
	_, router := setupProjectTest(t)
	w := testutil.DoRequest(router, "DELETE", "/projects/no-such-id", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDistinctComponents(t *testing.T) {
	db, router := setupProjectTest(t)
	testutil.SeedProject(t, db, "proj-005", "Components Project",
		&entity.Material{ID: "mat-d1", Name: "Bracket A", Component: "bracket"},
		&entity.Material{ID: "mat-d2", Name: "Bracket B", Component: "bracket"},
		&entity.Material{ID: "mat-d3", Name: "Bolt", Component: "bolt-m6"},
	)

	w := testutil.DoRequest(router, "GET", "/materials?project_id=proj-005", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	components := resp["components"].([]interface{})
	if len(components) != 2 {
		t.Errorf("Expected 2 distinct components, got %d: %v", len(components), components)
	}
}
