package preferences

import (
	"context"
	"errors"
	"testing"

	common_models "go-dashboard/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockPreferencesRepo struct {
	Doc         *PreferencesDocument
	CreatedDoc  *PreferencesDocument
	SavedDoc    *PreferencesDocument
	FindErr     error
	CreateCalls int
	SaveCalls   int
}

func (m *MockPreferencesRepo) FindByUserKey(ctx context.Context, userKey primitive.ObjectID) (*PreferencesDocument, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return m.Doc, nil
}

func (m *MockPreferencesRepo) Create(ctx context.Context, doc *PreferencesDocument) error {
	m.CreateCalls++
	m.CreatedDoc = doc
	return nil
}

func (m *MockPreferencesRepo) Save(ctx context.Context, doc *PreferencesDocument) error {
	m.SaveCalls++
	m.SavedDoc = doc
	return nil
}

type MockAuditService struct {
	Actions []common_models.AuditAction
}

func (m *MockAuditService) LogChange(ctx context.Context, action common_models.AuditAction, userKey primitive.ObjectID, layoutName string, changes map[string]common_models.Change) error {
	m.Actions = append(m.Actions, action)
	return nil
}

func (m *MockAuditService) ListByUser(ctx context.Context, userKey primitive.ObjectID, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func newTestService(repo *MockPreferencesRepo) (*PreferencesServiceImpl, *MockAuditService) {
	auditSvc := &MockAuditService{}
	return &PreferencesServiceImpl{
		PreferencesRepo: repo,
		AuditService:    auditSvc,
		Logger:          zap.NewNop(),
	}, auditSvc
}

func testLayout(name string) Layout {
	return Layout{
		Name:          name,
		GridCols:      12,
		GridRowHeight: 150,
		Widgets: []Widget{
			{ID: "w1", Type: WidgetTypeCard, X: 0, Y: 0, W: 4, H: 2},
		},
	}
}

func TestSaveLayoutBootstrapsNewUser(t *testing.T) {
	repo := &MockPreferencesRepo{}
	service, auditSvc := newTestService(repo)

	doc, err := service.SaveLayout(context.Background(), "new-user", testLayout("Work"))
	if err != nil {
		t.Fatalf("SaveLayout() error = %v", err)
	}

	if repo.CreateCalls != 1 {
		t.Errorf("expected 1 Create call, got %d", repo.CreateCalls)
	}
	if repo.SaveCalls != 0 {
		t.Errorf("expected no Save call on bootstrap, got %d", repo.SaveCalls)
	}
	if len(doc.Layouts) != 1 || doc.Layouts[0].Name != "Work" {
		t.Errorf("unexpected layouts: %+v", doc.Layouts)
	}
	if doc.ActiveLayoutName != "Work" {
		t.Errorf("ActiveLayoutName = %q, want %q", doc.ActiveLayoutName, "Work")
	}
	if doc.GlobalSettings != DefaultGlobalSettings() {
		t.Errorf("GlobalSettings = %+v, want defaults", doc.GlobalSettings)
	}
	if len(auditSvc.Actions) != 1 || auditSvc.Actions[0] != common_models.AuditActionBootstrap {
		t.Errorf("audit actions = %v, want [BOOTSTRAP]", auditSvc.Actions)
	}
}

func TestSaveLayoutReplacesByName(t *testing.T) {
	existing := testLayout("Work")
	repo := &MockPreferencesRepo{
		Doc: &PreferencesDocument{
			ID:               primitive.NewObjectID(),
			Layouts:          []Layout{existing, testLayout("Home")},
			ActiveLayoutName: "Home",
			GlobalSettings:   DefaultGlobalSettings(),
		},
	}
	service, auditSvc := newTestService(repo)

	updated := testLayout("Work")
	updated.Widgets[0].W = 8

	doc, err := service.SaveLayout(context.Background(), "some-user", updated)
	if err != nil {
		t.Fatalf("SaveLayout() error = %v", err)
	}

	if len(doc.Layouts) != 2 {
		t.Fatalf("expected 2 layouts after replace, got %d", len(doc.Layouts))
	}
	if got := doc.FindLayout("Work").Widgets[0].W; got != 8 {
		t.Errorf("replaced layout widget width = %d, want 8", got)
	}
	if doc.ActiveLayoutName != "Work" {
		t.Errorf("saved layout should become active, got %q", doc.ActiveLayoutName)
	}
	if repo.SaveCalls != 1 {
		t.Errorf("expected 1 Save call, got %d", repo.SaveCalls)
	}
	if len(auditSvc.Actions) != 1 || auditSvc.Actions[0] != common_models.AuditActionSaveLayout {
		t.Errorf("audit actions = %v, want [SAVE_LAYOUT]", auditSvc.Actions)
	}
}

func TestSaveLayoutAppendsNewName(t *testing.T) {
	repo := &MockPreferencesRepo{
		Doc: &PreferencesDocument{
			ID:               primitive.NewObjectID(),
			Layouts:          []Layout{testLayout("Work")},
			ActiveLayoutName: "Work",
		},
	}
	service, _ := newTestService(repo)

	doc, err := service.SaveLayout(context.Background(), "some-user", testLayout("Home"))
	if err != nil {
		t.Fatalf("SaveLayout() error = %v", err)
	}
	if len(doc.Layouts) != 2 {
		t.Fatalf("expected 2 layouts, got %d", len(doc.Layouts))
	}
	if doc.ActiveLayoutName != "Home" {
		t.Errorf("ActiveLayoutName = %q, want %q", doc.ActiveLayoutName, "Home")
	}
}

func TestSaveLayoutValidationAbortsBeforeWrite(t *testing.T) {
	tests := []struct {
		name      string
		layout    Layout
		wantField string
	}{
		{
			name:      "missing layout name",
			layout:    Layout{Widgets: []Widget{{ID: "w1", Type: WidgetTypeCard}}},
			wantField: "layout.name",
		},
		{
			name: "missing widget id",
			layout: Layout{Name: "L", Widgets: []Widget{
				{Type: WidgetTypeCard},
			}},
			wantField: "layout.widgets[0].id",
		},
		{
			name: "duplicate widget id",
			layout: Layout{Name: "L", Widgets: []Widget{
				{ID: "w1", Type: WidgetTypeCard},
				{ID: "w1", Type: WidgetTypeMetric},
			}},
			wantField: "layout.widgets[1].id",
		},
		{
			name: "unknown widget type",
			layout: Layout{Name: "L", Widgets: []Widget{
				{ID: "w1", Type: "gauge"},
			}},
			wantField: "layout.widgets[0].type",
		},
		{
			name: "unknown column type",
			layout: Layout{Name: "L", Widgets: []Widget{
				{ID: "w1", Type: WidgetTypeDataTable, Config: map[string]interface{}{
					"columns": []interface{}{
						map[string]interface{}{"id": "c1", "type": "rainbow"},
					},
				}},
			}},
			wantField: "layout.widgets[0].config.columns[0].type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockPreferencesRepo{}
			service, auditSvc := newTestService(repo)

			_, err := service.SaveLayout(context.Background(), "some-user", tt.layout)
			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}

			found := false
			for _, fe := range ve.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected field %q in errors, got %+v", tt.wantField, ve.Errors)
			}
			if repo.CreateCalls != 0 || repo.SaveCalls != 0 {
				t.Errorf("store must not be touched on validation failure")
			}
			if len(auditSvc.Actions) != 0 {
				t.Errorf("audit must not be written on validation failure")
			}
		})
	}
}

func TestSaveLayoutBackfillsConfigDefaults(t *testing.T) {
	repo := &MockPreferencesRepo{}
	service, _ := newTestService(repo)

	layout := Layout{
		Name: "L",
		Widgets: []Widget{
			{ID: "c1", Type: WidgetTypeChart, Config: map[string]interface{}{"chartType": "pie"}},
		},
	}

	doc, err := service.SaveLayout(context.Background(), "some-user", layout)
	if err != nil {
		t.Fatalf("SaveLayout() error = %v", err)
	}

	cfg := doc.Layouts[0].Widgets[0].Config
	if cfg["chartType"] != "pie" {
		t.Errorf("existing key overwritten: chartType = %v", cfg["chartType"])
	}
	for _, key := range []string{"data", "xAxis", "yAxis", "colors"} {
		if _, ok := cfg[key]; !ok {
			t.Errorf("missing backfilled key %q", key)
		}
	}
}

func TestDeleteLayoutRepointsActive(t *testing.T) {
	repo := &MockPreferencesRepo{
		Doc: &PreferencesDocument{
			ID:               primitive.NewObjectID(),
			Layouts:          []Layout{testLayout("Work"), testLayout("Home")},
			ActiveLayoutName: "Work",
		},
	}
	service, auditSvc := newTestService(repo)

	doc, err := service.DeleteLayout(context.Background(), "some-user", "Work")
	if err != nil {
		t.Fatalf("DeleteLayout() error = %v", err)
	}
	if len(doc.Layouts) != 1 || doc.Layouts[0].Name != "Home" {
		t.Errorf("unexpected layouts after delete: %+v", doc.Layouts)
	}
	if doc.ActiveLayoutName != "Home" {
		t.Errorf("ActiveLayoutName = %q, want %q", doc.ActiveLayoutName, "Home")
	}
	if len(auditSvc.Actions) != 1 || auditSvc.Actions[0] != common_models.AuditActionDeleteLayout {
		t.Errorf("audit actions = %v, want [DELETE_LAYOUT]", auditSvc.Actions)
	}
}

func TestDeleteLastLayoutFallsBackToSentinel(t *testing.T) {
	repo := &MockPreferencesRepo{
		Doc: &PreferencesDocument{
			ID:               primitive.NewObjectID(),
			Layouts:          []Layout{testLayout("Only")},
			ActiveLayoutName: "Only",
		},
	}
	service, _ := newTestService(repo)

	doc, err := service.DeleteLayout(context.Background(), "some-user", "Only")
	if err != nil {
		t.Fatalf("DeleteLayout() error = %v", err)
	}
	if len(doc.Layouts) != 0 {
		t.Errorf("expected no layouts, got %d", len(doc.Layouts))
	}
	if doc.ActiveLayoutName != DefaultLayoutName {
		t.Errorf("ActiveLayoutName = %q, want sentinel %q", doc.ActiveLayoutName, DefaultLayoutName)
	}
}

func TestDeleteLayoutWithoutDocument(t *testing.T) {
	repo := &MockPreferencesRepo{}
	service, _ := newTestService(repo)

	_, err := service.DeleteLayout(context.Background(), "ghost-user", "Work")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if repo.SaveCalls != 0 {
		t.Errorf("store must not be touched")
	}
}

func TestGetPreferencesMissingDocument(t *testing.T) {
	repo := &MockPreferencesRepo{}
	service, _ := newTestService(repo)

	doc, err := service.GetPreferences(context.Background(), "new-user")
	if err != nil {
		t.Fatalf("GetPreferences() error = %v", err)
	}
	if doc != nil {
		t.Errorf("expected nil document for new user, got %+v", doc)
	}
}
