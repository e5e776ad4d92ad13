package preferences

import (
	"context"
	"fmt"

	common_models "go-dashboard/internal/common/models"
	"go-dashboard/internal/features/audit"
	"go-dashboard/pkg/utils"

	"go.uber.org/zap"
)

type PreferencesService interface {
	// GetPreferences returns the user's document, or (nil, nil) when none
	// exists yet.
	GetPreferences(ctx context.Context, userID string) (*PreferencesDocument, error)
	// SaveLayout creates the user's document around the layout, or replaces/
	// appends the layout by name in the existing document. The saved layout
	// always becomes active.
	SaveLayout(ctx context.Context, userID string, layout Layout) (*PreferencesDocument, error)
	// DeleteLayout removes the named layout, re-pointing the active layout
	// when needed. Fails with ErrNotFound when the user has no document.
	DeleteLayout(ctx context.Context, userID string, layoutName string) (*PreferencesDocument, error)
}

type PreferencesServiceImpl struct {
	PreferencesRepo PreferencesRepository
	AuditService    audit.AuditService
	Logger          *zap.Logger
}

func NewPreferencesService(preferencesRepo PreferencesRepository, auditService audit.AuditService, logger *zap.Logger) PreferencesService {
	return &PreferencesServiceImpl{
		PreferencesRepo: preferencesRepo,
		AuditService:    auditService,
		Logger:          logger,
	}
}

func (s *PreferencesServiceImpl) GetPreferences(ctx context.Context, userID string) (*PreferencesDocument, error) {
	userKey, err := utils.DeriveUserKey(userID)
	if err != nil {
		return nil, err
	}
	return s.PreferencesRepo.FindByUserKey(ctx, userKey)
}

func (s *PreferencesServiceImpl) SaveLayout(ctx context.Context, userID string, layout Layout) (*PreferencesDocument, error) {
	userKey, err := utils.DeriveUserKey(userID)
	if err != nil {
		return nil, err
	}

	if err := validateLayout(&layout); err != nil {
		return nil, err
	}

	// Backfill missing config keys before anything touches the store, so a
	// partially-specified widget from an older client is persisted complete.
	for i := range layout.Widgets {
		ApplyConfigDefaults(&layout.Widgets[i])
	}

	doc, err := s.PreferencesRepo.FindByUserKey(ctx, userKey)
	if err != nil {
		return nil, err
	}

	if doc == nil {
		doc = &PreferencesDocument{
			UserID:           userKey,
			Layouts:          []Layout{layout},
			ActiveLayoutName: layout.Name,
			GlobalSettings:   DefaultGlobalSettings(),
		}
		if err := s.PreferencesRepo.Create(ctx, doc); err != nil {
			return nil, err
		}

		_ = s.AuditService.LogChange(ctx, common_models.AuditActionBootstrap, userKey, layout.Name, map[string]common_models.Change{
			"layout": {New: layout},
		})

		s.Logger.Info("created dashboard preferences",
			zap.String("userKey", userKey.Hex()),
			zap.String("layout", layout.Name))
		return doc, nil
	}

	old := doc.FindLayout(layout.Name)
	var oldCopy interface{}
	if old != nil {
		oldCopy = *old
	}

	doc.UpsertLayout(layout)

	if err := s.PreferencesRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionSaveLayout, userKey, layout.Name, map[string]common_models.Change{
		"layout": {Old: oldCopy, New: layout},
	})

	return doc, nil
}

func (s *PreferencesServiceImpl) DeleteLayout(ctx context.Context, userID string, layoutName string) (*PreferencesDocument, error) {
	userKey, err := utils.DeriveUserKey(userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.PreferencesRepo.FindByUserKey(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	old := doc.FindLayout(layoutName)
	var oldCopy interface{}
	if old != nil {
		oldCopy = *old
	}

	doc.RemoveLayout(layoutName)

	if err := s.PreferencesRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDeleteLayout, userKey, layoutName, map[string]common_models.Change{
		"layout": {Old: oldCopy, New: "DELETED"},
	})

	return doc, nil
}

// validateLayout checks the closed variant sets before any write occurs.
// Widget types and, for data-table widgets, column types must belong to
// their respective sets; everything else inside config is accepted as-is.
func validateLayout(layout *Layout) error {
	var fieldErrs []FieldError

	if layout.Name == "" {
		fieldErrs = append(fieldErrs, FieldError{
			Field:   "layout.name",
			Message: "layout name is required",
		})
	}

	seen := make(map[string]bool, len(layout.Widgets))
	for i := range layout.Widgets {
		w := &layout.Widgets[i]
		prefix := fmt.Sprintf("layout.widgets[%d]", i)

		if w.ID == "" {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   prefix + ".id",
				Message: "widget id is required",
			})
		} else if seen[w.ID] {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   prefix + ".id",
				Message: fmt.Sprintf("duplicate widget id %q", w.ID),
			})
		}
		seen[w.ID] = true

		if !ValidWidgetTypes[w.Type] {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   prefix + ".type",
				Message: fmt.Sprintf("invalid widget type %q", w.Type),
			})
		}

		fieldErrs = append(fieldErrs, validateColumns(w, prefix)...)
	}

	if len(fieldErrs) > 0 {
		return &ValidationError{Errors: fieldErrs}
	}
	return nil
}

func validateColumns(w *Widget, prefix string) []FieldError {
	if w.Config == nil {
		return nil
	}
	columns, ok := w.Config["columns"].([]interface{})
	if !ok {
		return nil
	}

	var fieldErrs []FieldError
	for i, raw := range columns {
		col, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		typ, ok := col["type"].(string)
		if !ok {
			continue
		}
		if !ValidColumnTypes[ColumnType(typ)] {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   fmt.Sprintf("%s.config.columns[%d].type", prefix, i),
				Message: fmt.Sprintf("invalid column type %q", typ),
			})
		}
	}
	return fieldErrs
}
