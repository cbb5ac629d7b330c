package persistence

import (
	"context"
	"errors"
	"fmt"

	"insurance-server/internal/infra/sql"
	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/persistence/internal"
	"insurance-server/internal/insurance/usecases"
)

var ErrDanglingParent = errors.New("field references an unknown parent")

func NewTemplateRepository(orm sql.ORM) (*SimpleTemplateRepository, error) {
	err := orm.AutoMigrate(&internal.FormTemplate{}, &internal.FormSection{}, &internal.FormField{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleTemplateRepository{
		orm: orm,
	}, nil
}

var _ usecases.TemplateRepository = (*SimpleTemplateRepository)(nil)

type SimpleTemplateRepository struct {
	orm sql.ORM
}

func (r *SimpleTemplateRepository) FindAll(ctx context.Context) ([]domain.TemplateRecord, error) {
	var entities []internal.FormTemplate
	err := r.orm.
		WithContext(ctx).
		Preload("Sections").
		Preload("Fields").
		Order("id asc").
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	records := make([]domain.TemplateRecord, len(entities))
	for i, entity := range entities {
		records[i] = entity.ToDomain()
	}
	return records, nil
}

func (r *SimpleTemplateRepository) FindByType(ctx context.Context, formType string) (domain.TemplateRecord, error) {
	return r.first(ctx, "type = ?", formType)
}

func (r *SimpleTemplateRepository) Get(ctx context.Context, id int64) (domain.TemplateRecord, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *SimpleTemplateRepository) first(ctx context.Context, query string, args ...any) (domain.TemplateRecord, error) {
	var entity internal.FormTemplate
	err := r.orm.
		WithContext(ctx).
		Preload("Sections").
		Preload("Fields").
		Where(query, args...).
		First(&entity).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.TemplateRecord{}, usecases.ErrTemplateNotFound
	}

	if err != nil {
		return domain.TemplateRecord{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleTemplateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.orm.
		WithContext(ctx).
		Model(&internal.FormTemplate{}).
		Count(&count).
		Error()
	if err != nil {
		return 0, fmt.Errorf("counting templates: %w", err)
	}
	return count, nil
}

// Create stores a template with its sections and fields in one transaction.
// Section and field ids of the input only link records together; the stored
// rows get fresh ids, which the returned record carries.
func (r *SimpleTemplateRepository) Create(ctx context.Context, record domain.TemplateRecord) (domain.TemplateRecord, error) {
	var created internal.FormTemplate

	err := r.orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		var existing int64
		err := tx.Model(&internal.FormTemplate{}).Where("type = ?", record.Type).Count(&existing).Error()
		if err != nil {
			return fmt.Errorf("checking template type: %w", err)
		}
		if existing > 0 {
			return usecases.ErrTemplateDuplicated
		}

		created = internal.FormTemplate{
			Name:        record.Name,
			Type:        record.Type,
			Description: record.Description,
		}
		if err := tx.Create(&created).Error(); err != nil {
			return fmt.Errorf("inserting template: %w", err)
		}

		sectionIDs := make(map[int64]int64, len(record.Sections))
		for _, s := range record.Sections {
			section := internal.FormSection{TemplateID: created.ID, Name: s.Name, Order: s.Order}
			if err := tx.Create(&section).Error(); err != nil {
				return fmt.Errorf("inserting section %q: %w", s.Name, err)
			}
			sectionIDs[s.ID] = section.ID
			created.Sections = append(created.Sections, section)
		}

		fields, err := insertFields(tx, created.ID, record.Fields, sectionIDs)
		if err != nil {
			return err
		}
		created.Fields = fields
		return nil
	})
	if err != nil {
		return domain.TemplateRecord{}, err
	}

	return created.ToDomain(), nil
}

// insertFields writes parents before their children so every parent id is
// known when a child row is created.
func insertFields(tx sql.ORM, templateID int64, records []domain.FieldRecord, sectionIDs map[int64]int64) ([]internal.FormField, error) {
	fieldIDs := make(map[int64]int64, len(records))
	pending := records
	stored := make([]internal.FormField, 0, len(records))

	for len(pending) > 0 {
		var next []domain.FieldRecord
		for _, f := range pending {
			var parentID *int64
			if f.ParentID != nil {
				id, ok := fieldIDs[*f.ParentID]
				if !ok {
					next = append(next, f)
					continue
				}
				parentID = &id
			}

			field := internal.FromFieldRecord(templateID, f)
			field.ParentID = parentID
			if f.SectionID != nil {
				if id, ok := sectionIDs[*f.SectionID]; ok {
					field.SectionID = &id
				}
			}
			if err := tx.Create(&field).Error(); err != nil {
				return nil, fmt.Errorf("inserting field %q: %w", f.Name, err)
			}
			fieldIDs[f.ID] = field.ID
			stored = append(stored, field)
		}

		if len(next) == len(pending) {
			return nil, fmt.Errorf("%w: %s", ErrDanglingParent, next[0].Name)
		}
		pending = next
	}

	return stored, nil
}
