package service

import (
	"context"
	"strings"

	"tasktracker/internal/domain"
	"tasktracker/internal/templates"
)

// TemplateService serves the quick-add templates. Changes are not persisted.
type TemplateService struct {
	catalog *templates.Catalog
}

func NewTemplateService(catalog *templates.Catalog) *TemplateService {
	return &TemplateService{catalog: catalog}
}

func (s *TemplateService) List(ctx context.Context) []domain.Template {
	return s.catalog.List()
}

func (s *TemplateService) Get(ctx context.Context, id int64) (*domain.Template, error) {
	t, ok := s.catalog.Get(id)
	if !ok {
		return nil, domain.NotFound("template", id)
	}
	return &t, nil
}

func (s *TemplateService) Create(ctx context.Context, in domain.Template) (*domain.Template, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Title = strings.TrimSpace(in.Title)
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if err := validateTemplate(&in); err != nil {
		return nil, err
	}
	t := s.catalog.Add(in)
	return &t, nil
}

func (s *TemplateService) Update(ctx context.Context, id int64, patch domain.TemplatePatch) (*domain.Template, error) {
	t, ok := s.catalog.Get(id)
	if !ok {
		return nil, domain.NotFound("template", id)
	}
	if patch.Name.Set {
		t.Name = strings.TrimSpace(patch.Name.Value)
	}
	if patch.Title.Set {
		t.Title = strings.TrimSpace(patch.Title.Value)
	}
	if patch.Description.Set {
		t.Description = patch.Description.Value
	}
	if patch.Priority.Set {
		t.Priority = patch.Priority.Value
	}
	if patch.ProjectID.Set {
		t.ProjectID = patch.ProjectID.Ptr()
	}
	if patch.Category.Set {
		t.Category = patch.Category.Value
	}
	if err := validateTemplate(&t); err != nil {
		return nil, err
	}
	if !s.catalog.Replace(t) {
		return nil, domain.NotFound("template", id)
	}
	return &t, nil
}

func (s *TemplateService) Delete(ctx context.Context, id int64) (*domain.Template, error) {
	t, ok := s.catalog.Remove(id)
	if !ok {
		return nil, domain.NotFound("template", id)
	}
	return &t, nil
}

// Apply returns a new-task payload prefilled from the template
func (s *TemplateService) Apply(ctx context.Context, id int64) (domain.TaskInput, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return domain.TaskInput{}, err
	}
	return t.TaskInput(), nil
}

func validateTemplate(t *domain.Template) error {
	verr := &domain.ValidationError{}
	if t.Name == "" {
		verr.Add("name", "name is required")
	}
	if t.Title == "" {
		verr.Add("title", "title is required")
	}
	if !t.Priority.Valid() {
		verr.Add("priority", "must be one of low, medium, high")
	}
	return verr.OrNil()
}
