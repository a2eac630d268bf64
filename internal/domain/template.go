package domain

// Template prefills the new-task form
type Template struct {
	ID          int64    `yaml:"id" json:"Id"`
	Name        string   `yaml:"name" json:"name"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Priority    Priority `yaml:"priority" json:"priority"`
	ProjectID   *int64   `yaml:"project_id" json:"projectId"`
	Category    string   `yaml:"category" json:"category"`
}

// TaskInput returns a task payload prefilled from the template.
func (t *Template) TaskInput() TaskInput {
	in := TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
	}
	if t.ProjectID != nil {
		id := *t.ProjectID
		in.ProjectID = &id
	}
	return in
}

// TemplatePatch carries a partial template update.
type TemplatePatch struct {
	Name        Nullable[string]   `json:"name"`
	Title       Nullable[string]   `json:"title"`
	Description Nullable[string]   `json:"description"`
	Priority    Nullable[Priority] `json:"priority"`
	ProjectID   Nullable[int64]    `json:"projectId"`
	Category    Nullable[string]   `json:"category"`
}
