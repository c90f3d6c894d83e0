package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/project-aoi-backend/errs"
	"github.com/rpupo63/project-aoi-backend/models"
)

// ProjectRepo runs single-project statements. Every write goes through GORM's default
// transaction, so each call is committed on its own when it returns without error.
type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects, in whatever order the database yields them
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	projects := []*models.Project{}
	if err := r.db.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	return projects, nil
}

// FindByName returns every project whose name is exactly name (case-sensitive)
func (r *ProjectRepo) FindByName(name string) ([]*models.Project, error) {
	projects := []*models.Project{}
	if err := r.db.Where("name = ?", name).Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("find projects by name: %w", err)
	}
	return projects, nil
}

// FindByID returns the project with the given id, or nil when there is none
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("project_id = ?", id).Take(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project %s: %w", id, err)
	}
	return &project, nil
}

// Add inserts a new project with a freshly generated id
func (r *ProjectRepo) Add(in models.ProjectCreate) (*models.Project, error) {
	project := in.NewProject()
	if err := r.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return project, nil
}

// Update writes the fields present in patch onto existing. An empty patch touches
// nothing and returns errs.ErrNoChanges.
func (r *ProjectRepo) Update(existing *models.Project, patch models.ProjectUpdate) (*models.Project, error) {
	columns := patch.Fields()
	if len(columns) == 0 {
		return nil, errs.ErrNoChanges
	}

	updated := *existing
	patch.ApplyTo(&updated)

	if err := r.db.Model(&updated).Select(columns).Updates(&updated).Error; err != nil {
		return nil, fmt.Errorf("update project %s: %w", existing.ProjectID, err)
	}

	*existing = updated
	return existing, nil
}

// Delete removes the project for good
func (r *ProjectRepo) Delete(existing *models.Project) error {
	if err := r.db.Delete(existing).Error; err != nil {
		return fmt.Errorf("delete project %s: %w", existing.ProjectID, err)
	}
	return nil
}
