package models

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/rpupo63/project-aoi-backend/errs"
)

const NameMaxLength = 32

// Project is the only persisted resource. Its JSON form is also the public shape.
type Project struct {
	ProjectID      uuid.UUID      `json:"project_id" db:"project_id" gorm:"column:project_id;type:uuid;primaryKey;not null"`
	Name           string         `json:"name" db:"name" gorm:"column:name;type:varchar(32);not null;index"`
	Description    *string        `json:"description" db:"description" gorm:"column:description;type:text"`
	DateStart      Timestamp      `json:"date_start" db:"date_start" gorm:"column:date_start;type:timestamp"`
	DateEnd        Timestamp      `json:"date_end" db:"date_end" gorm:"column:date_end;type:timestamp"`
	AreaOfInterest datatypes.JSON `json:"area_of_interest" db:"area_of_interest" gorm:"column:area_of_interest;type:jsonb"`
}

func (Project) TableName() string { return "projects" }

// Columns lists the mapped columns in declaration order.
func (Project) Columns() []string {
	return []string{"project_id", "name", "description", "date_start", "date_end", "area_of_interest"}
}

// ProjectsPublic is the collection shape returned by the list endpoints.
type ProjectsPublic struct {
	Data []*Project `json:"data"`
}

// ProjectCreate carries everything a new project needs except its id.
type ProjectCreate struct {
	Name           string
	Description    *string
	DateStart      Timestamp
	DateEnd        Timestamp
	AreaOfInterest datatypes.JSON
}

// NewProject builds the row for a create, assigning a fresh id.
func (c ProjectCreate) NewProject() *Project {
	return &Project{
		ProjectID:      uuid.New(),
		Name:           c.Name,
		Description:    c.Description,
		DateStart:      c.DateStart,
		DateEnd:        c.DateEnd,
		AreaOfInterest: c.AreaOfInterest,
	}
}

type projectCreateBody struct {
	Name           Optional[string]         `json:"name"`
	Description    Optional[string]         `json:"description"`
	DateStart      Optional[Timestamp]      `json:"date_start"`
	DateEnd        Optional[Timestamp]      `json:"date_end"`
	AreaOfInterest Optional[datatypes.JSON] `json:"area_of_interest"`
}

// DecodeProjectCreate parses and validates a create body. Any failure is an *errs.ApiErr
// listing every offending field.
func DecodeProjectCreate(body []byte) (ProjectCreate, error) {
	var in projectCreateBody
	if err := json.Unmarshal(body, &in); err != nil {
		return ProjectCreate{}, errs.NewValidationErrorFromDecode(err)
	}

	var fields []errs.FieldError
	if !in.Name.Present() {
		fields = append(fields, errs.FieldError{Field: "name", Message: "field required"})
	} else if msg := checkName(in.Name.Value); msg != "" {
		fields = append(fields, errs.FieldError{Field: "name", Message: msg})
	}
	if !in.DateStart.Present() {
		fields = append(fields, errs.FieldError{Field: "date_start", Message: "field required"})
	}
	if !in.DateEnd.Present() {
		fields = append(fields, errs.FieldError{Field: "date_end", Message: "field required"})
	}
	if !in.AreaOfInterest.Present() {
		fields = append(fields, errs.FieldError{Field: "area_of_interest", Message: "field required"})
	} else if !isJSONObject(in.AreaOfInterest.Value) {
		fields = append(fields, errs.FieldError{Field: "area_of_interest", Message: "value is not a valid dict"})
	}
	if len(fields) > 0 {
		return ProjectCreate{}, errs.NewValidationError(fields...)
	}

	out := ProjectCreate{
		Name:           in.Name.Value,
		DateStart:      in.DateStart.Value,
		DateEnd:        in.DateEnd.Value,
		AreaOfInterest: in.AreaOfInterest.Value,
	}
	if in.Description.Present() {
		description := in.Description.Value
		out.Description = &description
	}
	return out, nil
}

// ProjectUpdate is a partial update. A field that is not Set is left untouched; a field
// that is Set to null clears the column.
type ProjectUpdate struct {
	Name           Optional[string]         `json:"name"`
	Description    Optional[string]         `json:"description"`
	DateStart      Optional[Timestamp]      `json:"date_start"`
	DateEnd        Optional[Timestamp]      `json:"date_end"`
	AreaOfInterest Optional[datatypes.JSON] `json:"area_of_interest"`
}

// DecodeProjectUpdate parses and validates a patch body.
func DecodeProjectUpdate(body []byte) (ProjectUpdate, error) {
	var patch ProjectUpdate
	if err := json.Unmarshal(body, &patch); err != nil {
		return ProjectUpdate{}, errs.NewValidationErrorFromDecode(err)
	}

	var fields []errs.FieldError
	if patch.Name.Set {
		if patch.Name.Null {
			fields = append(fields, errs.FieldError{Field: "name", Message: "none is not an allowed value"})
		} else if msg := checkName(patch.Name.Value); msg != "" {
			fields = append(fields, errs.FieldError{Field: "name", Message: msg})
		}
	}
	if patch.AreaOfInterest.Present() && !isJSONObject(patch.AreaOfInterest.Value) {
		fields = append(fields, errs.FieldError{Field: "area_of_interest", Message: "value is not a valid dict"})
	}
	if len(fields) > 0 {
		return ProjectUpdate{}, errs.NewValidationError(fields...)
	}
	return patch, nil
}

// Fields returns the columns the patch touches.
func (u ProjectUpdate) Fields() []string {
	var cols []string
	if u.Name.Set {
		cols = append(cols, "name")
	}
	if u.Description.Set {
		cols = append(cols, "description")
	}
	if u.DateStart.Set {
		cols = append(cols, "date_start")
	}
	if u.DateEnd.Set {
		cols = append(cols, "date_end")
	}
	if u.AreaOfInterest.Set {
		cols = append(cols, "area_of_interest")
	}
	return cols
}

// IsEmpty reports whether the patch carries no fields at all.
func (u ProjectUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// ApplyTo copies every set field onto p, nulls included.
func (u ProjectUpdate) ApplyTo(p *Project) {
	if u.Name.Set {
		p.Name = u.Name.Value
	}
	if u.Description.Set {
		if u.Description.Null {
			p.Description = nil
		} else {
			description := u.Description.Value
			p.Description = &description
		}
	}
	if u.DateStart.Set {
		p.DateStart = u.DateStart.Value
	}
	if u.DateEnd.Set {
		p.DateEnd = u.DateEnd.Value
	}
	if u.AreaOfInterest.Set {
		if u.AreaOfInterest.Null {
			p.AreaOfInterest = nil
		} else {
			p.AreaOfInterest = u.AreaOfInterest.Value
		}
	}
}

func checkName(name string) string {
	if utf8.RuneCountInString(name) > NameMaxLength {
		return "ensure this value has at most 32 characters"
	}
	return ""
}

func isJSONObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
