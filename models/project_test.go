package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/rpupo63/project-aoi-backend/errs"
)

const polygon = `{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`

func TestDecodeProjectCreate(t *testing.T) {
	in, err := DecodeProjectCreate([]byte(`{
		"name": "Test Project",
		"description": "Test Description",
		"date_start": "2022-01-01T00:00:00",
		"date_end": "2022-12-31T23:59:59",
		"area_of_interest": ` + polygon + `,
		"unknown": 1
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Test Project", in.Name)
	require.NotNil(t, in.Description)
	assert.Equal(t, "Test Description", *in.Description)
	assert.Equal(t, "2022-01-01T00:00:00", in.DateStart.String())
	assert.Equal(t, "2022-12-31T23:59:59", in.DateEnd.String())
	assert.JSONEq(t, polygon, string(in.AreaOfInterest))

	p1, p2 := in.NewProject(), in.NewProject()
	assert.NotEqual(t, p1.ProjectID, p2.ProjectID)
	assert.Equal(t, in.Name, p1.Name)
}

func TestDecodeProjectCreate_WithoutDescription(t *testing.T) {
	in, err := DecodeProjectCreate([]byte(`{"name":"x","date_start":"2022-01-01","date_end":"2022-01-02","area_of_interest":{}}`))
	require.NoError(t, err)
	assert.Nil(t, in.Description)
}

func TestDecodeProjectCreate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "everything missing",
			body:   `{}`,
			fields: []string{"name", "date_start", "date_end", "area_of_interest"},
		},
		{
			name:   "name too long",
			body:   `{"name":"123456789012345678901234567890123","date_start":"2022-01-01","date_end":"2022-01-02","area_of_interest":{}}`,
			fields: []string{"name"},
		},
		{
			name:   "null name",
			body:   `{"name":null,"date_start":"2022-01-01","date_end":"2022-01-02","area_of_interest":{}}`,
			fields: []string{"name"},
		},
		{
			name:   "area of interest not an object",
			body:   `{"name":"x","date_start":"2022-01-01","date_end":"2022-01-02","area_of_interest":[1,2]}`,
			fields: []string{"area_of_interest"},
		},
		{
			name:   "wrong type",
			body:   `{"name":7,"date_start":"2022-01-01","date_end":"2022-01-02","area_of_interest":{}}`,
			fields: []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProjectCreate([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errs.IsValidationError(err))
			assert.Equal(t, 422, errs.StatusCode(err))

			apiErr, ok := err.(*errs.ApiErr)
			require.True(t, ok)
			var got []string
			for _, f := range apiErr.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestNameLengthCountsCharacters(t *testing.T) {
	// 32 two-byte characters
	name := ""
	for i := 0; i < NameMaxLength; i++ {
		name += "é"
	}
	assert.Empty(t, checkName(name))
	assert.NotEmpty(t, checkName(name+"é"))
}

func TestDecodeProjectUpdate(t *testing.T) {
	t.Run("only sent keys are present", func(t *testing.T) {
		patch, err := DecodeProjectUpdate([]byte(`{"name":"Updated Project"}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"name"}, patch.Fields())
		assert.False(t, patch.IsEmpty())
	})

	t.Run("empty body is an empty patch", func(t *testing.T) {
		patch, err := DecodeProjectUpdate([]byte(`{}`))
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
		assert.Empty(t, patch.Fields())
	})

	t.Run("nulls count as changes", func(t *testing.T) {
		patch, err := DecodeProjectUpdate([]byte(`{"description":null,"date_end":null,"area_of_interest":null}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"description", "date_end", "area_of_interest"}, patch.Fields())
		assert.True(t, patch.Description.Null)
	})

	t.Run("null name is rejected", func(t *testing.T) {
		_, err := DecodeProjectUpdate([]byte(`{"name":null}`))
		assert.True(t, errs.IsValidationError(err))
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		_, err := DecodeProjectUpdate([]byte(`{"date_start":"soon"}`))
		assert.True(t, errs.IsValidationError(err))
	})

	t.Run("area of interest must be an object", func(t *testing.T) {
		_, err := DecodeProjectUpdate([]byte(`{"area_of_interest":"POLYGON"}`))
		assert.True(t, errs.IsValidationError(err))
	})
}

func TestProjectUpdate_ApplyTo(t *testing.T) {
	description := "Test Description"
	start, err := ParseTimestamp("2022-01-01T00:00:00")
	require.NoError(t, err)
	project := Project{
		Name:           "Test Project",
		Description:    &description,
		DateStart:      start,
		AreaOfInterest: datatypes.JSON(polygon),
	}

	newStart, err := ParseTimestamp("2023-01-01T00:00:00")
	require.NoError(t, err)
	ProjectUpdate{
		Name:        Some("Updated Project"),
		Description: Null[string](),
		DateStart:   Some(newStart),
	}.ApplyTo(&project)

	assert.Equal(t, "Updated Project", project.Name)
	assert.Nil(t, project.Description)
	assert.Equal(t, "2023-01-01T00:00:00", project.DateStart.String())
	assert.JSONEq(t, polygon, string(project.AreaOfInterest))
}

func TestOptional(t *testing.T) {
	var o struct {
		A Optional[int] `json:"a"`
		B Optional[int] `json:"b"`
		C Optional[int] `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":null}`), &o))

	assert.True(t, o.A.Present())
	assert.Equal(t, 1, o.A.Value)
	assert.True(t, o.B.Set)
	assert.True(t, o.B.Null)
	assert.False(t, o.B.Present())
	assert.False(t, o.C.Set)

	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":null,"c":null}`, string(out))
}
