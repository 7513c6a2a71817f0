package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

func TestSortDoc(t *testing.T) {
	require.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, sortDoc(nil))
	require.Equal(t,
		bson.D{{Key: "status", Value: 1}, {Key: "startDate", Value: -1}},
		sortDoc([]ports.SortField{{Field: "status"}, {Field: "startDate", Desc: true}}),
	)
}

func TestProjection(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   bson.M
	}{
		{"none", nil, nil},
		{"include", []string{"title", "status"}, bson.M{"title": 1, "status": 1}},
		{"exclude", []string{"-notes"}, bson.M{"notes": 0}},
		{"mixed keeps inclusions", []string{"title", "-notes"}, bson.M{"title": 1}},
		{"bare dash", []string{"-"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, projection(tt.fields))
		})
	}
}

func TestSetUpdate_OnlyProvidedFields(t *testing.T) {
	title := "New"
	featured := false
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	update, err := setUpdate(&domain.ProjectPatch{Title: &title, Featured: &featured}, now)
	require.NoError(t, err)

	set := update["$set"].(bson.M)
	require.Equal(t, "New", set["title"])
	require.Equal(t, false, set["featured"])
	require.Equal(t, now, set["updatedAt"])
	require.NotContains(t, set, "description")
	require.Len(t, set, 3)
}

func TestResumeUpdate_BumpsVersionAtomically(t *testing.T) {
	summary := "Go engineer"
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	update, err := resumeUpdate(&domain.ResumePatch{Summary: &summary}, now)
	require.NoError(t, err)

	require.Equal(t, bson.M{"version": 1}, update["$inc"])
	set := update["$set"].(bson.M)
	require.Equal(t, "Go engineer", set["summary"])
	require.Equal(t, now, set["lastModified"])
	require.Equal(t, now, set["updatedAt"])
}
