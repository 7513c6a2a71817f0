package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestApplyProgress_CompletesOnce(t *testing.T) {
	c := &Course{Status: CourseStatusInProgress}
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	if err := ApplyProgress(c, 100, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != CourseStatusCompleted {
		t.Fatalf("expected completed, got %s", c.Status)
	}
	if c.CompletionDate == nil || !c.CompletionDate.Equal(first) {
		t.Fatalf("expected completion date %v, got %v", first, c.CompletionDate)
	}

	if err := ApplyProgress(c, 100, first.Add(48*time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.CompletionDate.Equal(first) {
		t.Fatalf("completion date moved on repeat: %v", c.CompletionDate)
	}
}

func TestApplyProgress_PartialLeavesStatus(t *testing.T) {
	c := &Course{Status: CourseStatusEnrolled}
	if err := ApplyProgress(c, 40, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Progress != 40 || c.Status != CourseStatusEnrolled || c.CompletionDate != nil {
		t.Fatalf("unexpected course state: %+v", c)
	}
}

func TestApplyProgress_OutOfRange(t *testing.T) {
	for _, p := range []int{-1, 101, 150} {
		c := &Course{Progress: 30, Status: CourseStatusInProgress}
		err := ApplyProgress(c, p, time.Now())

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("progress %d: expected ValidationError, got %v", p, err)
		}
		if ve.Fields[0].Field != "progress" {
			t.Fatalf("unexpected field: %s", ve.Fields[0].Field)
		}
		if c.Progress != 30 || c.Status != CourseStatusInProgress {
			t.Fatalf("course mutated on invalid progress: %+v", c)
		}
	}
}

func TestCloneForDuplicate(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	src := &Resume{
		ID:         primitive.NewObjectID(),
		User:       primitive.NewObjectID(),
		Title:      "Backend",
		Version:    7,
		Experience: []Experience{{Company: "Acme", Position: "Dev"}},
		Timestamps: Timestamps{CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Minute)},
	}

	dup := CloneForDuplicate(src, now)

	if !dup.ID.IsZero() {
		t.Fatalf("expected cleared id, got %s", dup.ID.Hex())
	}
	if dup.User != src.User {
		t.Fatalf("owner must be preserved")
	}
	if dup.Title != "Backend (Copy)" {
		t.Fatalf("unexpected title %q", dup.Title)
	}
	if dup.Version != 1 {
		t.Fatalf("expected version 1, got %d", dup.Version)
	}
	if !dup.CreatedAt.Equal(now) || !dup.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not reset: %+v", dup.Timestamps)
	}

	dup.Experience[0].Company = "Other"
	if src.Experience[0].Company != "Acme" {
		t.Fatalf("duplicate shares experience backing array with source")
	}
}

func TestGenerateSummary(t *testing.T) {
	r := &Resume{
		Experience: []Experience{{}, {}, {}},
		Skills: []SkillGroup{
			{Category: "Languages", Items: []string{"Go", "Rust", "SQL"}},
			{Category: "Tools", Items: []string{"Docker", "Kubernetes", "Terraform"}},
		},
	}

	got := GenerateSummary(r)

	if !strings.Contains(got, "3+ years") {
		t.Fatalf("missing years: %s", got)
	}
	if !strings.Contains(got, "expertise in 6 skills") {
		t.Fatalf("missing skill count: %s", got)
	}
	if !strings.Contains(got, "Go, Rust, SQL, Docker, Kubernetes.") {
		t.Fatalf("expected top five skills: %s", got)
	}
	if strings.Contains(got, "Terraform") {
		t.Fatalf("sixth skill must not be listed: %s", got)
	}
	if GenerateSummary(r) != got {
		t.Fatalf("summary is not deterministic")
	}
}

func TestSortAndGroupSkills(t *testing.T) {
	skills := []*Skill{
		{Name: "Python", Category: SkillCategoryProgramming, Proficiency: ProficiencyIntermediate},
		{Name: "Postgres", Category: SkillCategoryDatabase, Proficiency: ProficiencyAdvanced},
		{Name: "Go", Category: SkillCategoryProgramming, Proficiency: ProficiencyExpert},
		{Name: "C", Category: SkillCategoryProgramming, Proficiency: ProficiencyIntermediate},
	}

	SortSkills(skills)
	grouped := GroupByCategory(skills)

	if len(grouped) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(grouped))
	}
	prog := grouped[SkillCategoryProgramming]
	if len(prog) != 3 {
		t.Fatalf("expected 3 programming skills, got %d", len(prog))
	}
	if prog[0].Name != "Go" || prog[1].Name != "C" || prog[2].Name != "Python" {
		t.Fatalf("unexpected order: %s %s %s", prog[0].Name, prog[1].Name, prog[2].Name)
	}
}

func TestDate_JSONAndBSON(t *testing.T) {
	var in struct {
		Start *Date `json:"startDate"`
	}
	if err := json.Unmarshal([]byte(`{"startDate":"2024-01-01"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if in.Start == nil || !in.Start.Equal(want) {
		t.Fatalf("unexpected date: %v", in.Start)
	}

	raw, err := bson.Marshal(bson.M{"d": in.Start})
	if err != nil {
		t.Fatalf("bson marshal: %v", err)
	}
	var out struct {
		D Date `bson:"d"`
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatalf("bson unmarshal: %v", err)
	}
	if !out.D.Equal(want) {
		t.Fatalf("bson round trip mismatch: %v", out.D)
	}

	if err := json.Unmarshal([]byte(`{"startDate":"yesterday"}`), &in); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestToPublicProfile_OmitsCredentials(t *testing.T) {
	u := &User{ID: primitive.NewObjectID(), Name: "Ann", Email: "a@test.com", PasswordHash: "hash", GoogleID: "g-1"}

	b, err := json.Marshal(ToPublicProfile(u))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "hash") || strings.Contains(string(b), "g-1") {
		t.Fatalf("credentials leaked: %s", b)
	}
	if !strings.Contains(string(b), u.ID.Hex()) {
		t.Fatalf("missing id: %s", b)
	}
	if ToPublicProfile(nil) != nil {
		t.Fatalf("expected nil for nil user")
	}
}

func TestVisibilityReadable(t *testing.T) {
	if !VisibilityPublic.Readable() || !VisibilityUnlisted.Readable() || VisibilityPrivate.Readable() {
		t.Fatalf("unexpected readability rules")
	}
}
