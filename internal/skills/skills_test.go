package skills

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitkatore/gitCompass/internal/types"
)

// memStore mimics the database's case-insensitive uniqueness per user.
type memStore struct {
	skills       []types.Skill
	resumeSaved  bool
	clearedCount int
}

func (m *memStore) ListSkills(_ context.Context, _ uuid.UUID) ([]types.Skill, error) {
	return m.skills, nil
}

func (m *memStore) AddSkill(_ context.Context, _ uuid.UUID, skill types.Skill) (bool, error) {
	for _, existing := range m.skills {
		if strings.EqualFold(existing.Name, skill.Name) {
			return false, nil
		}
	}
	m.skills = append(m.skills, skill)
	return true, nil
}

func (m *memStore) RemoveSkill(_ context.Context, _ uuid.UUID, name string) (bool, error) {
	for i, existing := range m.skills {
		if strings.EqualFold(existing.Name, name) {
			m.skills = append(m.skills[:i], m.skills[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ClearSkillsAndResume(_ context.Context, _ uuid.UUID) error {
	m.skills = nil
	m.resumeSaved = false
	m.clearedCount++
	return nil
}

func TestAddAppliesDefaults(t *testing.T) {
	store := &memStore{}
	svc := NewService(store)

	added, err := svc.Add(context.Background(), uuid.New(), []types.Skill{{Name: "Go"}})

	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, types.DefaultSkillConfidence, added[0].Confidence)
	assert.Equal(t, types.DefaultSkillCategory, added[0].Category)
}

func TestAddCaseInsensitiveIdempotent(t *testing.T) {
	store := &memStore{}
	svc := NewService(store)
	userID := uuid.New()

	first, err := svc.Add(context.Background(), userID, []types.Skill{{Name: "Python", Confidence: 90, Category: "Language"}})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Add(context.Background(), userID, []types.Skill{{Name: "python"}})
	require.NoError(t, err)
	assert.Empty(t, second, "re-adding an existing name in another casing adds nothing")

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Python", list[0].Name, "original casing is preserved")
}

func TestAddDedupesWithinBatch(t *testing.T) {
	store := &memStore{}
	svc := NewService(store)

	added, err := svc.Add(context.Background(), uuid.New(), []types.Skill{
		{Name: "React"},
		{Name: "react"},
		{Name: " React "},
		{Name: ""},
	})

	require.NoError(t, err)
	assert.Len(t, added, 1)
	assert.Equal(t, "React", added[0].Name)
}

func TestDeleteAbsentSkill(t *testing.T) {
	store := &memStore{skills: []types.Skill{{Name: "Go"}}}
	svc := NewService(store)

	err := svc.Delete(context.Background(), uuid.New(), "Rust")

	var notFound *ErrSkillNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Rust", notFound.Name)
	assert.Len(t, store.skills, 1, "list unchanged after failed delete")
}

func TestDeleteCaseInsensitive(t *testing.T) {
	store := &memStore{skills: []types.Skill{{Name: "Docker"}}}
	svc := NewService(store)

	err := svc.Delete(context.Background(), uuid.New(), "docker")

	require.NoError(t, err)
	assert.Empty(t, store.skills)
}

func TestReplaceClearsThenAdds(t *testing.T) {
	store := &memStore{skills: []types.Skill{{Name: "Old"}}}
	svc := NewService(store)

	added, err := svc.Replace(context.Background(), uuid.New(), []types.Skill{
		{Name: "Python", Confidence: 95, Category: "Language"},
		{Name: "FastAPI", Confidence: 80, Category: "Framework"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, store.clearedCount)
	assert.Len(t, added, 2)
	assert.Len(t, store.skills, 2)
}

func TestListNeverNil(t *testing.T) {
	svc := NewService(&memStore{})

	list, err := svc.List(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
