// Package skills manages the skill list on a user's profile: listing, manual
// additions, deletions and the full clear that also drops the stored resume.
package skills

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rohitkatore/gitCompass/internal/types"
)

// Store is the persistence surface the service needs. Satisfied by *db.DB.
type Store interface {
	ListSkills(ctx context.Context, userID uuid.UUID) ([]types.Skill, error)
	AddSkill(ctx context.Context, userID uuid.UUID, skill types.Skill) (bool, error)
	RemoveSkill(ctx context.Context, userID uuid.UUID, name string) (bool, error)
	ClearSkillsAndResume(ctx context.Context, userID uuid.UUID) error
}

// Service applies skill list semantics on top of a Store.
type Service struct {
	store Store
}

// NewService creates a skills Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns the user's skills in insertion order.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]types.Skill, error) {
	skills, err := s.store.ListSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []types.Skill{}
	}
	return skills, nil
}

// Add inserts the given skills, skipping any whose name already exists on the
// profile in any casing, and returns the subset actually added. Names are
// trimmed; blank names and within-batch duplicates are dropped. Adding is
// idempotent: re-adding an existing skill returns an empty slice, not an
// error.
func (s *Service) Add(ctx context.Context, userID uuid.UUID, incoming []types.Skill) ([]types.Skill, error) {
	seen := make(map[string]struct{}, len(incoming))
	added := []types.Skill{}

	for _, skill := range incoming {
		skill.Name = strings.TrimSpace(skill.Name)
		if skill.Name == "" {
			continue
		}
		key := strings.ToLower(skill.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if skill.Confidence == 0 {
			skill.Confidence = types.DefaultSkillConfidence
		}
		if skill.Category == "" {
			skill.Category = types.DefaultSkillCategory
		}
		if err := skill.Validate(); err != nil {
			return nil, err
		}

		inserted, err := s.store.AddSkill(ctx, userID, skill)
		if err != nil {
			return nil, fmt.Errorf("failed to add skill %q: %w", skill.Name, err)
		}
		if inserted {
			added = append(added, skill)
		}
	}
	return added, nil
}

// Delete removes a skill by case-insensitive name.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	removed, err := s.store.RemoveSkill(ctx, userID, name)
	if err != nil {
		return err
	}
	if !removed {
		return &ErrSkillNotFound{Name: name}
	}
	return nil
}

// Clear removes every skill and the stored resume in one transaction.
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.ClearSkillsAndResume(ctx, userID)
}

// Replace clears the profile and installs the extracted skill set. Used after
// a resume upload so the profile reflects the latest document.
func (s *Service) Replace(ctx context.Context, userID uuid.UUID, extracted []types.Skill) ([]types.Skill, error) {
	if err := s.store.ClearSkillsAndResume(ctx, userID); err != nil {
		return nil, err
	}
	return s.Add(ctx, userID, extracted)
}
