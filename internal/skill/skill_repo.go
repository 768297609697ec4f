package skill

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrUserSkillNotFound  = errors.New("user skill not found")
	ErrDuplicateSkill     = errors.New("a skill with this name already exists")
	ErrDuplicateUserSkill = errors.New("skill already listed with this type")
	ErrSkillNotApproved   = errors.New("skill is not approved yet")
)

type SkillRepository interface {
	ListApproved(ctx context.Context, category string) ([]Skill, error)
	ListPending(ctx context.Context) ([]Skill, error)
	CountPending(ctx context.Context) (int64, error)
	GetSkillByID(ctx context.Context, id uuid.UUID) (*Skill, error)
	FindSkillByName(ctx context.Context, name string) (*Skill, error)
	CreateSkill(ctx context.Context, s *Skill) error
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*Skill, error)

	ListUserSkills(ctx context.Context, userID uuid.UUID, skillType SkillType) ([]UserSkill, error)
	GetUserSkill(ctx context.Context, id uuid.UUID) (*UserSkill, error)
	FindUserSkill(ctx context.Context, userID, skillID uuid.UUID, skillType SkillType) (*UserSkill, error)
	AddUserSkill(ctx context.Context, us *UserSkill) error
	RemoveUserSkill(ctx context.Context, id uuid.UUID) error
	CountUserSkills(ctx context.Context, userID uuid.UUID) (map[SkillType]int64, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new instance of SkillRepository.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

// --- Skill catalogue ---

func (r *skillRepository) ListApproved(ctx context.Context, category string) ([]Skill, error) {
	var skills []Skill
	query := r.db.WithContext(ctx).Where("is_approved = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("name ASC").Find(&skills).Error
	return skills, err
}

func (r *skillRepository) ListPending(ctx context.Context) ([]Skill, error) {
	var skills []Skill
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&skills).Error
	return skills, err
}

func (r *skillRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Skill{}).Where("is_approved = ?", false).Count(&count).Error
	return count, err
}

// GetSkillByID returns nil, nil when there is no such skill.
func (r *skillRepository) GetSkillByID(ctx context.Context, id uuid.UUID) (*Skill, error) {
	var s Skill
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// FindSkillByName matches case-insensitively; nil, nil when absent.
func (r *skillRepository) FindSkillByName(ctx context.Context, name string) (*Skill, error) {
	var s Skill
	err := r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *skillRepository) CreateSkill(ctx context.Context, s *Skill) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSkill
		}
		return err
	}
	return nil
}

func (r *skillRepository) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*Skill, error) {
	res := r.db.WithContext(ctx).Model(&Skill{}).Where("id = ?", id).Update("is_approved", approved)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrSkillNotFound
	}
	return r.GetSkillByID(ctx, id)
}

// --- User skills ---

// ListUserSkills returns the member's skills with the catalogue entry loaded.
// An empty skillType returns both offered and wanted skills.
func (r *skillRepository) ListUserSkills(ctx context.Context, userID uuid.UUID, skillType SkillType) ([]UserSkill, error) {
	var out []UserSkill
	query := r.db.WithContext(ctx).Preload("Skill").Where("user_id = ?", userID)
	if skillType != "" {
		query = query.Where("skill_type = ?", skillType)
	}
	err := query.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *skillRepository) GetUserSkill(ctx context.Context, id uuid.UUID) (*UserSkill, error) {
	var us UserSkill
	err := r.db.WithContext(ctx).Preload("Skill").Where("id = ?", id).First(&us).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserSkillNotFound
		}
		return nil, err
	}
	return &us, nil
}

func (r *skillRepository) FindUserSkill(ctx context.Context, userID, skillID uuid.UUID, skillType SkillType) (*UserSkill, error) {
	var us UserSkill
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ? AND skill_type = ?", userID, skillID, skillType).
		First(&us).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &us, nil
}

func (r *skillRepository) AddUserSkill(ctx context.Context, us *UserSkill) error {
	if err := r.db.WithContext(ctx).Omit("Skill").Create(us).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUserSkill
		}
		return err
	}
	return nil
}

func (r *skillRepository) RemoveUserSkill(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserSkill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func (r *skillRepository) CountUserSkills(ctx context.Context, userID uuid.UUID) (map[SkillType]int64, error) {
	var rows []struct {
		SkillType SkillType
		Count     int64
	}
	err := r.db.WithContext(ctx).Model(&UserSkill{}).
		Select("skill_type, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("skill_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := map[SkillType]int64{Offer: 0, Want: 0}
	for _, row := range rows {
		counts[row.SkillType] = row.Count
	}
	return counts, nil
}
