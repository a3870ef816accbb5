package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type CreateWorkerInput struct {
	Name  string
	Email string
	Phone string
	// Active defaults to true.
	Active *bool
}

type CreateRoleInput struct {
	Name        string
	Description string
	// Color is "#RRGGBB"; empty means models.DefaultRoleColor.
	Color    string
	IsActive *bool
}

// PersonnelService manages workers and role definitions.
type PersonnelService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPersonnelService(db *sql.DB, repomanager repomanager.RepositoryManager) *PersonnelService {
	return &PersonnelService{db: db, repomanager: repomanager, now: time.Now}
}

func (s *PersonnelService) CreateWorker(ctx context.Context, in CreateWorkerInput) (*models.Worker, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}

	w := &models.Worker{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Active:    in.Active == nil || *in.Active,
		CreatedAt: s.now(),
	}
	if err := s.repomanager.Workers(s.db).Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *PersonnelService) GetWorker(ctx context.Context, id string) (*models.Worker, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	w, err := s.repomanager.Workers(s.db).Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("worker %s: %w", id, err)
	}
	return w, nil
}

func (s *PersonnelService) CreateRole(ctx context.Context, in CreateRoleInput) (*models.Role, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = models.DefaultRoleColor
	}
	if !hexColor.MatchString(color) {
		return nil, fmt.Errorf("%w: color must be a hex value like #3B82F6", common.ErrValidation)
	}

	r := &models.Role{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Color:       color,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   s.now(),
	}
	if err := s.repomanager.Roles(s.db).Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRoles returns active roles sorted by name.
func (s *PersonnelService) ListRoles(ctx context.Context) ([]*models.Role, error) {
	roles, err := s.repomanager.Roles(s.db).ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []*models.Role{}
	}
	return roles, nil
}
