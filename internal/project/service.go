package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inklet/inklet/backend-go/internal/document"
	"github.com/inklet/inklet/backend-go/internal/store"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrForbidden = errors.New("forbidden")
	ErrNotMember = errors.New("not a project member")
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Member struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string) (*Project, error) {
	dbProj, err := s.store.CreateProject(ctx, store.Project{
		ID:      typeid.NewProjectID(),
		Name:    name,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	err = s.store.AddProjectMember(ctx, store.ProjectMember{
		ProjectID: dbProj.ID,
		UserID:    ownerID,
		Role:      store.RoleOwner,
	})
	if err != nil {
		return nil, fmt.Errorf("add owner as member: %w", err)
	}

	// Seed the project with an empty diagram snapshot.
	emptyDoc := document.NewEmptyDiagram(name)
	docJSON, err := emptyDoc.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal empty diagram: %w", err)
	}

	_, err = s.store.CreateSnapshot(ctx, store.Snapshot{
		ID:        typeid.NewSnapshotID(),
		ProjectID: dbProj.ID,
		Document:  docJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return dbProjectToProject(dbProj), nil
}

func (s *Service) Get(ctx context.Context, projectID, userID string) (*Project, error) {
	if err := s.checkMembership(ctx, projectID, userID); err != nil {
		return nil, err
	}

	dbProj, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return dbProjectToProject(dbProj), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Project, error) {
	dbProjects, err := s.store.ListProjectsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]Project, len(dbProjects))
	for i, p := range dbProjects {
		projects[i] = *dbProjectToProject(p)
	}

	return projects, nil
}

func (s *Service) Delete(ctx context.Context, projectID, userID string) error {
	dbProj, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get project: %w", err)
	}

	if dbProj.OwnerID != userID {
		return ErrForbidden
	}

	return s.store.DeleteProject(ctx, projectID)
}

func (s *Service) InviteByEmail(ctx context.Context, projectID, ownerID, inviteeEmail string) error {
	dbProj, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get project: %w", err)
	}

	if dbProj.OwnerID != ownerID {
		return ErrForbidden
	}

	invitee, err := s.store.GetUserByEmail(ctx, inviteeEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("user not found")
		}
		return fmt.Errorf("find user: %w", err)
	}

	return s.store.AddProjectMember(ctx, store.ProjectMember{
		ProjectID: projectID,
		UserID:    invitee.ID,
		Role:      store.RoleEditor,
	})
}

func (s *Service) ListMembers(ctx context.Context, projectID, userID string) ([]Member, error) {
	if err := s.checkMembership(ctx, projectID, userID); err != nil {
		return nil, err
	}

	details, err := s.store.ListProjectMemberDetails(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members := make([]Member, len(details))
	for i, m := range details {
		members[i] = Member{
			UserID:      m.UserID,
			Role:        m.Role,
			DisplayName: m.DisplayName,
			Email:       m.Email,
		}
	}

	return members, nil
}

func (s *Service) RemoveMember(ctx context.Context, projectID, ownerID, targetUserID string) error {
	dbProj, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get project: %w", err)
	}

	if dbProj.OwnerID != ownerID {
		return ErrForbidden
	}

	if targetUserID == ownerID {
		return errors.New("cannot remove project owner")
	}

	return s.store.RemoveProjectMember(ctx, projectID, targetUserID)
}

func (s *Service) GetLatestSnapshot(ctx context.Context, projectID, userID string) (json.RawMessage, error) {
	if err := s.checkMembership(ctx, projectID, userID); err != nil {
		return nil, err
	}

	snap, err := s.store.GetLatestSnapshot(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	return snap.Document, nil
}

// SaveSnapshot persists the current diagram document for a project.
// Used by the session hub when a room's document changes.
func (s *Service) SaveSnapshot(ctx context.Context, projectID string, doc json.RawMessage) error {
	_, err := s.store.CreateSnapshot(ctx, store.Snapshot{
		ID:        typeid.NewSnapshotID(),
		ProjectID: projectID,
		Document:  doc,
	})
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := s.store.TouchProject(ctx, projectID); err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	return nil
}

// CheckMembership reports whether the user can open the project.
func (s *Service) CheckMembership(ctx context.Context, projectID, userID string) error {
	return s.checkMembership(ctx, projectID, userID)
}

func (s *Service) checkMembership(ctx context.Context, projectID, userID string) error {
	_, err := s.store.GetProjectMember(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotMember
		}
		return fmt.Errorf("check membership: %w", err)
	}
	return nil
}

func dbProjectToProject(p store.Project) *Project {
	return &Project{
		ID:        p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
