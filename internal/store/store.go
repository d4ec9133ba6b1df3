// Package store is the PostgreSQL persistence layer: users, projects,
// project membership, and diagram snapshots.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool connects to PostgreSQL and verifies the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Store runs the application's queries against a connection pool.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Project struct {
	ID        string
	OwnerID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership roles, in decreasing capability order.
const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

type ProjectMember struct {
	ProjectID string
	UserID    string
	Role      string
	AddedAt   time.Time
}

// Snapshot is one persisted diagram document. Seq increases per project;
// the latest snapshot is the project's current state.
type Snapshot struct {
	ID        string
	ProjectID string
	Seq       int64
	Document  []byte
	CreatedAt time.Time
}

func (s *Store) CreateUser(ctx context.Context, u User) (User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password, display_name, created_at`,
		u.ID, u.Email, u.Password, u.DisplayName)
	var out User
	if err := row.Scan(&out.ID, &out.Email, &out.Password, &out.DisplayName, &out.CreatedAt); err != nil {
		return User{}, err
	}
	return out, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE email = $1`, email)
	var out User
	if err := row.Scan(&out.ID, &out.Email, &out.Password, &out.DisplayName, &out.CreatedAt); err != nil {
		return User{}, err
	}
	return out, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE id = $1`, id)
	var out User
	if err := row.Scan(&out.ID, &out.Email, &out.Password, &out.DisplayName, &out.CreatedAt); err != nil {
		return User{}, err
	}
	return out, nil
}

func (s *Store) CreateProject(ctx context.Context, p Project) (Project, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO projects (id, owner_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, created_at, updated_at`,
		p.ID, p.OwnerID, p.Name)
	var out Project
	if err := row.Scan(&out.ID, &out.OwnerID, &out.Name, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return Project{}, err
	}
	return out, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (Project, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, created_at, updated_at
		FROM projects WHERE id = $1`, id)
	var out Project
	if err := row.Scan(&out.ID, &out.OwnerID, &out.Name, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return Project{}, err
	}
	return out, nil
}

func (s *Store) ListProjectsForUser(ctx context.Context, userID string) ([]Project, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.owner_id, p.name, p.created_at, p.updated_at
		FROM projects p
		JOIN project_members m ON m.project_id = p.id
		WHERE m.user_id = $1
		ORDER BY p.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) TouchProject(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `UPDATE projects SET updated_at = now() WHERE id = $1`, id)
	return err
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func (s *Store) AddProjectMember(ctx context.Context, m ProjectMember) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role`,
		m.ProjectID, m.UserID, m.Role)
	return err
}

func (s *Store) GetProjectMember(ctx context.Context, projectID, userID string) (ProjectMember, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT project_id, user_id, role, added_at
		FROM project_members WHERE project_id = $1 AND user_id = $2`,
		projectID, userID)
	var out ProjectMember
	if err := row.Scan(&out.ProjectID, &out.UserID, &out.Role, &out.AddedAt); err != nil {
		return ProjectMember{}, err
	}
	return out, nil
}

func (s *Store) ListProjectMembers(ctx context.Context, projectID string) ([]ProjectMember, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT project_id, user_id, role, added_at
		FROM project_members WHERE project_id = $1
		ORDER BY added_at`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProjectMember
	for rows.Next() {
		var m ProjectMember
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role, &m.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MemberDetail joins a membership row with the member's profile.
type MemberDetail struct {
	UserID      string
	Role        string
	DisplayName string
	Email       string
}

func (s *Store) ListProjectMemberDetails(ctx context.Context, projectID string) ([]MemberDetail, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT m.user_id, m.role, u.display_name, u.email
		FROM project_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.project_id = $1
		ORDER BY m.added_at`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MemberDetail
	for rows.Next() {
		var m MemberDetail
		if err := rows.Scan(&m.UserID, &m.Role, &m.DisplayName, &m.Email); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`,
		projectID, userID)
	return err
}

func (s *Store) CreateSnapshot(ctx context.Context, snap Snapshot) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO snapshots (id, project_id, seq, document)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM snapshots WHERE project_id = $2),
			$3)
		RETURNING id, project_id, seq, document, created_at`,
		snap.ID, snap.ProjectID, snap.Document)
	var out Snapshot
	if err := row.Scan(&out.ID, &out.ProjectID, &out.Seq, &out.Document, &out.CreatedAt); err != nil {
		return Snapshot{}, err
	}
	return out, nil
}

func (s *Store) GetLatestSnapshot(ctx context.Context, projectID string) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, project_id, seq, document, created_at
		FROM snapshots WHERE project_id = $1
		ORDER BY seq DESC LIMIT 1`, projectID)
	var out Snapshot
	if err := row.Scan(&out.ID, &out.ProjectID, &out.Seq, &out.Document, &out.CreatedAt); err != nil {
		return Snapshot{}, err
	}
	return out, nil
}
