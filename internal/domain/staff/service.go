package staff

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hengadev/errsx"

	"github.com/carepoint/hms/internal/platform/auth"
	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/pkg/apperr"
)

const minPasswordLen = 8

type Service struct {
	repo        Repository
	tokens      *auth.TokenIssuer
	placeholder string
}

// NewService wires the staff service. A non-empty placeholder password is
// accepted for every account, which is only meant for development.
func NewService(repo Repository, tokens *auth.TokenIssuer, placeholder string) *Service {
	return &Service{repo: repo, tokens: tokens, placeholder: placeholder}
}

var errInvalidCredentials = apperr.Unauthorized("invalid credentials")

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, errInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Persistence("get user", err)
	}
	if !u.Active || !s.passwordMatches(u, password) {
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Issue(u.Actor())
	if err != nil {
		return nil, apperr.Persistence("issue token", err)
	}
	return &LoginResult{Success: true, User: u, Token: token}, nil
}

func (s *Service) passwordMatches(u *User, password string) bool {
	if s.placeholder != "" && subtle.ConstantTimeCompare([]byte(password), []byte(s.placeholder)) == 1 {
		return true
	}
	return u.PasswordHash != nil && auth.VerifyPassword(*u.PasswordHash, password)
}

func (s *Service) Profile(ctx context.Context, actor auth.Actor) (*User, error) {
	u, err := s.repo.GetByID(ctx, actor.UserID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, apperr.NotFound("no user available")
	}
	if err != nil {
		return nil, apperr.Persistence("get user", err)
	}
	return u, nil
}

// DefaultActor picks the actor for requests that carry no token: the first
// active doctor, else the first active user of any role.
func (s *Service) DefaultActor(ctx context.Context) (auth.Actor, error) {
	for _, role := range []string{auth.RoleDoctor, ""} {
		u, err := s.repo.FirstActive(ctx, role)
		if err == nil {
			return u.Actor(), nil
		}
		if !errors.Is(err, db.ErrNotFound) {
			return auth.Actor{}, apperr.Persistence("find default user", err)
		}
	}
	return auth.Actor{}, apperr.NotFound("no user available")
}

// Doctor returns the active doctor with id.
func (s *Service) Doctor(ctx context.Context, id uuid.UUID) (auth.Actor, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return auth.Actor{}, apperr.NotFound("doctor not found")
	}
	if err != nil {
		return auth.Actor{}, apperr.Persistence("get doctor", err)
	}
	if u.Role != auth.RoleDoctor || !u.Active {
		return auth.Actor{}, apperr.NotFound("doctor not found")
	}
	return u.Actor(), nil
}

func (s *Service) Doctors(ctx context.Context) ([]*DoctorSummary, error) {
	items, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, apperr.Persistence("list doctors", err)
	}
	if items == nil {
		items = []*DoctorSummary{}
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	var errs errsx.Map
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" {
		errs.Set("username", "username is required")
	}
	if !strings.Contains(in.Email, "@") {
		errs.Set("email", "a valid email is required")
	}
	if in.Role == "" {
		in.Role = auth.RoleStaff
	}
	if !auth.ValidRole(in.Role) {
		errs.Set("role", "invalid role: "+in.Role)
	}
	if len(in.Password) < minPasswordLen {
		errs.Set("password", "password must be at least 8 characters")
	}
	if err := apperr.Invalid(errs); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Persistence("hash password", err)
	}
	u := &User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: &hash,
		Role:         in.Role,
		Active:       true,
	}
	if in.Specialization != "" {
		u.Specialization = &in.Specialization
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperr.Duplicate("username or email already exists")
		}
		return nil, apperr.Persistence("create user", err)
	}
	return u, nil
}
