package usersvc

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"bookstore/model"
	userrepo "bookstore/repository/user"
)

var (
	ErrEmailEmpty   = errors.New("email must not be empty")
	ErrEmailFormat  = errors.New("invalid email format")
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

// local@domain.tld, ASCII local part, dotted domain, TLD of 2+ letters.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Service interface {
	Create(ctx context.Context, name, email string, role model.Role) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type service struct{ ur userrepo.Repo }

func New(ur userrepo.Repo) Service { return &service{ur: ur} }

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailEmpty
	}
	if !emailRe.MatchString(email) {
		return ErrEmailFormat
	}
	return nil
}

func (s *service) Create(ctx context.Context, name, email string, role model.Role) (*model.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	// Only creation exists in this scope, so the duplicate check always
	// applies. The unique index on users.email remains the backstop.
	taken, err := s.ur.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	if role == "" {
		role = model.RoleClient
	}
	u := &model.User{
		Name:  name,
		Email: email,
		Role:  role,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if strings.Contains(strings.ToLower(pgErr.ConstraintName), "email") {
			return ErrEmailTaken
		}
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return s.ur.List(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
