package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/principals"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
)

type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  *string
}

// PrincipalService signs principals of one class up and in. The server runs
// one instance for users and one for admins.
type PrincipalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	class       auth.Class
	hasher      *auth.Hasher
	tokens      *auth.TokenService
}

func NewPrincipalService(db *sql.DB, m repomanager.RepositoryManager, class auth.Class, hasher *auth.Hasher, tokens *auth.TokenService) *PrincipalService {
	return &PrincipalService{
		db:          db,
		repomanager: m,
		class:       class,
		hasher:      hasher,
		tokens:      tokens,
	}
}

func (s *PrincipalService) Class() auth.Class {
	return s.class
}

func (s *PrincipalService) repo() principals.Repository {
	if s.class == auth.ClassAdmin {
		return s.repomanager.Admins(s.db)
	}
	return s.repomanager.Users(s.db)
}

// SignUp stores a new principal with a hashed password. A taken email
// yields common.ErrorAlreadyExists, a password over auth.MaxPasswordBytes
// yields common.ErrPasswordTooLong.
func (s *PrincipalService) SignUp(ctx context.Context, in SignUpInput) (*models.Principal, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, common.ErrPasswordTooLong) {
			return nil, err
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	p := &models.Principal{
		Email:          in.Email,
		HashedPassword: hash,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
	}

	p, err = s.repo().Create(ctx, p)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating %s: %w", s.class, err)
	}

	return p, nil
}

// SignIn checks the credentials and issues a token for the principal's class.
// Unknown email and wrong password both yield common.ErrorUnauthorized.
func (s *PrincipalService) SignIn(ctx context.Context, email, password string) (string, *models.Principal, error) {
	p, err := s.repo().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyDummy(password)
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := s.hasher.Verify(password, p.HashedPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(p.ID, s.class)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return token, p, nil
}

func (s *PrincipalService) Get(ctx context.Context, id string) (*models.Principal, error) {
	return s.repo().GetByID(ctx, id)
}
