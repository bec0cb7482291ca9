package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/easybody/easybody-backend/pkg/db/models"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"gorm.io/gorm"
)

type subjectRepository interface {
	FindByAuthSub(ctx context.Context, sub string) (*models.User, error)
}

// Service resolves external identities to platform accounts.
// Authentication happens upstream; tokens carry the issuer's subject,
// never an internal id.
type Service interface {
	ResolveSubject(ctx context.Context, subject string) (*UserDTO, error)
}

type service struct {
	repo subjectRepository
}

// NewService builds an identity resolution service.
func NewService(repo subjectRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ResolveSubject(ctx context.Context, subject string) (*UserDTO, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown subject")
	}

	user, err := s.repo.FindByAuthSub(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown subject")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve subject")
	}
	return FromModel(user), nil
}
