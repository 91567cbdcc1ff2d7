// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/reclutahq/recluta-backend/internal/auth"
	"github.com/reclutahq/recluta-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create registers a new account. Company accounts must carry a unique RFC
// (the Mexican tax id); everyone else registers with the bare identity
// fields. Credit balance starts at zero and is only ever touched by the
// ledger.
func (s *Service) Create(
	ctx context.Context,
	params auth.CreateUserParams,
) (*auth.UserInfo, error) {
	role, ok := ParseRole(params.Role)
	if !ok {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			params.Role,
			core.ErrInvalidInput,
		)
	}

	if role == RoleAdmin {
		return nil, fmt.Errorf(
			"create user: admin accounts cannot self-register: %w",
			core.ErrForbidden,
		)
	}

	var companyName, rfc *string
	if role == RoleCompany {
		if params.CompanyName == "" || params.RFC == "" {
			return nil, fmt.Errorf(
				"create user: company accounts require company_name and rfc: %w",
				core.ErrInvalidInput,
			)
		}

		normalizedRFC := strings.ToUpper(strings.TrimSpace(params.RFC))
		exists, err := s.repo.ExistsByRFC(ctx, normalizedRFC)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf(
				"create user: rfc already registered: %w",
				core.ErrConflict,
			)
		}

		companyName = &params.CompanyName
		rfc = &normalizedRFC
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(params.Email),
		PasswordHash: params.PasswordHash,
		Name:         params.Name,
		Role:         role,
		Phone:        params.Phone,
		CompanyName:  companyName,
		RFC:          rfc,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.CompanyName != nil {
		if user.Role != RoleCompany {
			return nil, fmt.Errorf(
				"update user: company_name only applies to company accounts: %w",
				core.ErrInvalidInput,
			)
		}
		user.CompanyName = req.CompanyName
	}
	if req.LogoURL != nil {
		user.LogoURL = req.LogoURL
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	id, roleStr string,
) (*User, error) {
	role, ok := ParseRole(roleStr)
	if !ok {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			roleStr,
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	return s.UpdateUser(ctx, userID, req)
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, email)
}

func (s *Service) CanDeleteUser(
	ctx context.Context,
	requesterID, targetID string,
) error {
	if requesterID == targetID {
		return nil
	}

	requester, err := s.repo.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}

	if !requester.IsAdmin() {
		return fmt.Errorf("delete user: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return fmt.Errorf("cannot delete admin users: %w", core.ErrForbidden)
	}

	return nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
		TokenVersion: u.TokenVersion,
	}
}

var _ auth.UserProvider = (*Service)(nil)
