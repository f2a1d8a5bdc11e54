// Package auth contains authentication and owner-lifecycle use cases.
package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

type stubUserRepo struct {
	users map[string]*entity.User

	created  *entity.User
	renamed  [2]string
	deleted  string
	renameFn func(oldUsername, newUsername string) error
}

func newStubUserRepo(users ...*entity.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[string]*entity.User)}
	for _, user := range users {
		repo.users[user.Username] = user
	}
	return repo
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error {
	s.created = user
	s.users[user.Username] = user
	return nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.users[username], nil
}

func (s *stubUserRepo) FindByFriendCode(ctx context.Context, code string) (*entity.User, error) {
	for _, user := range s.users {
		if user.FriendCode == code {
			return user, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

func (s *stubUserRepo) Update(ctx context.Context, username string, updates adapter.UserUpdates) error {
	return nil
}

func (s *stubUserRepo) Rename(ctx context.Context, oldUsername, newUsername string) error {
	s.renamed = [2]string{oldUsername, newUsername}
	if s.renameFn != nil {
		return s.renameFn(oldUsername, newUsername)
	}
	if user, ok := s.users[oldUsername]; ok {
		delete(s.users, oldUsername)
		user.Username = newUsername
		s.users[newUsername] = user
	}
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, username string) error {
	s.deleted = username
	delete(s.users, username)
	return nil
}

func (s *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := s.users[username]
	return ok, nil
}

type stubPasswordService struct{}

func (stubPasswordService) HashPassword(password string) (string, error) {
	return "hash:" + password, nil
}

func (stubPasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (stubPasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 4 {
		return errors.New("password must be at least 4 characters long")
	}
	return nil
}

type stubTokenService struct{}

func (stubTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, username string) (*adapter.TokenPair, error) {
	return &adapter.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (stubTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func (stubTokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func (stubTokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return nil
}

func (stubTokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return true, nil
}

type stubFriendCodes struct{}

func (stubFriendCodes) Generate() string { return "AB23CD" }

// stubChecklistRepo is the minimal tree store for rename/delete flows.
type stubChecklistRepo struct {
	deletedTree string
}

func (s *stubChecklistRepo) FetchTree(ctx context.Context, owner string) ([]*entity.Group, error) {
	return nil, nil
}
func (s *stubChecklistRepo) CreateGroup(ctx context.Context, owner string, group *entity.Group) error {
	return nil
}
func (s *stubChecklistRepo) CreateGroupWithHierarchy(ctx context.Context, owner string, group *entity.Group) error {
	return nil
}
func (s *stubChecklistRepo) UpdateGroup(ctx context.Context, owner string, groupID uuid.UUID, updates adapter.GroupUpdates) error {
	return nil
}
func (s *stubChecklistRepo) DeleteGroup(ctx context.Context, owner string, groupID uuid.UUID) error {
	return nil
}
func (s *stubChecklistRepo) AddCategory(ctx context.Context, owner string, groupID uuid.UUID, category *entity.Category) error {
	return nil
}
func (s *stubChecklistRepo) FindCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID) (*entity.Category, error) {
	return nil, nil
}
func (s *stubChecklistRepo) UpdateCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID, updates adapter.CategoryUpdates) error {
	return nil
}
func (s *stubChecklistRepo) DeleteCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID) error {
	return nil
}
func (s *stubChecklistRepo) AddProduct(ctx context.Context, owner string, groupID, categoryID uuid.UUID, product *entity.Product) error {
	return nil
}
func (s *stubChecklistRepo) UpdateProduct(ctx context.Context, owner string, groupID, categoryID, productID uuid.UUID, updates adapter.ProductUpdates) error {
	return nil
}
func (s *stubChecklistRepo) DeleteProduct(ctx context.Context, owner string, groupID, categoryID, productID uuid.UUID) error {
	return nil
}
func (s *stubChecklistRepo) DeleteTree(ctx context.Context, owner string) error {
	s.deletedTree = owner
	return nil
}

// migratingRepo additionally implements adapter.TreeMigrator.
type migratingRepo struct {
	stubChecklistRepo
	migrated   [2]string
	migrateErr error
}

func (m *migratingRepo) MigrateTree(ctx context.Context, oldOwner, newOwner string) error {
	m.migrated = [2]string{oldOwner, newOwner}
	return m.migrateErr
}

func newRegisterUseCase(repo *stubUserRepo) *RegisterUserUseCase {
	return NewRegisterUserUseCase(repo, stubPasswordService{}, stubTokenService{}, stubFriendCodes{})
}

func TestRegisterUserUseCase(t *testing.T) {
	t.Run("normalizes the username", func(t *testing.T) {
		repo := newStubUserRepo()
		output, err := newRegisterUseCase(repo).Execute(context.Background(), RegisterUserInput{
			Username: "  AySe ",
			Password: "1234",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.Username != "ayse" {
			t.Errorf("expected username %q, got %q", "ayse", output.User.Username)
		}
		if output.User.Title != entity.DefaultTitle {
			t.Errorf("expected default title, got %q", output.User.Title)
		}
		if output.AccessToken == "" || output.RefreshToken == "" {
			t.Error("expected a token pair")
		}
	})

	t.Run("reserved admin username gets admin role", func(t *testing.T) {
		repo := newStubUserRepo()
		output, err := newRegisterUseCase(repo).Execute(context.Background(), RegisterUserInput{
			Username: "Admin",
			Password: "1234",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.Role != entity.RoleAdmin {
			t.Errorf("expected admin role, got %q", output.User.Role)
		}
	})

	t.Run("rejects a short username", func(t *testing.T) {
		_, err := newRegisterUseCase(newStubUserRepo()).Execute(context.Background(), RegisterUserInput{
			Username: "ab",
			Password: "1234",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeUsernameTooShort {
			t.Fatalf("expected username-too-short error, got %v", err)
		}
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		_, err := newRegisterUseCase(newStubUserRepo()).Execute(context.Background(), RegisterUserInput{
			Username: "ayse",
			Password: "123",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeWeakPassword {
			t.Fatalf("expected weak-password error, got %v", err)
		}
	})

	t.Run("rejects a taken username regardless of case", func(t *testing.T) {
		existing := entity.NewUser("ayse", "hash:1234", "CD34EF", entity.RoleUser)
		_, err := newRegisterUseCase(newStubUserRepo(existing)).Execute(context.Background(), RegisterUserInput{
			Username: "AYSE",
			Password: "1234",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeUsernameExists {
			t.Fatalf("expected username-exists error, got %v", err)
		}
	})
}

func TestLoginUserUseCase(t *testing.T) {
	user := entity.NewUser("ayse", "hash:1234", "AB23CD", entity.RoleUser)
	useCase := NewLoginUserUseCase(newStubUserRepo(user), stubPasswordService{}, stubTokenService{})

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		output, err := useCase.Execute(context.Background(), LoginUserInput{
			Username: "AySe",
			Password: "1234",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.Username != "ayse" {
			t.Errorf("expected user ayse, got %q", output.User.Username)
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := useCase.Execute(context.Background(), LoginUserInput{
			Username: "ayse",
			Password: "wrong",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeInvalidCredentials {
			t.Fatalf("expected invalid-credentials error, got %v", err)
		}
	})

	t.Run("does not reveal unknown users", func(t *testing.T) {
		_, err := useCase.Execute(context.Background(), LoginUserInput{
			Username: "nobody",
			Password: "1234",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeInvalidCredentials {
			t.Fatalf("expected invalid-credentials error, got %v", err)
		}
	})
}

func TestRenameUserUseCase(t *testing.T) {
	t.Run("migrates the tree for username-keyed backends", func(t *testing.T) {
		user := entity.NewUser("ayse", "hash:1234", "AB23CD", entity.RoleUser)
		repo := newStubUserRepo(user)
		trees := &migratingRepo{}

		output, err := NewRenameUserUseCase(repo, trees).Execute(context.Background(), RenameUserInput{
			CurrentUsername: "ayse",
			NewUsername:     "Zeynep",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Username != "zeynep" {
			t.Errorf("expected new username zeynep, got %q", output.Username)
		}
		if trees.migrated != [2]string{"ayse", "zeynep"} {
			t.Errorf("expected tree migration ayse->zeynep, got %v", trees.migrated)
		}
		if repo.renamed != [2]string{"ayse", "zeynep"} {
			t.Errorf("expected record rename ayse->zeynep, got %v", repo.renamed)
		}
	})

	t.Run("skips migration for id-keyed backends", func(t *testing.T) {
		user := entity.NewUser("ayse", "hash:1234", "AB23CD", entity.RoleUser)
		repo := newStubUserRepo(user)

		_, err := NewRenameUserUseCase(repo, &stubChecklistRepo{}).Execute(context.Background(), RenameUserInput{
			CurrentUsername: "ayse",
			NewUsername:     "zeynep",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.renamed != [2]string{"ayse", "zeynep"} {
			t.Errorf("expected record rename, got %v", repo.renamed)
		}
	})

	t.Run("surfaces an incomplete migration without renaming", func(t *testing.T) {
		user := entity.NewUser("ayse", "hash:1234", "AB23CD", entity.RoleUser)
		repo := newStubUserRepo(user)
		trees := &migratingRepo{
			migrateErr: errors.Join(domainerror.ErrMigrationIncomplete, errors.New("copy failed")),
		}

		_, err := NewRenameUserUseCase(repo, trees).Execute(context.Background(), RenameUserInput{
			CurrentUsername: "ayse",
			NewUsername:     "zeynep",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeMigrationIncomplete {
			t.Fatalf("expected migration-incomplete error, got %v", err)
		}
		if repo.renamed != [2]string{} {
			t.Error("expected no record rename after failed migration")
		}
	})

	t.Run("rejects renaming onto a taken username", func(t *testing.T) {
		ayse := entity.NewUser("ayse", "hash:1234", "AB23CD", entity.RoleUser)
		zeynep := entity.NewUser("zeynep", "hash:1234", "CD34EF", entity.RoleUser)
		repo := newStubUserRepo(ayse, zeynep)

		_, err := NewRenameUserUseCase(repo, &stubChecklistRepo{}).Execute(context.Background(), RenameUserInput{
			CurrentUsername: "ayse",
			NewUsername:     "zeynep",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeUsernameExists {
			t.Fatalf("expected username-exists error, got %v", err)
		}
	})

	t.Run("renaming to the same name is a no-op", func(t *testing.T) {
		user := entity.NewUser("ayse", "hash:1234", "AB23CD", entity.RoleUser)
		repo := newStubUserRepo(user)

		output, err := NewRenameUserUseCase(repo, &stubChecklistRepo{}).Execute(context.Background(), RenameUserInput{
			CurrentUsername: "ayse",
			NewUsername:     "AYSE",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Username != "ayse" {
			t.Errorf("expected ayse, got %q", output.Username)
		}
		if repo.renamed != [2]string{} {
			t.Error("expected no rename call")
		}
	})
}

func TestDeleteAccountUseCase(t *testing.T) {
	user := entity.NewUser("ayse", "hash:1234", "AB23CD", entity.RoleUser)
	repo := newStubUserRepo(user)
	trees := &stubChecklistRepo{}

	_, err := NewDeleteAccountUseCase(repo, trees).Execute(context.Background(), DeleteAccountInput{
		Username: "AySe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trees.deletedTree != "ayse" {
		t.Errorf("expected tree deleted for ayse, got %q", trees.deletedTree)
	}
	if repo.deleted != "ayse" {
		t.Errorf("expected user record deleted for ayse, got %q", repo.deleted)
	}
}
