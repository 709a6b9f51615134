package service

import (
	"context"
	"errors"
	"notekeeper/cmd/internal/contract"
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/infrastructure/credentials"
	"notekeeper/cmd/internal/utils"
	"notekeeper/cmd/internal/utils/apierror"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *entity.User) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

type UserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
	Hasher   PasswordHasher
	Tokens   TokenIssuer
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Validate: validate,
		Hasher:   hasher,
		Tokens:   tokens,
	}
}

// CreateUser registers a new user with a hashed password.
func (u *UserService) CreateUser(ctx context.Context, req *contract.CreateUserRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Email = strings.ToLower(req.Email)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	found, err := u.UserRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.InternalServerError
	}

	if found {
		return nil, apierror.UserAlreadyExistsError
	}

	hash, err := u.Hasher.Hash(req.Password)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err = u.UserRepo.Create(ctx, user); err != nil {
		return nil, mapStoreError("create user", err)
	}
	return toUserResponse(user), nil
}

// Login checks the credentials and returns a signed access token.
// Unknown e-mails and wrong passwords are reported the same way.
func (u *UserService) Login(ctx context.Context, req *contract.UserLoginRequest) (*contract.UserLoginResponse, apierror.ErrorResponse) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.CredentialsMismatchError
	}

	err = u.Hasher.Compare(user.PasswordHash, req.Password)
	if errors.Is(err, credentials.ErrPasswordMismatch) {
		return nil, apierror.CredentialsMismatchError
	}

	if err != nil {
		log.Errorf("failed to compare password of user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	token, err := u.Tokens.Issue(user.ID)
	if err != nil {
		log.Errorf("failed to issue token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &contract.UserLoginResponse{Token: token}, nil
}

func toUserResponse(user *entity.User) *contract.UserResponse {
	return &contract.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
	}
}
