package services

import (
	"context"
	"log"

	"ceyloncircuit/internal/models/db_models"
	"ceyloncircuit/internal/models/request_models"
	"ceyloncircuit/internal/models/response_models"
	"ceyloncircuit/internal/repositories"
	"ceyloncircuit/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error)
	CreateAccount(ctx context.Context, req request_models.SignUpRequest) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{accountRepo: accountRepo}
}

func (s *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("Error finding account by email: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		log.Printf("Error creating token: %v", err)
		return nil, err
	}
	return &response_models.LoginResponse{Token: token}, nil
}

func (s *AccountService) CreateAccount(ctx context.Context, req request_models.SignUpRequest) error {
	existing, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("Error checking existing account: %v", err)
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	return s.accountRepo.Insert(ctx, &db_models.Account{
		Name:         req.DisplayName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         "traveler",
	})
}
