package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/mailing"
	"Foodgram-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		GetUser(ctx context.Context, targetID, viewerID string) (domain.UserResponse, error)
		GetUsers(ctx context.Context, page, limit int, viewerID string) ([]domain.UserResponse, int64, error)
		Subscribe(ctx context.Context, authorID, userID string) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, authorID, userID string) error
		GetSubscriptions(ctx context.Context, userID string, page, limit int, recipesLimit string) ([]domain.SubscriptionResponse, int64, error)
		VerifyEmail(ctx context.Context, token string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func toUserResponse(user *entities.User, subscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyUsed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.UserResponse{}, domain.ErrUsernameAlreadyUsed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
		Role:      domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		// The pre-checks race with concurrent registrations; the unique
		// index is the backstop. Re-probe to name the conflicting field.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.userRepository.GetUserByEmail(ctx, req.Email); lookupErr == nil {
				return domain.UserResponse{}, domain.ErrEmailAlreadyUsed
			}
			return domain.UserResponse{}, domain.ErrUsernameAlreadyUsed
		}
		return domain.UserResponse{}, err
	}

	s.sendVerificationEmail(user)

	return toUserResponse(user, false), nil
}

func (s *userService) sendVerificationEmail(user *entities.User) {
	token, err := s.jwtService.GenerateTokenMail(
		map[string]any{"user_id": user.ID.String()},
		24*time.Hour,
	)
	if err != nil {
		log.Printf("failed to generate verification token: %v", err)
		return
	}

	link := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Confirm your email address by following <a href=%q>this link</a>.</p>",
		user.FirstName, link,
	)
	if err := mailing.SendMail(user.Email, "Confirm your email", body); err != nil {
		log.Printf("failed to send verification email: %v", err)
	}
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateTokenMail(token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.IsVerified = true
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)

	return domain.LoginResponse{
		Token: token,
		User:  toUserResponse(user, false),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user, false), nil
}

// isSubscribed resolves the viewer-relative flag; an anonymous or malformed
// viewer is simply not subscribed, never an error.
func (s *userService) isSubscribed(ctx context.Context, viewerID string, authorID uuid.UUID) bool {
	if viewerID == "" {
		return false
	}
	viewerUUID, err := uuid.Parse(viewerID)
	if err != nil {
		return false
	}
	subscribed, err := s.userRepository.IsSubscribed(ctx, viewerUUID, authorID)
	if err != nil {
		return false
	}
	return subscribed
}

func (s *userService) GetUser(ctx context.Context, targetID, viewerID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user, s.isSubscribed(ctx, viewerID, user.ID)), nil
}

func (s *userService) GetUsers(ctx context.Context, page, limit int, viewerID string) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, toUserResponse(user, s.isSubscribed(ctx, viewerID, user.ID)))
	}

	return result, count, nil
}

func (s *userService) Subscribe(ctx context.Context, authorID, userID string) (domain.SubscriptionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}

	author, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	if author.ID == userUUID {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscribe
	}

	exists, err := s.userRepository.IsSubscribed(ctx, userUUID, author.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if exists {
		return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
	}

	if err := s.userRepository.CreateSubscription(ctx, userUUID, author.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	recipes, total, err := s.userRepository.GetRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	return BuildSubscriptionResponse(author, recipes, total, 0, false, true), nil
}

func (s *userService) Unsubscribe(ctx context.Context, authorID, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.ErrParseUUID
	}

	removed, err := s.userRepository.DeleteSubscription(ctx, userUUID, authorUUID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, page, limit int, recipesLimit string) ([]domain.SubscriptionResponse, int64, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, domain.ErrParseUUID
	}

	authors, count, err := s.userRepository.GetSubscribedAuthors(ctx, userUUID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	capN, limited := ParseRecipesLimit(recipesLimit)

	result := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		recipes, total, err := s.userRepository.GetRecipesByAuthor(ctx, author.ID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, BuildSubscriptionResponse(author, recipes, total, capN, limited, true))
	}

	return result, count, nil
}
