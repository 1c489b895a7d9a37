package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens. Se inyecta en el arranque
// en lugar de leerla de estado global de proceso.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: signup, login, logout (revocación) y perfil.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RevokedTokenRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokenRepo repository.RevokedTokenRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokenRepo: tokenRepo, jwtCfg: jwtCfg}
}

// Signup crea un usuario: hashea el password con bcrypt y persiste.
// Devuelve ErrUsernameAlreadyExists si el username ya está registrado.
func (uc *AuthUseCase) Signup(in dto.SignupRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica username/password, genera el JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *toUserResponse(user),
	}, nil
}

// Logout agrega el token a la lista de revocación; a partir de aquí el middleware
// lo rechaza aunque no haya expirado.
func (uc *AuthUseCase) Logout(token string) error {
	return uc.tokenRepo.Add(token)
}

// Profile devuelve username y rol del usuario autenticado.
func (uc *AuthUseCase) Profile(userID string) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.ProfileResponse{Username: user.Username, Role: user.Role}, nil
}

// ListUsers lista todos los usuarios (solo admin, lo decide el middleware RBAC).
func (uc *AuthUseCase) ListUsers() ([]dto.UserResponse, error) {
	list, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return items, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
