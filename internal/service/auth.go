package service

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
	jwtpkg "github.com/IGORMASL/ReverseGanttDiagram-sub000/pkg/jwt"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	jwtExpire int
}

func NewAuthService(db *gorm.DB, jwtSecret string, jwtExpire int) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret, jwtExpire: jwtExpire}
}

func (s *AuthService) Register(name, email, password string) (*model.User, string, time.Time, error) {
	var count int64
	s.db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, "", time.Time{}, fmt.Errorf("40901:email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, "", time.Time{}, fmt.Errorf("create user: %w", err)
	}

	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.IsAdmin, s.jwtExpire)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}
	return user, token, expireAt, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, time.Time, error) {
	var user model.User
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, fmt.Errorf("40103:invalid email or password")
		}
		return nil, "", time.Time{}, result.Error
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", time.Time{}, fmt.Errorf("40103:invalid email or password")
	}

	now := time.Now()
	s.db.Model(&user).Update("last_login_at", &now)

	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.IsAdmin, s.jwtExpire)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}
	return &user, token, expireAt, nil
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) RefreshToken(userID uint) (string, time.Time, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return "", time.Time{}, err
	}
	return jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.IsAdmin, s.jwtExpire)
}

func (s *AuthService) UpdateProfile(userID uint, name, password *string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) SetAdmin(userID uint, isAdmin bool) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) ListUsers(keyword string, isAdmin *bool, page, pageSize int) ([]model.User, int64, error) {
	query := s.db.Model(&model.User{})
	if keyword != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	if isAdmin != nil {
		query = query.Where("is_admin = ?", *isAdmin)
	}

	var total int64
	query.Count(&total)

	var users []model.User
	if err := query.Order("created_at desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SearchUsers feeds member pickers; excludeTeamID hides users already on
// the team.
func (s *AuthService) SearchUsers(keyword string, excludeTeamID *uint, limit int) ([]model.User, error) {
	query := s.db.Model(&model.User{})
	if keyword != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	if excludeTeamID != nil {
		query = query.Where("id NOT IN (SELECT user_id FROM team_members WHERE team_id = ?)", *excludeTeamID)
	}

	var users []model.User
	if err := query.Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
