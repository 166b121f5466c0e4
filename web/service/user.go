package service

import (
	"errors"

	"github.com/cinecache/cinecache/database"
	"github.com/cinecache/cinecache/database/model"
	"github.com/cinecache/cinecache/util/crypto"

	"gorm.io/gorm"
)

var (
	ErrAlreadySetup = errors.New("initial user already created")
	ErrUnknownRole  = errors.New("unknown role")
)

// UserUpdate carries a partial user update. Nil fields preserve the stored value.
type UserUpdate struct {
	Name     *string
	Email    *string
	Username *string
	Password *string
}

type UserService struct{}

func (s *UserService) GetUsers() ([]model.User, error) {
	db := database.GetDB()
	var users []model.User
	err := db.Model(model.User{}).Preload("Roles").Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).Preload("Roles").First(user, id).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).
		Preload("Roles").
		Where("username = ?", username).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) CountUsers() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.User{}).Count(&count).Error
	return count, err
}

// CreateUser hashes the password and stores a new user holding the named
// role. An unrecognized role name is a validation failure, not a 500.
func (s *UserService) CreateUser(name string, email string, username string, password string, roleName string) (*model.User, error) {
	if roleName == "" {
		roleName = model.RoleUser
	}

	db := database.GetDB()
	role := &model.Role{}
	err := db.Where("name = ?", roleName).First(role).Error
	if database.IsNotFound(err) {
		return nil, ErrUnknownRole
	} else if err != nil {
		return nil, err
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Roles:        []model.Role{*role},
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// SetupFirstUser creates the bootstrap admin account. Allowed exactly while
// the users table is empty; any existing user makes it forbidden.
func (s *UserService) SetupFirstUser(name string, email string, username string, password string) (*model.User, error) {
	count, err := s.CountUsers()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadySetup
	}
	return s.CreateUser(name, email, username, password, model.RoleAdmin)
}

// UpdateUser applies a partial update: only non-nil fields overwrite.
func (s *UserService) UpdateUser(id int, update UserUpdate) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	if err := db.First(user, id).Error; err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Password != nil {
		hash, err := crypto.HashPasswordAsBcrypt(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user row only. Associated user_media rows are left
// in place; there is no cascade.
func (s *UserService) DeleteUser(id int) error {
	db := database.GetDB()
	user := &model.User{}
	if err := db.First(user, id).Error; err != nil {
		return err
	}
	if err := db.Model(user).Association("Roles").Clear(); err != nil {
		return err
	}
	return db.Delete(user).Error
}

// UpdateFirstUser resets the first user's credentials from the CLI.
func (s *UserService) UpdateFirstUser(username string, password string) error {
	if username == "" {
		return errors.New("username can not be empty")
	} else if password == "" {
		return errors.New("password can not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user := &model.User{}
	err = db.Model(model.User{}).First(user).Error
	if err != nil && !database.IsNotFound(err) {
		return err
	}
	if database.IsNotFound(err) {
		return gorm.ErrRecordNotFound
	}
	user.Username = username
	user.PasswordHash = hash
	return db.Save(user).Error
}
