package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/pkg/database"
)

type UserRepository struct {
	db      *sql.DB
	grammar database.Grammar
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db:      db,
		grammar: database.NewMySQLGrammar(),
	}
}

func (r *UserRepository) Create(user *models.User) (int64, error) {
	result, err := database.NewBuilder(r.db, r.grammar).
		Table("users").
		ExecInsert(map[string]interface{}{
			"name":       user.Name,
			"email":      user.Email,
			"password":   user.Password,
			"role":       user.Role,
			"is_banned":  user.IsBanned,
			"banned_at":  user.BannedAt,
			"created_at": user.CreatedAt,
			"updated_at": user.UpdatedAt,
		})

	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

func (r *UserRepository) FindByID(id int64) (*models.User, error) {
	var user models.User

	err := database.NewBuilder(r.db, r.grammar).
		Table("users").
		Where("id", "=", id).
		WhereNull("deleted_at").
		First(&user)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User

	err := database.NewBuilder(r.db, r.grammar).
		Table("users").
		Where("email", "=", email).
		WhereNull("deleted_at").
		First(&user)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) GetAll(page, perPage int) ([]models.User, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var users []models.User

	err := database.NewBuilder(r.db, r.grammar).
		Table("users").
		WhereNull("deleted_at").
		OrderBy("id", "ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Get(&users)

	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Update(user *models.User) error {
	user.UpdatedAt = time.Now()

	result, err := database.NewBuilder(r.db, r.grammar).
		Table("users").
		Where("id", "=", user.ID).
		WhereNull("deleted_at").
		ExecUpdate(map[string]interface{}{
			"name":       user.Name,
			"email":      user.Email,
			"password":   user.Password,
			"role":       user.Role,
			"is_banned":  user.IsBanned,
			"banned_at":  user.BannedAt,
			"updated_at": user.UpdatedAt,
		})

	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
