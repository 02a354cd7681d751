package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentora-go-api/internal/models"
)

func TestUserRepositoryFindByNamesAndRoleFiltersRole(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	require.NoError(t, db.Create(&models.User{Name: "Alice", Email: "alice@example.com", Password: "x", Role: models.RoleStudent}).Error)
	require.NoError(t, db.Create(&models.User{Name: "Bob", Email: "bob@example.com", Password: "x", Role: models.RoleExpert}).Error)

	students, err := repo.FindByNamesAndRole(context.Background(), []string{"Alice", "Bob"}, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "Alice", students[0].Name)
}

func TestUserRepositoryListByRoleOrdersByName(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	require.NoError(t, db.Create(&models.User{Name: "Zed", Email: "zed@example.com", Password: "x", Role: models.RoleStudent}).Error)
	require.NoError(t, db.Create(&models.User{Name: "Amy", Email: "amy@example.com", Password: "x", Role: models.RoleStudent}).Error)

	students, err := repo.ListByRole(context.Background(), models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "Amy", students[0].Name)
	require.Equal(t, "Zed", students[1].Name)
}
