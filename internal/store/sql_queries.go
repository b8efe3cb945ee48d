package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-auth-service/models"
)

const usersTable = "users"

var (
	userColumns         = []string{"id", "full_name", "email", "created_at", "updated_at"}
	userColumnsWithHash = []string{"id", "full_name", "email", "created_at", "updated_at", "password_hash"}
)

// buildCreateUserQuery builds the INSERT for a fully populated user.
func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.
		Insert(usersTable).
		Columns("id", "full_name", "email", "password_hash", "created_at", "updated_at").
		Values(user.ID, user.FullName, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildFindUserQuery builds a single-row SELECT matching column = value.
// password_hash is selected last and only when includeHash is set.
func buildFindUserQuery(b sq.StatementBuilderType, column string, value any, includeHash bool) (string, []any, error) {
	columns := userColumns
	if includeHash {
		columns = userColumnsWithHash
	}

	query, args, err := b.
		Select(columns...).
		From(usersTable).
		Where(sq.Eq{column: value}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildCountUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	query, args, err := b.Select("COUNT(*)").From(usersTable).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
