package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/user"
)

const uniqueViolation = "23505"

const userCols = `id, username, email, password_hash, tier, stripe_customer_id, stripe_subscription_id, created_at`

type userRow struct {
	ID                   int         `db:"id"`
	Username             string      `db:"username"`
	Email                string      `db:"email"`
	PasswordHash         []byte      `db:"password_hash"`
	Tier                 string      `db:"tier"`
	StripeCustomerID     null.String `db:"stripe_customer_id"`
	StripeSubscriptionID null.String `db:"stripe_subscription_id"`
	CreatedAt            time.Time   `db:"created_at"`
}

func newUserRow(u user.User) userRow {
	return userRow{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		PasswordHash:         u.PasswordHash,
		Tier:                 string(u.Tier),
		StripeCustomerID:     null.StringFromPtr(u.StripeCustomerID),
		StripeSubscriptionID: null.StringFromPtr(u.StripeSubscriptionID),
		CreatedAt:            u.CreatedAt,
	}
}

func (r userRow) toUser() user.User {
	return user.User{
		ID:                   r.ID,
		Username:             r.Username,
		Email:                r.Email,
		PasswordHash:         r.PasswordHash,
		Tier:                 core.Tier(r.Tier),
		StripeCustomerID:     r.StripeCustomerID.Ptr(),
		StripeSubscriptionID: r.StripeSubscriptionID.Ptr(),
		CreatedAt:            utc(r.CreatedAt),
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) one(ctx context.Context, query string, args ...interface{}) (user.User, error) {
	var row userRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			switch pqErr.Constraint {
			case "users_username_key":
				return user.User{}, user.ErrUsernameExists
			case "users_email_key":
				return user.User{}, user.ErrEmailExists
			}
		}
		return user.User{}, errors.Wrap(err, "querying user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) CheckUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	ids := make([]int64, 0, len(excludedUsers))
	for _, u := range excludedUsers {
		ids = append(ids, int64(u.ID))
	}

	var rows []userRow
	q := `SELECT ` + userCols + ` FROM users WHERE (username = $1 OR email = $2) AND NOT (id = ANY($3))`
	if err := repo.db.SelectContext(ctx, &rows, q, username, email, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	for _, r := range rows {
		if r.Username == username {
			return user.ErrUsernameExists
		}
	}
	if len(rows) > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) Create(ctx context.Context, usr user.User) (user.User, error) {
	q := `INSERT INTO users (username, email, password_hash, tier, stripe_customer_id, stripe_subscription_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + userCols
	r := newUserRow(usr)
	return repo.one(ctx, q, r.Username, r.Email, r.PasswordHash, r.Tier, r.StripeCustomerID, r.StripeSubscriptionID, r.CreatedAt)
}

func (repo *userRepository) List(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+userCols+` FROM users ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "listing users")
	}
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.toUser())
	}
	return users, nil
}

func (repo *userRepository) Get(ctx context.Context, id int) (user.User, error) {
	return repo.one(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
}

func (repo *userRepository) FindByUsername(ctx context.Context, username string) (user.User, error) {
	return repo.one(ctx, `SELECT `+userCols+` FROM users WHERE username = $1`, username)
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return repo.one(ctx, `SELECT `+userCols+` FROM users WHERE email = $1`, email)
}

func (repo *userRepository) Update(ctx context.Context, usr user.User) (user.User, error) {
	// only save set fields
	var hash interface{}
	if usr.PasswordHash != nil {
		hash = usr.PasswordHash
	}
	r := newUserRow(usr)
	q := `UPDATE users SET username = $2, email = $3, tier = $4,
			password_hash = COALESCE($5, password_hash),
			stripe_customer_id = COALESCE($6, stripe_customer_id),
			stripe_subscription_id = COALESCE($7, stripe_subscription_id)
		WHERE id = $1 RETURNING ` + userCols
	return repo.one(ctx, q, r.ID, r.Username, r.Email, r.Tier, hash, r.StripeCustomerID, r.StripeSubscriptionID)
}

func (repo *userRepository) UpdateTier(ctx context.Context, id int, tier core.Tier) (user.User, error) {
	return repo.one(ctx, `UPDATE users SET tier = $2 WHERE id = $1 RETURNING `+userCols, id, string(tier))
}

func (repo *userRepository) UpdateBillingInfo(ctx context.Context, id int, customerID, subscriptionID string) (user.User, error) {
	q := `UPDATE users SET stripe_customer_id = $2, stripe_subscription_id = $3 WHERE id = $1 RETURNING ` + userCols
	return repo.one(ctx, q, id, customerID, subscriptionID)
}

func (repo *userRepository) Delete(ctx context.Context, id int) (bool, error) {
	return deleted(repo.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
}
