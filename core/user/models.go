package user

import (
	"context"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/hustle/core"
)

type User struct {
	ID                   int       `json:"id"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	PasswordHash         []byte    `json:"-"`
	Tier                 core.Tier `json:"tier"`
	StripeCustomerID     *string   `json:"stripeCustomerId"`
	StripeSubscriptionID *string   `json:"stripeSubscriptionId"`
	CreatedAt            time.Time `json:"createdAt"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) Address() mail.Address {
	return mail.Address{Name: u.Username, Address: u.Email}
}

// HasBillingCustomer reports whether the user is already linked to a billing-provider customer.
func (u User) HasBillingCustomer() bool {
	return u.StripeCustomerID != nil && *u.StripeCustomerID != ""
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string    `json:"username" validate:"required,min=3,alphanum_"`
	Email    string    `json:"email" validate:"required,email"`
	Password string    `json:"password" validate:"required"`
	Tier     core.Tier `json:"tier" validate:"omitempty,usertier"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Tier = core.Tier(core.CleanString(string(nu.Tier), true /* lower */))

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, nu.Username, nu.Email)
}

// UpgradeTier is the payload to change a User's subscription tier.
type UpgradeTier struct {
	Tier core.Tier `json:"tier" validate:"required,usertier"`
}

func (ut *UpgradeTier) Validate(validate *validator.Validate) error {
	ut.Tier = core.Tier(core.CleanString(string(ut.Tier), true /* lower */))
	return validate.Struct(ut)
}

// SetPassword is used to reset a User's password.
type SetPassword struct {
	Username string `json:"-"`
	Email    string `json:"-"`
	Password string `json:"password" validate:"required"`
}

func (sp SetPassword) Validate(validate *validator.Validate) error { return validate.Struct(sp) }
