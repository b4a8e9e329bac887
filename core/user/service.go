package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/hustle/core"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("user")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUsernameExists = errors.New("a user with this username already exists")
)

type (
	Repository interface {
		CheckUniqueness(ctx context.Context, username, email string, excludedUsers ...User) error
		Create(ctx context.Context, usr User) (User, error)
		List(ctx context.Context) ([]User, error)
		Get(ctx context.Context, id int) (User, error)
		FindByUsername(ctx context.Context, username string) (User, error)
		FindByEmail(ctx context.Context, email string) (User, error)
		// Update saves username, email and tier; PasswordHash and billing references only when set.
		Update(ctx context.Context, usr User) (User, error)
		UpdateTier(ctx context.Context, id int, tier core.Tier) (User, error)
		UpdateBillingInfo(ctx context.Context, id int, customerID, subscriptionID string) (User, error)
		Delete(ctx context.Context, id int) (bool, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) checkUniqueness(ctx context.Context, uname, email string, exclUsers ...User) error {
	return uniquenessError(svc.repo.CheckUniqueness(ctx, uname, email, exclUsers...))
}

// uniquenessError turns ErrUsernameExists and ErrEmailExists into a field validation error.
func uniquenessError(err error) error {
	var field string
	switch err {
	case nil:
		return nil
	case ErrUsernameExists:
		field = "username"
	case ErrEmailExists:
		field = "email"
	default:
		return err
	}
	return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	tier := nu.Tier
	if tier == "" {
		tier = core.TierFree
	}
	usr := User{
		Username:  nu.Username,
		Email:     nu.Email,
		Tier:      tier,
		CreatedAt: time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, pkgerrors.Wrap(err, "hashing password")
	}
	usr, err := svc.repo.Create(ctx, usr)
	if err != nil {
		return User{}, uniquenessError(err)
	}
	return usr, nil
}

func (svc *Service) List(ctx context.Context) ([]User, error) {
	return svc.repo.List(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.FindByUsername(ctx, core.CleanString(uname, true /* lower */))
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.FindByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) GetByUsernameOrEmail(ctx context.Context, uname string) (User, error) {
	usr, err := svc.GetByUsername(ctx, uname)
	if pkgerrors.Cause(err) == ErrNotFound {
		return svc.GetByEmail(ctx, uname)
	}
	return usr, err
}

// UpgradeTier moves the user to the given tier and notifies them when they land on a paid tier.
func (svc *Service) UpgradeTier(ctx context.Context, usr User, tier core.Tier) (User, error) {
	prevTier := usr.Tier
	usr, err := svc.repo.UpdateTier(ctx, usr.ID, tier)
	if err != nil {
		return User{}, pkgerrors.Wrap(err, "updating tier")
	}
	if tier.IsPaid() && tier != prevTier && svc.mailSvc != nil {
		svc.sendUpgradeMail(usr)
	}
	return usr, nil
}

func (svc *Service) UpdateBillingInfo(ctx context.Context, id int, customerID, subscriptionID string) (User, error) {
	return svc.repo.UpdateBillingInfo(ctx, id, customerID, subscriptionID)
}

func (svc *Service) SetPassword(ctx context.Context, usr User, pwd string) (User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, pkgerrors.Wrap(err, "hashing password")
	}
	return svc.repo.Update(ctx, usr)
}

func (svc *Service) Delete(ctx context.Context, id int) (bool, error) {
	return svc.repo.Delete(ctx, id)
}

func (svc *Service) sendUpgradeMail(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{usr.Address()},
		Subject:      "Welcome to " + strings.Title(string(usr.Tier)),
		TemplateName: "upgrade",
		TemplateData: map[string]interface{}{
			"Username": usr.Username,
			"Tier":     usr.Tier,
		},
	})
}
