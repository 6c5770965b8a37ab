package crm

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/internal/repository"
	"go.uber.org/zap"
)

// phonePattern accepts an optional +CC (1-3 digits), then 3-3-4 digit groups
// optionally separated by a space, dash or dot. The area code may be parenthesised.
var phonePattern = regexp.MustCompile(`^(\+\d{1,3})?[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`)

// ValidatePhoneFormat reports whether phone is empty or matches phonePattern.
func ValidatePhoneFormat(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validator checks customer input against the store and the format rules.
type Validator struct {
	store    repository.Store
	validate *validator.Validate
}

func NewValidator(store repository.Store) *Validator {
	return &Validator{store: store, validate: validator.New()}
}

// ValidateEmailUniqueness reports whether no existing customer uses email.
// A storage failure is logged and reported as not unique.
func (v *Validator) ValidateEmailUniqueness(ctx context.Context, email string) bool {
	err := v.checkEmailAvailable(ctx, v.store, email)
	if err != nil && !errors.Is(err, domain.ErrValidation) {
		zap.L().Error("email uniqueness check failed", zap.String("email", email), zap.Error(err))
	}
	return err == nil
}

// ValidatePhoneFormat is the method form of the package level function.
func (v *Validator) ValidatePhoneFormat(phone string) bool {
	return ValidatePhoneFormat(phone)
}

// ValidateEmailFormat reports whether email is a syntactically valid address.
func (v *Validator) ValidateEmailFormat(email string) bool {
	return v.validate.Var(email, "required,email") == nil
}

// checkEmailAvailable queries store, which may be a transaction bound store.
func (v *Validator) checkEmailAvailable(ctx context.Context, store repository.Store, email string) error {
	_, err := store.FindCustomerByEmail(ctx, NormalizeEmail(email))
	switch {
	case err == nil:
		return domain.NewValidationError(msgEmailExists)
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}
