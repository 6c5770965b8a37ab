package crm

import (
	"context"
	"fmt"
	"strings"

	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/internal/repository"
	"go.uber.org/zap"
)

// CreateCustomer validates and stores a single customer.
func (s *Service) CreateCustomer(ctx context.Context, in CustomerInput) CustomerResult {
	customer, err := s.createCustomer(ctx, s.store, in)
	if err != nil {
		logRejection("create customer rejected", err, zap.String("email", in.Email))
		return CustomerResult{Success: false, Message: domain.Message(err)}
	}

	zap.L().Info("customer created",
		zap.Int64("id", customer.ID),
		zap.String("email", customer.Email))
	s.publish(TopicCustomerCreated, *customer)
	return CustomerResult{Success: true, Message: msgCreated, Customer: customer}
}

// BulkCreateCustomers creates each candidate independently. A failed candidate
// never stops the batch, and each uniqueness check sees the customers created
// earlier in the same batch.
func (s *Service) BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) BulkCustomerResult {
	result := BulkCustomerResult{
		Customers: make([]domain.Customer, 0, len(inputs)),
		Errors:    make([]string, 0),
	}

	for i, in := range inputs {
		customer, err := s.createCustomer(ctx, s.store, in)
		if err != nil {
			label := strings.TrimSpace(in.Name)
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", label, domain.Message(err)))
			logRejection("bulk customer rejected", err, zap.Int("index", i), zap.String("email", in.Email))
			continue
		}
		result.Customers = append(result.Customers, *customer)
		s.publish(TopicCustomerCreated, *customer)
	}

	result.Success = len(result.Errors) == 0
	zap.L().Info("bulk customer creation finished",
		zap.Int("total", len(inputs)),
		zap.Int("created", len(result.Customers)),
		zap.Int("failed", len(result.Errors)))
	return result
}

// DeleteCustomer removes a customer; its orders are kept with no customer.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.store.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	zap.L().Info("customer deleted", zap.Int64("id", id))
	s.publish(TopicCustomerDeleted, id)
	return nil
}

func (s *Service) createCustomer(ctx context.Context, store repository.Store, in CustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError(msgNameRequired)
	}
	email := NormalizeEmail(in.Email)
	if email == "" {
		return nil, domain.NewValidationError(msgEmailRequired)
	}
	if !s.validator.ValidateEmailFormat(email) {
		return nil, domain.NewValidationError(msgInvalidEmail)
	}
	if err := s.validator.checkEmailAvailable(ctx, store, email); err != nil {
		return nil, err
	}
	phone := strings.TrimSpace(in.Phone)
	if !ValidatePhoneFormat(phone) {
		return nil, domain.NewValidationError(msgInvalidPhone)
	}

	customer := &domain.Customer{
		Name:  name,
		Email: email,
		Phone: phone,
	}
	// the unique index still guards against a concurrent insert of the same email
	if err := store.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// logRejection logs business rejections at warn and storage failures at error.
func logRejection(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if isStorageError(err) {
		zap.L().Error(msg, fields...)
		return
	}
	zap.L().Warn(msg, fields...)
}
