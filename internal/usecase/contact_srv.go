package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type ContactService interface {
	CreateContact(ctx context.Context, req *request.ContactRequest) (*response.ContactResponse, error)
	GetContacts(ctx context.Context) ([]response.ContactResponse, error)
	DeleteContact(ctx context.Context, id int64) error
}

type contactService struct {
	contactRepo repository.ContactRepository
	log         *zap.Logger
}

func NewContactService(contactRepo repository.ContactRepository, log *zap.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		log:         log.With(zap.String("service", "contact")),
	}
}

func (s *contactService) CreateContact(ctx context.Context, req *request.ContactRequest) (*response.ContactResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Contact validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	contact := &entity.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   req.Phone,
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.log.Info("Contact message received", zap.Int64("contact_id", contact.ID))
	resp := response.ContactToResponse(contact)
	return &resp, nil
}

func (s *contactService) GetContacts(ctx context.Context) ([]response.ContactResponse, error) {
	contacts, err := s.contactRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	resp := make([]response.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		resp = append(resp, response.ContactToResponse(c))
	}
	return resp, nil
}

func (s *contactService) DeleteContact(ctx context.Context, id int64) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return newError(ErrNotFound, "contact %d not found", id)
		}
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
