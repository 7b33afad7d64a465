package usecase

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/pkg/mailer"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = map[string]*template.Template{
	"reply":   parseMailTemplate("reply"),
	"approve": parseMailTemplate("approve"),
	"reject":  parseMailTemplate("reject"),
}

func parseMailTemplate(name string) *template.Template {
	return template.Must(template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
}

type MailService interface {
	ReplyToContact(ctx context.Context, req *request.ReplyMailRequest) error
	SendApproval(ctx context.Context, req *request.ApproveMailRequest) error
	SendRejection(ctx context.Context, req *request.RejectMailRequest) error
}

type mailService struct {
	repo    *repository.Repository
	mailer  mailer.Mailer
	appName string
	log     *zap.Logger
}

func NewMailService(repo *repository.Repository, m mailer.Mailer, appName string, log *zap.Logger) MailService {
	return &mailService{
		repo:    repo,
		mailer:  m,
		appName: appName,
		log:     log.With(zap.String("service", "mail")),
	}
}

type mailData struct {
	AppName string
	Subject string
	Name    string

	// reply
	Topic   string
	Message string

	// reservation
	Reference  string
	TourTitle  string
	StartDate  string
	EndDate    string
	Travelers  int
	TotalPrice float64
	Reason     string
}

func (s *mailService) ReplyToContact(ctx context.Context, req *request.ReplyMailRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reply validation failed", zap.Any("errors", errs))
		return validationError(errs)
	}

	contact, err := s.repo.Contact.FindByID(ctx, req.ContactID)
	if err != nil {
		return fmt.Errorf("find contact: %w", err)
	}
	if contact == nil {
		return newError(ErrNotFound, "contact %d not found", req.ContactID)
	}

	data := mailData{
		Subject: req.Subject,
		Name:    contact.Name,
		Topic:   contact.Subject,
		Message: req.Message,
	}
	if err := s.send(ctx, "reply", contact.Email, data); err != nil {
		return err
	}

	if err := s.repo.Contact.MarkReplied(ctx, contact.ID); err != nil && !errors.Is(err, ErrNotFound) {
		// mail already sent
		s.log.Warn("Failed to mark contact replied", zap.Error(err), zap.Int64("contact_id", contact.ID))
	}

	return nil
}

func (s *mailService) SendApproval(ctx context.Context, req *request.ApproveMailRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	detail, err := s.reservation(ctx, req.ReservationID)
	if err != nil {
		return err
	}

	data := reservationMailData(detail)
	data.Subject = fmt.Sprintf("Your reservation %s is confirmed", data.Reference)
	return s.send(ctx, "approve", detail.Travelers[0].Email, data)
}

func (s *mailService) SendRejection(ctx context.Context, req *request.RejectMailRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	detail, err := s.reservation(ctx, req.ReservationID)
	if err != nil {
		return err
	}

	data := reservationMailData(detail)
	data.Subject = fmt.Sprintf("Your reservation %s could not be accepted", data.Reference)
	data.Reason = req.Reason
	return s.send(ctx, "reject", detail.Travelers[0].Email, data)
}

// reservation loads a reservation that has someone to write to.
func (s *mailService) reservation(ctx context.Context, id int64) (*entity.ReservationDetail, error) {
	detail, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if detail == nil {
		return nil, newError(ErrNotFound, "reservation %d not found", id)
	}
	if len(detail.Travelers) == 0 {
		return nil, newError(ErrInvalidInput, "reservation %d has no travelers", id)
	}
	return detail, nil
}

func reservationMailData(d *entity.ReservationDetail) mailData {
	first := d.Travelers[0]
	return mailData{
		Name:       first.FirstName + " " + first.LastName,
		Reference:  utils.BookingReference(d.ID, d.CreatedAt),
		TourTitle:  d.TourTitle,
		StartDate:  d.StartDate.Format(utils.DateLayout),
		EndDate:    d.EndDate.Format(utils.DateLayout),
		Travelers:  d.TravelerCount,
		TotalPrice: d.Price * float64(d.TravelerCount),
	}
}

func (s *mailService) send(ctx context.Context, kind, to string, data mailData) error {
	data.AppName = s.appName

	var body bytes.Buffer
	if err := mailTemplates[kind].ExecuteTemplate(&body, "layout", data); err != nil {
		return fmt.Errorf("render %s mail: %w", kind, err)
	}

	if err := s.mailer.Send(ctx, mailer.Message{To: to, Subject: data.Subject, HTML: body.String()}); err != nil {
		s.log.Error("Mail delivery failed", zap.Error(err), zap.String("kind", kind), zap.String("to", to))
		return newError(ErrUpstream, "mail delivery failed")
	}

	s.log.Info("Mail sent", zap.String("kind", kind), zap.String("to", to))
	return nil
}
