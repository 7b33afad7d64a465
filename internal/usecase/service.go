package usecase

import (
	"travel-agency/internal/data/repository"
	"travel-agency/pkg/broker"
	"travel-agency/pkg/mailer"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Tour        TourService
	Reservation ReservationService
	Review      ReviewService
	Blog        BlogService
	FAQ         FAQService
	Contact     ContactService
	Stats       StatsService
	Mail        MailService
	Chat        ChatService
}

// Deps are the outbound adapters the services talk to.
type Deps struct {
	Mailer mailer.Mailer
	Events broker.Publisher
	Chat   ChatModel
}

func NewService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		User:        NewUserService(repo.User, log),
		Tour:        NewTourService(repo, log),
		Reservation: NewReservationService(repo, deps.Events, log),
		Review:      NewReviewService(repo, log),
		Blog:        NewBlogService(repo, log),
		FAQ:         NewFAQService(repo.FAQ, log),
		Contact:     NewContactService(repo.Contact, log),
		Stats:       NewStatsService(repo.Stats, log),
		Mail:        NewMailService(repo, deps.Mailer, config.App.Name, log),
		Chat:        NewChatService(repo, deps.Chat, config.App.Name, log),
	}
}
