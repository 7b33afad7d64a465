package adaptor

import (
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Tour        *TourHandler
	Reservation *ReservationHandler
	Review      *ReviewHandler
	Blog        *BlogHandler
	FAQ         *FAQHandler
	Contact     *ContactHandler
	Stats       *StatsHandler
	Mail        *MailHandler
	Chat        *ChatHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, config.JWT.CookieSecure, log),
		User:        NewUserHandler(service.User, log),
		Tour:        NewTourHandler(service.Tour, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Review:      NewReviewHandler(service.Review, log),
		Blog:        NewBlogHandler(service.Blog, log),
		FAQ:         NewFAQHandler(service.FAQ, log),
		Contact:     NewContactHandler(service.Contact, log),
		Stats:       NewStatsHandler(service.Stats, log),
		Mail:        NewMailHandler(service.Mail, log),
		Chat:        NewChatHandler(service.Chat, log),
	}
}
