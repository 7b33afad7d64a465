package usecase

import (
	"context"
	"sync"
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/pkg/genai"
	"travel-agency/pkg/mailer"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

// Fakes embed the repository interface so unused methods panic if reached.

type fakeUserRepo struct {
	repository.UserRepository
	byEmail map[string]*entity.User
	created []*entity.User
	nextID  int64
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{byEmail: map[string]*entity.User{}, nextID: 100}
	for _, u := range users {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.byEmail[u.Email] = u
	r.created = append(r.created, u)
	return nil
}

type fakeTourRepo struct {
	repository.TourRepository
	dates   map[int64]*entity.AvailableDate
	tours   map[int64]*entity.TourAggregate
	summary []*entity.TourSummary
}

func (r *fakeTourRepo) FindDate(_ context.Context, id int64) (*entity.AvailableDate, error) {
	return r.dates[id], nil
}

func (r *fakeTourRepo) FindByID(_ context.Context, id int64) (*entity.TourAggregate, error) {
	return r.tours[id], nil
}

func (r *fakeTourRepo) Search(_ context.Context, _ repository.TourFilter) ([]*entity.TourSummary, error) {
	return r.summary, nil
}

type fakeReservationRepo struct {
	repository.ReservationRepository
	createErr     error
	created       *entity.Reservation
	travelers     []entity.Traveler
	details       map[int64]*entity.ReservationDetail
	list          []*entity.ReservationDetail
	listUserID    *int64
	expired       bool
	expiredBefore time.Time
	approveErr    error
	rejectErr     error
	rejected      *repository.RejectResult
}

func (r *fakeReservationRepo) Create(_ context.Context, res *entity.Reservation, travelers []entity.Traveler) error {
	if r.createErr != nil {
		return r.createErr
	}
	res.ID = 12
	res.Status = entity.ReservationPending
	res.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r.created = res
	r.travelers = travelers
	return nil
}

func (r *fakeReservationRepo) FindByID(_ context.Context, id int64) (*entity.ReservationDetail, error) {
	return r.details[id], nil
}

func (r *fakeReservationRepo) List(_ context.Context, userID *int64) ([]*entity.ReservationDetail, error) {
	r.listUserID = userID
	return r.list, nil
}

func (r *fakeReservationRepo) ExpirePending(_ context.Context, today time.Time) (int64, error) {
	r.expired = true
	r.expiredBefore = today
	return 0, nil
}

func (r *fakeReservationRepo) Approve(context.Context, int64) error {
	return r.approveErr
}

func (r *fakeReservationRepo) Reject(context.Context, int64) (*repository.RejectResult, error) {
	if r.rejectErr != nil {
		return nil, r.rejectErr
	}
	return r.rejected, nil
}

type fakeContactRepo struct {
	repository.ContactRepository
	contacts map[int64]*entity.Contact
	replied  []int64
}

func (r *fakeContactRepo) FindByID(_ context.Context, id int64) (*entity.Contact, error) {
	return r.contacts[id], nil
}

func (r *fakeContactRepo) MarkReplied(_ context.Context, id int64) error {
	r.replied = append(r.replied, id)
	return nil
}

type fakeFAQRepo struct {
	repository.FAQRepository
	faqs []*entity.FAQ
}

func (r *fakeFAQRepo) FindAll(context.Context) ([]*entity.FAQ, error) {
	return r.faqs, nil
}

type fakeReviewRepo struct {
	repository.ReviewRepository
	reviews []*entity.Review
}

func (r *fakeReviewRepo) FindByTourID(context.Context, int64) ([]*entity.Review, error) {
	return r.reviews, nil
}

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	review.ID = int64(len(r.reviews) + 1)
	r.reviews = append(r.reviews, review)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	keys   []string
	events []ReservationEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	if ev, ok := payload.(ReservationEvent); ok {
		p.events = append(p.events, ev)
	}
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeChatModel struct {
	enabled bool
	reply   string
	err     error
	system  string
	turns   []genai.Turn
}

func (m *fakeChatModel) Enabled() bool { return m.enabled }

func (m *fakeChatModel) Generate(_ context.Context, system string, turns []genai.Turn) (string, error) {
	m.system, m.turns = system, turns
	return m.reply, m.err
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{Name: "Atlas Travel"},
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}
}

var nop = zap.NewNop()
