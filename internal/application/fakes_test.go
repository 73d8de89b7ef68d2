package application

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
	repo "github.com/oksasatya/go-travel-assistant/internal/domain/repository"
	"github.com/oksasatya/go-travel-assistant/pkg/helpers"
)

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	seq     int
	err     error
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]*entity.User{}} }

func (m *memUsers) put(u entity.User) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if u.ID == "" {
		u.ID = fmt.Sprintf("u-%d", m.seq)
	}
	m.byEmail[u.Email] = &u
	cp := u
	return &cp
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	_, exists := m.byEmail[u.Email]
	m.mu.Unlock()
	if exists {
		return repo.ErrDuplicate
	}
	*u = *m.put(*u)
	return nil
}

func (m *memUsers) CreateVerifiedIfAbsent(_ context.Context, u *entity.User) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	if existing, ok := m.byEmail[u.Email]; ok {
		existing.IsVerified = true
		cp := *existing
		m.mu.Unlock()
		return &cp, nil
	}
	m.mu.Unlock()
	cp := *u
	cp.IsVerified = true
	return m.put(cp), nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byEmail)
}

type memPending struct {
	mu      sync.Mutex
	records  map[string]entity.PendingSignup
	attempts map[string]int
	creates  int
}

func newMemPending() *memPending {
	return &memPending{records: map[string]entity.PendingSignup{}, attempts: map[string]int{}}
}

func (m *memPending) Create(_ context.Context, p *entity.PendingSignup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[p.Email]; ok {
		return repo.ErrDuplicate
	}
	m.creates++
	m.records[p.Email] = *p
	return nil
}

func (m *memPending) Get(_ context.Context, email string) (*entity.PendingSignup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.records[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &p, nil
}

func (m *memPending) ReplaceOTP(_ context.Context, email, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.records[email]
	if !ok {
		return repo.ErrNotFound
	}
	p.OTP = otp
	m.records[email] = p
	return nil
}

func (m *memPending) RecordFailedAttempt(_ context.Context, email string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[email]++
	return m.attempts[email], nil
}

func (m *memPending) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, email)
	delete(m.attempts, email)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []gateway.OTPMessage
	err  error
}

func (f *fakeMailer) SendOTP(_ context.Context, msg gateway.OTPMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeMailer) last() gateway.OTPMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type fakeVerifier struct {
	id  *gateway.GoogleIdentity
	err error
}

func (f *fakeVerifier) Verify(context.Context, string) (*gateway.GoogleIdentity, error) {
	return f.id, f.err
}

type fakeCompleter struct {
	calls      int
	out        string
	err        error
	lastSystem string
	lastUser   string
	lastParams gateway.CompletionParams
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userPrompt string, p gateway.CompletionParams) (string, error) {
	f.calls++
	f.lastSystem, f.lastUser, f.lastParams = systemPrompt, userPrompt, p
	return f.out, f.err
}

type fakeHistory struct {
	saved []entity.ChatExchange
	err   error
}

func (f *fakeHistory) Save(_ context.Context, ex *entity.ChatExchange) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *ex)
	return nil
}

func (f *fakeHistory) Recent(_ context.Context, userID string, size int) ([]entity.ChatExchange, error) {
	out := []entity.ChatExchange{}
	for i := len(f.saved) - 1; i >= 0 && len(out) < size; i-- {
		if f.saved[i].UserID == userID {
			out = append(out, f.saved[i])
		}
	}
	return out, f.err
}

type fakeAvatars struct {
	path        string
	contentType string
	body        string
}

func (f *fakeAvatars) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, _ := io.ReadAll(r)
	f.path, f.contentType, f.body = objectPath, contentType, string(b)
	return "https://storage.googleapis.com/bucket/" + objectPath, nil
}

// fastHash keeps bcrypt in the loop without the production cost.
func fastHash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	return string(b), err
}

// sequenceOTP returns codes in order, repeating the last one.
func sequenceOTP(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		c := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return c, nil
	}
}

type authFixture struct {
	svc     *AuthService
	users   *memUsers
	pending *memPending
	mailer  *fakeMailer
	google  *fakeVerifier
	clock   *time.Time
}

func newAuthFixture(codes ...string) *authFixture {
	if len(codes) == 0 {
		codes = []string{"111111", "222222", "333333"}
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := &authFixture{
		users:   newMemUsers(),
		pending: newMemPending(),
		mailer:  &fakeMailer{},
		google:  &fakeVerifier{},
		clock:   &now,
	}
	jwt := helpers.NewJWTManager("test-secret")
	jwt.Now = func() time.Time { return *f.clock }

	f.svc = NewAuthService(f.users, f.pending, f.mailer, f.google, jwt, nil, AuthConfig{
		OTPTTL:    10 * time.Minute,
		VerifyTTL: time.Hour,
		LoginTTL:  24 * time.Hour,
	})
	f.svc.GenOTP = sequenceOTP(codes...)
	f.svc.Hash = fastHash
	return f
}
