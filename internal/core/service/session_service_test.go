package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/infrastructure/auth"
	"github.com/vyom/tryon-store/internal/infrastructure/db/memory"
	"github.com/vyom/tryon-store/internal/infrastructure/db/record"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubIdentityRepo struct {
	mu      sync.Mutex
	users   []domain.User
	findErr error
}

func newStubIdentityRepo(users ...domain.User) *stubIdentityRepo {
	return &stubIdentityRepo{users: users}
}

func (r *stubIdentityRepo) List(_ context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), r.users...), nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(&u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubIdentityRepo) Add(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users = append(r.users, u)
	return nil
}

type stubSessionSlot struct {
	user    *domain.User
	loadErr error
	saveErr error
	cleared int
}

func (s *stubSessionSlot) Load(_ context.Context) (*domain.User, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return cloneUser(s.user), nil
}

func (s *stubSessionSlot) Save(_ context.Context, u domain.User) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.user = &u
	return nil
}

func (s *stubSessionSlot) Clear(_ context.Context) error {
	s.cleared++
	s.loadErr = nil
	s.user = nil
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var seedAdmin = domain.User{
	ID:       "admin1",
	Name:     "Vyom Admin",
	Email:    "admin@vyom.com",
	Password: "admin",
	Mobile:   "0000000000",
	Role:     domain.RoleAdmin,
}

func newSessionFixture(t *testing.T) (*SessionService, *stubIdentityRepo, *stubSessionSlot) {
	t.Helper()
	repo := newStubIdentityRepo(seedAdmin)
	slot := &stubSessionSlot{}
	svc, err := NewSessionService(context.Background(), repo, slot, auth.PlainCredentials{}, discardLogger)
	if err != nil {
		t.Fatalf("NewSessionService returned error: %v", err)
	}
	return svc, repo, slot
}

func candidate(email string) domain.User {
	return domain.User{Name: "Asha", Email: email, Password: "pass123", Mobile: "9876543210"}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestSessionService_Login_Success(t *testing.T) {
	svc, _, slot := newSessionFixture(t)

	user, err := svc.Login(context.Background(), "admin@vyom.com", "admin")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != "admin1" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if !svc.IsAuthenticated() || svc.CurrentUser().ID != "admin1" {
		t.Fatalf("expected session to hold admin1")
	}
	if slot.user == nil || slot.user.ID != "admin1" {
		t.Fatalf("expected persisted session for admin1, got %+v", slot.user)
	}
}

func TestSessionService_Login_WrongPassword(t *testing.T) {
	svc, _, slot := newSessionFixture(t)

	if _, err := svc.Login(context.Background(), "admin@vyom.com", "Admin"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if svc.IsAuthenticated() {
		t.Fatalf("session must stay anonymous")
	}
	if slot.user != nil {
		t.Fatalf("nothing should be persisted")
	}
}

func TestSessionService_Login_WrongPasswordKeepsExistingSession(t *testing.T) {
	svc, _, slot := newSessionFixture(t)
	if _, err := svc.Register(context.Background(), candidate("asha@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "admin@vyom.com", "nope"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if svc.CurrentUser().Email != "asha@example.com" || slot.user.Email != "asha@example.com" {
		t.Fatalf("failed login must not change the session")
	}
}

func TestSessionService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	if _, err := svc.Login(context.Background(), "ghost@example.com", "admin"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Login_EmailIsCaseSensitive(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	if _, err := svc.Login(context.Background(), "Admin@Vyom.com", "admin"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Login_RepoError(t *testing.T) {
	svc, repo, _ := newSessionFixture(t)
	repo.findErr = domain.ErrDataCorruption

	_, err := svc.Login(context.Background(), "admin@vyom.com", "admin")
	if !errors.Is(err, domain.ErrDataCorruption) {
		t.Fatalf("expected ErrDataCorruption, got %v", err)
	}
}

func TestSessionService_Login_ReplacesSession(t *testing.T) {
	svc, _, slot := newSessionFixture(t)
	if _, err := svc.Register(context.Background(), candidate("asha@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "admin@vyom.com", "admin"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if svc.CurrentUser().ID != "admin1" || slot.user.ID != "admin1" {
		t.Fatalf("login while authenticated must replace the session")
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestSessionService_Register_AutoLogin(t *testing.T) {
	svc, repo, slot := newSessionFixture(t)

	user, err := svc.Register(context.Background(), candidate("asha@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if len(repo.users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(repo.users))
	}
	if svc.CurrentUser().ID != user.ID || slot.user.ID != user.ID {
		t.Fatalf("registered user must be logged in")
	}

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	again, err := svc.Login(context.Background(), "asha@example.com", "pass123")
	if err != nil {
		t.Fatalf("login after register failed: %v", err)
	}
	if *again != *user {
		t.Fatalf("login returned %+v, want %+v", again, user)
	}
}

func TestSessionService_Register_KeepsSuppliedID(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	c := candidate("asha@example.com")
	c.ID = "1767225600000"
	user, err := svc.Register(context.Background(), c)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID != "1767225600000" {
		t.Fatalf("expected supplied id, got %s", user.ID)
	}
}

func TestSessionService_Register_Duplicate(t *testing.T) {
	svc, repo, slot := newSessionFixture(t)

	if _, err := svc.Register(context.Background(), candidate("admin@vyom.com")); err != domain.ErrEmailAlreadyExists {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("user collection must be unchanged, got %d users", len(repo.users))
	}
	if svc.IsAuthenticated() || slot.user != nil {
		t.Fatalf("failed registration must not log in")
	}
}

// slowKV widens the gap between reading and writing the users collection.
type slowKV struct {
	*memory.Store
}

func (s slowKV) Get(ctx context.Context, key string) ([]byte, error) {
	time.Sleep(time.Millisecond)
	return s.Store.Get(ctx, key)
}

func TestSessionService_Register_ConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	store := record.NewStore(slowKV{memory.NewStore()}, record.DefaultKeyPrefix, discardLogger)
	users := record.NewIdentityRepository(store)
	svc, err := NewSessionService(ctx, users, record.NewSessionStore(store), auth.PlainCredentials{}, discardLogger)
	if err != nil {
		t.Fatalf("NewSessionService returned error: %v", err)
	}

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, candidate("dup@example.com"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, domain.ErrEmailAlreadyExists):
			t.Fatalf("unexpected register error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one successful register, got %d", ok)
	}

	all, err := users.List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	same := 0
	for _, u := range all {
		if u.Email == "dup@example.com" {
			same++
		}
	}
	if same != 1 {
		t.Fatalf("expected one user with the email, got %d", same)
	}
}

func TestSessionService_Register_HashesWithBcrypt(t *testing.T) {
	repo := newStubIdentityRepo()
	creds := auth.BcryptCredentials{Cost: 4}
	svc, err := NewSessionService(context.Background(), repo, &stubSessionSlot{}, creds, discardLogger)
	if err != nil {
		t.Fatalf("NewSessionService returned error: %v", err)
	}

	if _, err := svc.Register(context.Background(), candidate("asha@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if repo.users[0].Password == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "asha@example.com", "pass123"); err != nil {
		t.Fatalf("login with hashed credentials failed: %v", err)
	}
}

func TestSessionService_Register_SaveFailureKeepsMemoryConsistent(t *testing.T) {
	svc, _, slot := newSessionFixture(t)
	slot.saveErr = errors.New("disk full")

	if _, err := svc.Register(context.Background(), candidate("asha@example.com")); err == nil {
		t.Fatalf("expected error when session cannot be persisted")
	}
	if svc.IsAuthenticated() {
		t.Fatalf("memory must not hold a session the slot lacks")
	}
}

// ---------------------------------------------------------------------------
// Logout / restore
// ---------------------------------------------------------------------------

func TestSessionService_Logout(t *testing.T) {
	svc, _, slot := newSessionFixture(t)

	// anonymous logout is safe
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if svc.CurrentUser() != nil {
		t.Fatalf("expected no current user")
	}

	if _, err := svc.Login(context.Background(), "admin@vyom.com", "admin"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if svc.CurrentUser() != nil || svc.IsAuthenticated() {
		t.Fatalf("expected anonymous after logout")
	}
	if slot.user != nil {
		t.Fatalf("expected persisted session cleared")
	}
}

func TestSessionService_RestoresPersistedSession(t *testing.T) {
	slot := &stubSessionSlot{user: cloneUser(&seedAdmin)}

	svc, err := NewSessionService(context.Background(), newStubIdentityRepo(seedAdmin), slot, auth.PlainCredentials{}, discardLogger)
	if err != nil {
		t.Fatalf("NewSessionService returned error: %v", err)
	}
	if svc.CurrentUser() == nil || svc.CurrentUser().ID != "admin1" {
		t.Fatalf("expected restored admin session, got %+v", svc.CurrentUser())
	}
}

func TestSessionService_DiscardsCorruptSession(t *testing.T) {
	slot := &stubSessionSlot{loadErr: domain.ErrDataCorruption}

	svc, err := NewSessionService(context.Background(), newStubIdentityRepo(), slot, auth.PlainCredentials{}, discardLogger)
	if err != nil {
		t.Fatalf("NewSessionService returned error: %v", err)
	}
	if svc.IsAuthenticated() {
		t.Fatalf("expected anonymous start")
	}
	if slot.cleared != 1 {
		t.Fatalf("expected corrupt slot to be cleared once, got %d", slot.cleared)
	}
}

func TestSessionService_CurrentUserIsACopy(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	if _, err := svc.Login(context.Background(), "admin@vyom.com", "admin"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	u := svc.CurrentUser()
	u.Role = domain.RoleUser
	if svc.CurrentUser().Role != domain.RoleAdmin {
		t.Fatalf("mutating the returned user must not change the session")
	}
}
