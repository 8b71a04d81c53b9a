package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/dbx"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/courses"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/principals"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/purchases"
)

// --- principals ---

type fakePrincipalRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.Principal
	nextID int
	err    error
}

func newFakePrincipalRepo() *fakePrincipalRepo {
	return &fakePrincipalRepo{byID: map[string]*models.Principal{}}
}

func (f *fakePrincipalRepo) Create(ctx context.Context, p *models.Principal) (*models.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == p.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	cp := *p
	cp.ID = fmt.Sprintf("p-%d", f.nextID)
	cp.CreatedAt = time.Now()
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakePrincipalRepo) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.byID {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePrincipalRepo) GetByID(ctx context.Context, id string) (*models.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

// --- courses ---

type fakeCourseRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.Course
	order   []string
	nextID  int
	listErr error
	lists   int
	// afterList runs once the list has been read, outside the lock.
	afterList func()
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{byID: map[string]*models.Course{}}
}

func (f *fakeCourseRepo) Create(ctx context.Context, creatorID string, fl models.CourseFields) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.Title == fl.Title {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	c := &models.Course{
		ID:          fmt.Sprintf("c-%d", f.nextID),
		Title:       fl.Title,
		Description: fl.Description,
		Price:       fl.Price,
		ImageURL:    fl.ImageURL,
		CreatorID:   creatorID,
	}
	f.byID[c.ID] = c
	f.order = append(f.order, c.ID)
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) UpdateOwned(ctx context.Context, id, creatorID string, fl models.CourseFields) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok || c.CreatorID != creatorID {
		return nil, common.ErrorNotFound
	}
	c.Title, c.Description, c.Price, c.ImageURL = fl.Title, fl.Description, fl.Price, fl.ImageURL
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) DeleteOwned(ctx context.Context, id, creatorID string) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok || c.CreatorID != creatorID {
		return nil, common.ErrorNotFound
	}
	delete(f.byID, id)
	return c, nil
}

func (f *fakeCourseRepo) GetOwned(ctx context.Context, id, creatorID string) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok || c.CreatorID != creatorID {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) ListByCreator(ctx context.Context, creatorID string) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Course, 0)
	for _, id := range f.order {
		if c, ok := f.byID[id]; ok && c.CreatorID == creatorID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) ListAll(ctx context.Context) ([]*models.Course, error) {
	f.mu.Lock()
	f.lists++
	if f.listErr != nil {
		f.mu.Unlock()
		return nil, f.listErr
	}
	out := make([]*models.Course, 0)
	for _, id := range f.order {
		if c, ok := f.byID[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	hook := f.afterList
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

// --- purchases ---

type fakePurchaseRepo struct {
	mu      sync.Mutex
	rows    []*models.Purchase
	err     error
	inserts int
}

func (f *fakePurchaseRepo) CreateIfAbsent(ctx context.Context, courseID, userID string) (*models.Purchase, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	for _, p := range f.rows {
		if p.CourseID == courseID && p.UserID == userID {
			return nil, false, nil
		}
	}
	f.inserts++
	p := &models.Purchase{ID: fmt.Sprintf("pu-%d", len(f.rows)+1), CourseID: courseID, UserID: userID, CreatedAt: time.Now()}
	f.rows = append(f.rows, p)
	return p, true, nil
}

func (f *fakePurchaseRepo) ListByUser(ctx context.Context, userID string) ([]*models.PurchasedCourse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.PurchasedCourse, 0)
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, &models.PurchasedCourse{Purchase: *p})
		}
	}
	return out, nil
}

// --- manager ---

type fakeRepoManager struct {
	users     *fakePrincipalRepo
	admins    *fakePrincipalRepo
	courses   *fakeCourseRepo
	purchases *fakePurchaseRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:     newFakePrincipalRepo(),
		admins:    newFakePrincipalRepo(),
		courses:   newFakeCourseRepo(),
		purchases: &fakePurchaseRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) principals.Repository         { return m.users }
func (m *fakeRepoManager) Admins(dbx.DBTX) principals.Repository        { return m.admins }
func (m *fakeRepoManager) Courses(dbx.DBTX) courses.Repository          { return m.courses }
func (m *fakeRepoManager) Purchases(dbx.DBTX) purchases.Repository      { return m.purchases }

// --- cache / images ---

type fakeCache struct {
	gen         int64
	lists       map[int64][]*models.Course
	getErr      error
	invalidates int
	sets        int
}

func (c *fakeCache) Get(context.Context) ([]*models.Course, int64, bool, error) {
	if c.getErr != nil {
		return nil, 0, false, c.getErr
	}
	list, ok := c.lists[c.gen]
	return list, c.gen, ok, nil
}

func (c *fakeCache) Set(_ context.Context, gen int64, courses []*models.Course) error {
	c.sets++
	if c.lists == nil {
		c.lists = map[int64][]*models.Course{}
	}
	c.lists[gen] = courses
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidates++
	delete(c.lists, c.gen)
	c.gen++
	return nil
}

type fakeImages struct {
	keys []string
	err  error
}

func (f *fakeImages) PresignPut(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://s3.local/bucket/" + key + "?sig=1", nil
}
