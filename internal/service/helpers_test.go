package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/repository"
	"github.com/alexanderramin/timetrack/internal/testutil"
)

// memProjects is an in-memory ProjectRepo.
type memProjects struct {
	reg domain.Registry
}

func (m *memProjects) List(context.Context) (domain.Registry, error) {
	return append(domain.Registry(nil), m.reg...), nil
}

func (m *memProjects) Create(_ context.Context, p domain.Project) (domain.Project, error) {
	if p.ID == domain.NoProjectID {
		p.ID = m.reg.NextID()
	}
	if err := m.reg.CheckNew(p); err != nil {
		return domain.Project{}, err
	}
	m.reg = append(m.reg, p)
	return p, nil
}

// clock is a settable test clock.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Set(t time.Time)         { c.now = t }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	sheets   *repository.SQLiteSheetStore
	projects *memProjects
	clock    *clock
	svc      TimesheetService
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	conn := testutil.NewTestDB(t)
	f := &fixture{
		sheets:   repository.NewSQLiteSheetStore(db.MemoryPath, conn, testutil.NewTestUoW(conn)),
		projects: &memProjects{reg: testutil.NewTestRegistry()},
		clock:    &clock{now: testutil.At(0, 9, 0)},
	}
	opts = append([]Option{WithClock(f.clock.Now)}, opts...)
	f.svc = NewTimesheetService(f.sheets, f.projects, opts...)
	return f
}

func (f *fixture) sheet(t *testing.T) domain.Sheet {
	t.Helper()
	s, err := f.sheets.Load(context.Background())
	if err != nil {
		t.Fatalf("loading sheet: %v", err)
	}
	return s
}
