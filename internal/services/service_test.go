package services

import (
	"context"
	"errors"
	"sort"

	"github.com/domlearn/backend/internal/models"
	"github.com/domlearn/backend/internal/ordering"
)

// storeState is an in-memory copy of the three tables
type storeState struct {
	levels          map[int]bool
	sections        map[int]models.Section
	lessons         map[int]models.Lesson
	nextID          int
	failUpdateOrder bool
}

func (s *storeState) clone() *storeState {
	c := &storeState{
		levels:          make(map[int]bool, len(s.levels)),
		sections:        make(map[int]models.Section, len(s.sections)),
		lessons:         make(map[int]models.Lesson, len(s.lessons)),
		nextID:          s.nextID,
		failUpdateOrder: s.failUpdateOrder,
	}
	for k, v := range s.levels {
		c.levels[k] = v
	}
	for k, v := range s.sections {
		c.sections[k] = v
	}
	for k, v := range s.lessons {
		c.lessons[k] = v
	}
	return c
}

// fakeStore implements Transactor with snapshot isolation: work runs on a copy
// that replaces the committed state only when fn succeeds
type fakeStore struct {
	state     *storeState
	commitErr error
	txCount   int
}

func newFakeStore(levelIDs ...int) *fakeStore {
	st := &storeState{
		levels:   make(map[int]bool),
		sections: make(map[int]models.Section),
		lessons:  make(map[int]models.Lesson),
		nextID:   100,
	}
	for _, id := range levelIDs {
		st.levels[id] = true
	}
	return &fakeStore{state: st}
}

func (f *fakeStore) WithinTx(ctx context.Context, fn func(repos TxRepositories) error) error {
	f.txCount++
	work := f.state.clone()
	err := fn(TxRepositories{
		Levels:   &fakeLevels{st: work},
		Sections: &fakeSections{st: work},
		Lessons:  &fakeLessons{st: work},
	})
	if err != nil {
		return err
	}
	if f.commitErr != nil {
		return models.WrapError(models.KindTransactionFailure, f.commitErr, "failed to commit transaction")
	}
	f.state = work
	return nil
}

func (f *fakeStore) addSection(levelID int, slug string, order int) int {
	f.state.nextID++
	id := f.state.nextID
	f.state.sections[id] = models.Section{ID: id, LevelID: levelID, Title: slug, Slug: slug, Order: order}
	return id
}

func (f *fakeStore) addLesson(sectionID int, slug string, order int) int {
	f.state.nextID++
	id := f.state.nextID
	f.state.lessons[id] = models.Lesson{ID: id, SectionID: sectionID, Title: slug, Slug: slug, Order: order}
	return id
}

func (f *fakeStore) sectionPositions(levelID int) []ordering.Position {
	positions, _ := (&fakeSections{st: f.state}).Positions(context.Background(), levelID)
	return positions
}

func (f *fakeStore) lessonPositions(sectionID int) []ordering.Position {
	positions, _ := (&fakeLessons{st: f.state}).Positions(context.Background(), sectionID)
	return positions
}

func sortPositions(p []ordering.Position) []ordering.Position {
	sort.Slice(p, func(i, j int) bool {
		if p[i].Order != p[j].Order {
			return p[i].Order < p[j].Order
		}
		return p[i].ID < p[j].ID
	})
	return p
}

type fakeLevels struct {
	st *storeState
}

func (r *fakeLevels) LockByID(ctx context.Context, id int) error {
	if !r.st.levels[id] {
		return models.NotFoundError("level", id)
	}
	return nil
}

type fakeSections struct {
	st *storeState
}

func (r *fakeSections) LockByID(ctx context.Context, id int) (*models.Section, error) {
	section, ok := r.st.sections[id]
	if !ok {
		return nil, models.NotFoundError("section", id)
	}
	return &section, nil
}

func (r *fakeSections) Positions(ctx context.Context, levelID int) ([]ordering.Position, error) {
	positions := make([]ordering.Position, 0)
	for _, s := range r.st.sections {
		if s.LevelID == levelID {
			positions = append(positions, ordering.Position{ID: s.ID, Order: s.Order})
		}
	}
	return sortPositions(positions), nil
}

func (r *fakeSections) FindIDBySlug(ctx context.Context, levelID int, slug string) (int, bool, error) {
	for _, s := range r.st.sections {
		if s.LevelID == levelID && s.Slug == slug {
			return s.ID, true, nil
		}
	}
	return 0, false, nil
}

func (r *fakeSections) Create(ctx context.Context, section *models.Section) (int, error) {
	r.st.nextID++
	section.ID = r.st.nextID
	r.st.sections[section.ID] = *section
	return section.ID, nil
}

func (r *fakeSections) Update(ctx context.Context, section *models.Section) error {
	r.st.sections[section.ID] = *section
	return nil
}

func (r *fakeSections) UpdateOrder(ctx context.Context, levelID, id, order int) error {
	if r.st.failUpdateOrder {
		return errors.New("lock wait timeout exceeded")
	}
	if s, ok := r.st.sections[id]; ok && s.LevelID == levelID {
		s.Order = order
		r.st.sections[id] = s
	}
	return nil
}

func (r *fakeSections) Delete(ctx context.Context, id int) error {
	if _, ok := r.st.sections[id]; !ok {
		return models.NotFoundError("section", id)
	}
	delete(r.st.sections, id)
	for lessonID, l := range r.st.lessons {
		if l.SectionID == id {
			delete(r.st.lessons, lessonID)
		}
	}
	return nil
}

type fakeLessons struct {
	st *storeState
}

func (r *fakeLessons) LockByID(ctx context.Context, id int) (*models.Lesson, error) {
	lesson, ok := r.st.lessons[id]
	if !ok {
		return nil, models.NotFoundError("lesson", id)
	}
	return &lesson, nil
}

func (r *fakeLessons) IDsBySection(ctx context.Context, sectionID int) ([]int, error) {
	ids := make([]int, 0)
	positions, _ := r.Positions(ctx, sectionID)
	for _, p := range positions {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (r *fakeLessons) Positions(ctx context.Context, sectionID int) ([]ordering.Position, error) {
	positions := make([]ordering.Position, 0)
	for _, l := range r.st.lessons {
		if l.SectionID == sectionID {
			positions = append(positions, ordering.Position{ID: l.ID, Order: l.Order})
		}
	}
	return sortPositions(positions), nil
}

func (r *fakeLessons) FindIDBySlug(ctx context.Context, sectionID int, slug string) (int, bool, error) {
	for _, l := range r.st.lessons {
		if l.SectionID == sectionID && l.Slug == slug {
			return l.ID, true, nil
		}
	}
	return 0, false, nil
}

func (r *fakeLessons) Create(ctx context.Context, lesson *models.Lesson) (int, error) {
	r.st.nextID++
	lesson.ID = r.st.nextID
	r.st.lessons[lesson.ID] = *lesson
	return lesson.ID, nil
}

func (r *fakeLessons) Update(ctx context.Context, lesson *models.Lesson) error {
	r.st.lessons[lesson.ID] = *lesson
	return nil
}

func (r *fakeLessons) UpdateOrder(ctx context.Context, sectionID, id, order int) error {
	if r.st.failUpdateOrder {
		return errors.New("lock wait timeout exceeded")
	}
	if l, ok := r.st.lessons[id]; ok && l.SectionID == sectionID {
		l.Order = order
		r.st.lessons[id] = l
	}
	return nil
}

func (r *fakeLessons) Delete(ctx context.Context, id int) error {
	if _, ok := r.st.lessons[id]; !ok {
		return models.NotFoundError("lesson", id)
	}
	delete(r.st.lessons, id)
	return nil
}

// mockAuthorizer is a mock implementation of Authorizer
type mockAuthorizer struct {
	err   error
	calls int
}

func (m *mockAuthorizer) Authorize(ctx context.Context, token string) error {
	m.calls++
	return m.err
}

// mockMediaReleaser is a mock implementation of MediaReleaser
type mockMediaReleaser struct {
	released []int
	err      error
}

func (m *mockMediaReleaser) Release(ctx context.Context, lessonID int) error {
	m.released = append(m.released, lessonID)
	return m.err
}
