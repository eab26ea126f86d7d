package usecase_test

import (
	"context"
	"image"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"photo-frame/domain/model"
	"photo-frame/domain/repository"
)

type MockPhotoLibrary struct {
	mock.Mock
}

func (m *MockPhotoLibrary) ListMediaItems(ctx context.Context, credential *model.Credential, n int) ([]model.MediaItem, error) {
	args := m.Called(ctx, credential, n)
	items, _ := args.Get(0).([]model.MediaItem)
	return items, args.Error(1)
}

func (m *MockPhotoLibrary) Download(ctx context.Context, credential *model.Credential, item model.MediaItem) (io.ReadCloser, error) {
	args := m.Called(ctx, credential, item)
	body, _ := args.Get(0).(io.ReadCloser)
	return body, args.Error(1)
}

// memoryCredentials is an in-memory ICredentialStore
type memoryCredentials struct {
	mu         sync.Mutex
	credential *model.Credential
}

func (s *memoryCredentials) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential != nil
}

func (s *memoryCredentials) Load() (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credential == nil {
		return nil, repository.ErrNoCredential
	}
	return s.credential, nil
}

func (s *memoryCredentials) Save(credential *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	return nil
}

type fakeDisplay struct {
	panel   bool
	qr      []string
	photos  []image.Image
	failing error
}

func (d *fakeDisplay) HasPanel() bool         { return d.panel }
func (d *fakeDisplay) Resolution() (int, int) { return 600, 448 }
func (d *fakeDisplay) RenderQR(payload string) error {
	if d.failing != nil {
		return d.failing
	}
	d.qr = append(d.qr, payload)
	return nil
}
func (d *fakeDisplay) RenderPhoto(img image.Image) error {
	if d.failing != nil {
		return d.failing
	}
	d.photos = append(d.photos, img)
	return nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []model.FrameEvent
}

func (r *recordingEvents) Publish(evt model.FrameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var types []string
	for _, evt := range r.events {
		types = append(types, evt.Type)
	}
	return types
}

// fakeClock fires every wait immediately unless onAfter says otherwise
type fakeClock struct {
	now     time.Time
	waits   []time.Duration
	onAfter func(d time.Duration, call int) bool
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	if c.onAfter != nil && !c.onAfter(d, len(c.waits)) {
		return nil
	}
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func (c *fakeClock) count(d time.Duration) int {
	n := 0
	for _, w := range c.waits {
		if w == d {
			n++
		}
	}
	return n
}

// countingPhotos is an IPhotoUsecase returning a fixed path
type countingPhotos struct {
	mu    sync.Mutex
	calls int
	path  string
}

func (p *countingPhotos) FetchLatest(ctx context.Context, n int) []string {
	if path, ok := p.FetchOne(ctx); ok {
		return []string{path}
	}
	return nil
}

func (p *countingPhotos) FetchOne(context.Context) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.path, p.path != ""
}

func (p *countingPhotos) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
