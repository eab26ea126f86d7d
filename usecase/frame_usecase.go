package usecase

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
	"time"

	_ "golang.org/x/image/webp"

	"photo-frame/domain/model"
	"photo-frame/domain/repository"
	"photo-frame/infrastructure/logger"
)

// Clock abstracts waiting so the loop can be driven without real sleeps
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock is the wall clock
var RealClock Clock = realClock{}

type FrameOptions struct {
	// Interval is the delay between the end of one iteration and the start of the next
	Interval time.Duration
	// Wait is how often the authorization record is checked before polling starts
	Wait time.Duration
}

// IFrameUsecase is the frame's display loop
type IFrameUsecase interface {
	ShowConfigURL(configURL string) error
	WaitForAuthorization(ctx context.Context) error
	RunOnce(ctx context.Context)
	Run(ctx context.Context) error
	Status() model.FrameStatus
}

type FrameUsecase struct {
	credentials repository.ICredentialStore
	photos      IPhotoUsecase
	display     repository.IDisplay
	events      repository.IFrameEvents
	clock       Clock
	opts        FrameOptions

	mu              sync.RWMutex
	configURL       string
	lastPhoto       string
	lastDisplayedAt *time.Time
	lastError       string
}

func NewFrameUsecase(credentials repository.ICredentialStore, photos IPhotoUsecase, display repository.IDisplay, clock Clock, opts FrameOptions) *FrameUsecase {
	if clock == nil {
		clock = RealClock
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Hour
	}
	if opts.Wait <= 0 {
		opts.Wait = 5 * time.Second
	}
	return &FrameUsecase{
		credentials: credentials,
		photos:      photos,
		display:     display,
		clock:       clock,
		opts:        opts,
	}
}

// WithEvents publishes display events to subscribers
func (u *FrameUsecase) WithEvents(events repository.IFrameEvents) *FrameUsecase {
	u.events = events
	return u
}

// ShowConfigURL renders configURL as a QR code so a phone can open the configuration page
func (u *FrameUsecase) ShowConfigURL(configURL string) error {
	u.mu.Lock()
	u.configURL = configURL
	u.mu.Unlock()
	if err := u.display.RenderQR(configURL); err != nil {
		return fmt.Errorf("failed to show QR code: %w", err)
	}
	u.publish(model.FrameEvent{Type: model.FrameEventQRShown, At: u.clock.Now()})
	return nil
}

// WaitForAuthorization blocks until the authorization record exists, checking every Wait
func (u *FrameUsecase) WaitForAuthorization(ctx context.Context) error {
	logged := false
	for !u.credentials.Exists() {
		if !logged {
			logger.GetLogger().Info("Waiting for photo library authorization")
			logged = true
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-u.clock.After(u.opts.Wait):
		}
	}
	return nil
}

// RunOnce fetches the next photo and shows it. Failures are logged and reported through Status.
func (u *FrameUsecase) RunOnce(ctx context.Context) {
	path, ok := u.photos.FetchOne(ctx)
	if !ok {
		logger.GetLogger().Info("No photos downloaded yet")
		return
	}
	if err := u.showPhoto(path); err != nil {
		logger.GetLogger().WithField("error", err).WithField("path", path).Error("Failed to display photo")
		u.mu.Lock()
		u.lastError = err.Error()
		u.mu.Unlock()
		u.publish(model.FrameEvent{Type: model.FrameEventPhotoFailed, Path: path, Error: err.Error(), At: u.clock.Now()})
		return
	}
	now := u.clock.Now()
	u.mu.Lock()
	u.lastPhoto = path
	u.lastDisplayedAt = &now
	u.lastError = ""
	u.mu.Unlock()
	logger.GetLogger().WithField("path", path).Info("Displayed photo")
	u.publish(model.FrameEvent{Type: model.FrameEventPhotoDisplayed, Path: path, At: now})
}

func (u *FrameUsecase) showPhoto(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return u.display.RenderPhoto(img)
}

// Run waits for authorization, then shows a photo every Interval until ctx ends.
// The delay is measured from the end of each iteration.
func (u *FrameUsecase) Run(ctx context.Context) error {
	if err := u.WaitForAuthorization(ctx); err != nil {
		return err
	}
	for {
		u.RunOnce(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-u.clock.After(u.opts.Interval):
		}
	}
}

func (u *FrameUsecase) Status() model.FrameStatus {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return model.FrameStatus{
		Configured:      u.credentials.Exists(),
		PanelPresent:    u.display.HasPanel(),
		ConfigURL:       u.configURL,
		LastPhoto:       u.lastPhoto,
		LastDisplayedAt: u.lastDisplayedAt,
		LastError:       u.lastError,
	}
}

func (u *FrameUsecase) publish(evt model.FrameEvent) {
	if u.events != nil {
		u.events.Publish(evt)
	}
}
