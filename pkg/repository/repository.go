// Package repository translates between the remote store's untyped JSON
// documents and the typed event and profile entities, and exposes the
// mutation operations the application performs. It imposes no error
// taxonomy beyond the system one: collaborator failures pass through
// verbatim inside transport errors, and no operation is retried.
package repository

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mosfeq/sportslink/pkg/auth"
	"github.com/mosfeq/sportslink/pkg/errors"
	"github.com/mosfeq/sportslink/pkg/events"
	"github.com/mosfeq/sportslink/pkg/logging"
	"github.com/mosfeq/sportslink/pkg/store"
)

// EventsResult is one delivery on a catalog watch stream: a fresh full
// list (never a diff) or an error for that delivery.
type EventsResult struct {
	Events []events.Event
	Err    error
}

// ProfileResult is one delivery on a profile watch stream.
type ProfileResult struct {
	Profile events.Profile
	Err     error
}

// Repository exposes the event catalog and profile operations over a
// store and an authenticator.
type Repository struct {
	store store.Store
	auth  auth.Authenticator
	log   *zerolog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for background failures.
func WithLogger(log *zerolog.Logger) Option {
	return func(r *Repository) {
		r.log = log
	}
}

// New creates a Repository over the given collaborators.
func New(st store.Store, authn auth.Authenticator, opts ...Option) *Repository {
	r := &Repository{
		store: st,
		auth:  authn,
		log:   logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register creates an account and the initial empty profile document.
// The two writes are not atomic; an account with no profile is possible
// if the second write fails, and surfaces later as "User not found".
func (r *Repository) Register(ctx context.Context, name, email, password string) error {
	if name == "" {
		return errors.NewValidationError("name", name, "name is required")
	}
	if err := r.auth.CreateAccount(ctx, email, password); err != nil {
		return err
	}
	profile := events.NewProfile(name, email)
	if err := r.store.Set(ctx, store.ProfilePath(email), profile); err != nil {
		return errors.WrapTransport("set", store.ProfilePath(email), err)
	}
	return nil
}

// SignIn authenticates against the collaborator.
func (r *Repository) SignIn(ctx context.Context, email, password string) error {
	return r.auth.SignIn(ctx, email, password)
}

// Viewer returns the signed-in principal's email.
func (r *Repository) Viewer() (string, error) {
	return r.auth.CurrentEmail()
}

// CurrentUser fetches the signed-in user's profile.
func (r *Repository) CurrentUser(ctx context.Context) (events.Profile, error) {
	email, err := r.auth.CurrentEmail()
	if err != nil {
		return events.Profile{}, err
	}
	return r.profile(ctx, email)
}

func (r *Repository) profile(ctx context.Context, email string) (events.Profile, error) {
	path := store.ProfilePath(email)
	data, err := r.store.Get(ctx, path)
	if err != nil {
		return events.Profile{}, errors.WrapTransport("get", path, err)
	}
	return decodeProfile(data, path)
}

// Events fetches the full catalog once. Order is the store's child-key
// order, which every delivery reproduces.
func (r *Repository) Events(ctx context.Context) ([]events.Event, error) {
	data, err := r.store.Get(ctx, store.EventsPath)
	if err != nil {
		return nil, errors.WrapTransport("get", store.EventsPath, err)
	}
	return decodeCatalog(data)
}

// WatchEvents subscribes to the catalog. Every change notification
// re-delivers the full list; a failed delivery carries the fixed
// "Cannot Retrieve Events" condition with the cause attached.
func (r *Repository) WatchEvents(ctx context.Context) (<-chan EventsResult, error) {
	snapshots, err := r.store.Watch(ctx, store.EventsPath)
	if err != nil {
		return nil, errors.WrapTransport("watch", store.EventsPath, err)
	}

	out := make(chan EventsResult)
	go func() {
		defer close(out)
		for snap := range snapshots {
			select {
			case out <- decodeEventsSnapshot(snap):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func decodeEventsSnapshot(snap store.Snapshot) EventsResult {
	if snap.Err != nil {
		return EventsResult{Err: errors.NewTransportError("watch", store.EventsPath, errors.MsgCannotRetrieveEvents, snap.Err)}
	}
	list, err := decodeCatalog(snap.Data)
	if err != nil {
		return EventsResult{Err: err}
	}
	return EventsResult{Events: list}
}

// WatchProfile subscribes to the signed-in user's profile document.
func (r *Repository) WatchProfile(ctx context.Context) (<-chan ProfileResult, error) {
	email, err := r.auth.CurrentEmail()
	if err != nil {
		return nil, err
	}
	path := store.ProfilePath(email)
	snapshots, err := r.store.Watch(ctx, path)
	if err != nil {
		return nil, errors.WrapTransport("watch", path, err)
	}

	out := make(chan ProfileResult)
	go func() {
		defer close(out)
		for snap := range snapshots {
			result := ProfileResult{}
			if snap.Err != nil {
				result.Err = errors.NewTransportError("watch", path, errors.MsgCannotRetrieveEvents, snap.Err)
			} else {
				result.Profile, result.Err = decodeProfile(snap.Data, path)
			}
			select {
			case out <- result:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// HostedEvents returns the events the signed-in user hosts, derived from
// the catalog by host email.
func (r *Repository) HostedEvents(ctx context.Context) ([]events.Event, error) {
	email, err := r.auth.CurrentEmail()
	if err != nil {
		return nil, err
	}
	catalog, err := r.Events(ctx)
	if err != nil {
		return nil, err
	}
	return events.NewEvents(events.WithEvents(catalog)).ByHost(email), nil
}

// JoinedEvents returns the events the signed-in user has joined, derived
// from the catalog through the profile's membership index. IDs whose
// event has since been removed are skipped.
func (r *Repository) JoinedEvents(ctx context.Context) ([]events.Event, error) {
	profile, err := r.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := r.Events(ctx)
	if err != nil {
		return nil, err
	}
	return events.NewEvents(events.WithEvents(catalog)).ByIDs(profile.Joined), nil
}

// AddEvent writes the event under its title key. An existing record with
// the same title is overwritten; the store's last-write-wins key scheme
// is the documented collision behavior, not something this layer
// prevents.
func (r *Repository) AddEvent(ctx context.Context, ev events.Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	path := store.EventPath(ev.Title)
	if err := r.store.Set(ctx, path, ev); err != nil {
		return errors.WrapTransport("set", path, err)
	}
	r.log.Info().Str("event", ev.Title).Str("sport", ev.Sport.String()).Msg("Event added")
	return nil
}

// JoinEvent appends the event's ID to the signed-in user's membership
// index. Joining an event already present fails with the fixed
// "Event Already Joined" condition and leaves the index unchanged.
//
// The profile update is a read-modify-write with no transaction; two
// devices mutating the same profile concurrently can lose one update.
func (r *Repository) JoinEvent(ctx context.Context, ev events.Event) error {
	email, err := r.auth.CurrentEmail()
	if err != nil {
		return err
	}
	profile, err := r.profile(ctx, email)
	if err != nil {
		return err
	}
	if profile.HasJoined(ev.ID) {
		return errors.ErrAlreadyJoined
	}

	path := store.ProfilePath(email)
	if err := r.store.Set(ctx, path, profile.Join(ev.ID)); err != nil {
		return errors.WrapTransport("set", path, err)
	}
	r.log.Info().Str("event", ev.Title).Msg("Event joined")
	return nil
}

// LeaveEvent removes the event's ID from the membership index. Leaving
// an event that was never joined fails and leaves the index unchanged.
func (r *Repository) LeaveEvent(ctx context.Context, ev events.Event) error {
	email, err := r.auth.CurrentEmail()
	if err != nil {
		return err
	}
	profile, err := r.profile(ctx, email)
	if err != nil {
		return err
	}
	updated, found := profile.Leave(ev.ID)
	if !found {
		return errors.ErrNotJoined
	}

	path := store.ProfilePath(email)
	if err := r.store.Set(ctx, path, updated); err != nil {
		return errors.WrapTransport("set", path, err)
	}
	r.log.Info().Str("event", ev.Title).Msg("Event left")
	return nil
}

// RemoveEvent deletes the catalog record by title, fire-and-forget: no
// completion signal, no cascade into membership indexes. Joined views
// stop showing the event because they are derived from the catalog.
func (r *Repository) RemoveEvent(title string) {
	log := r.log
	go func() {
		if err := r.store.Delete(context.Background(), store.EventPath(title)); err != nil {
			log.Error().Err(err).Str("event", title).Msg("Failed to remove event")
		}
	}()
}

// decodeCatalog decodes the catalog document: a JSON object keyed by
// title. Children are listed in lexicographic key order, the order the
// backing store delivers them in.
func decodeCatalog(data []byte) ([]events.Event, error) {
	var byTitle map[string]events.Event
	if err := json.Unmarshal(data, &byTitle); err != nil {
		return nil, errors.WrapParse("json", store.EventsPath, err)
	}

	titles := make([]string, 0, len(byTitle))
	for title := range byTitle {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	list := make([]events.Event, 0, len(titles))
	for _, title := range titles {
		list = append(list, byTitle[title])
	}
	return list, nil
}

func decodeProfile(data []byte, path string) (events.Profile, error) {
	var profile *events.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return events.Profile{}, errors.WrapParse("json", path, err)
	}
	if profile == nil {
		return events.Profile{}, errors.NewNotFoundError("User", "")
	}
	return *profile, nil
}
