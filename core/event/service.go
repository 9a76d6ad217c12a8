package event

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/player"
	"github.com/trezcool/kocha/core/team"
)

var (
	ErrNotFound = errors.New("event not found")
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, evt Event, exec ...core.DBExecutor) (Event, error)
		GetEventByID(ctx context.Context, teamID, id string, exec ...core.DBExecutor) (Event, error)
		// FilterEvents returns a team's events ordered by date ascending.
		FilterEvents(ctx context.Context, teamID string, filter QueryFilter, exec ...core.DBExecutor) ([]Event, error)
		UpdateEvent(ctx context.Context, evt Event, exec ...core.DBExecutor) (Event, error)
		DeleteEvent(ctx context.Context, teamID, id string, exec ...core.DBExecutor) error
	}

	Service interface {
		Create(ctx context.Context, teamID string, ne NewEvent) (Event, error)
		GetByID(ctx context.Context, teamID, id string) (Event, error)
		Filter(ctx context.Context, teamID string, filter QueryFilter) ([]Event, error)
		Update(ctx context.Context, teamID, id string, ue UpdateEvent) (Event, error)
		Delete(ctx context.Context, teamID, id string) error
	}

	service struct {
		repo       Repository
		teamRepo   team.Repository
		playerRepo player.Repository
		mailSvc    core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, teamRepo team.Repository, playerRepo player.Repository, mailSvc core.EmailService) Service {
	return &service{
		repo:       repo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		mailSvc:    mailSvc,
	}
}

func (svc *service) Create(ctx context.Context, teamID string, ne NewEvent) (Event, error) {
	date, err := time.Parse(dateFormat, ne.Date)
	if err != nil {
		return Event{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: "invalid date"})
	}

	now := time.Now().UTC()
	evt := Event{
		TeamID:    teamID,
		Type:      ne.Type,
		Date:      date,
		StartTime: null.NewString(ne.StartTime, ne.StartTime != ""),
		Title:     null.NewString(ne.Title, ne.Title != ""),
		NotesPre:  null.NewString(ne.NotesPre, ne.NotesPre != ""),
		CreatedAt: now,
		UpdatedAt: now,
	}
	evt, err = svc.repo.CreateEvent(ctx, evt)
	if err != nil {
		return Event{}, err
	}

	svc.notifyPlayers(ctx, evt)
	return evt, nil
}

// notifyPlayers emails roster members that have an email on file.
// Failures are swallowed; scheduling must not depend on mail delivery.
func (svc *service) notifyPlayers(ctx context.Context, evt Event) {
	t, err := svc.teamRepo.GetTeamByID(ctx, evt.TeamID)
	if err != nil {
		return
	}
	players, err := svc.playerRepo.FilterPlayers(ctx, evt.TeamID, player.QueryFilter{})
	if err != nil {
		return
	}

	to := make([]mail.Address, 0, len(players))
	for _, p := range players {
		if p.Email.String != "" {
			to = append(to, mail.Address{Name: p.FullName(), Address: p.Email.String})
		}
	}
	if len(to) == 0 {
		return
	}

	msg := &core.EmailMessage{
		To:           to,
		Subject:      "New " + evt.Type + " scheduled",
		TemplateName: "event-created",
		TemplateData: map[string]interface{}{
			"TeamID":    evt.TeamID,
			"TeamName":  t.Name,
			"Type":      evt.Type,
			"Date":      evt.Date.Format(dateFormat),
			"StartTime": evt.StartTime.String,
			"Title":     evt.Title.String,
		},
	}
	svc.mailSvc.SendMessages(msg)
}

func (svc *service) GetByID(ctx context.Context, teamID, id string) (Event, error) {
	return svc.repo.GetEventByID(ctx, teamID, id)
}

func (svc *service) Filter(ctx context.Context, teamID string, filter QueryFilter) ([]Event, error) {
	return svc.repo.FilterEvents(ctx, teamID, filter)
}

func (svc *service) Update(ctx context.Context, teamID, id string, ue UpdateEvent) (Event, error) {
	evt, err := svc.repo.GetEventByID(ctx, teamID, id)
	if err != nil {
		return Event{}, err
	}
	if ue.Type != "" {
		evt.Type = ue.Type
	}
	if ue.Date != "" {
		date, err := time.Parse(dateFormat, ue.Date)
		if err != nil {
			return Event{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: "invalid date"})
		}
		evt.Date = date
	}
	if ue.StartTime != "" {
		evt.StartTime = null.StringFrom(ue.StartTime)
	}
	if ue.Title != "" {
		evt.Title = null.StringFrom(ue.Title)
	}
	if ue.NotesPre != "" {
		evt.NotesPre = null.StringFrom(ue.NotesPre)
	}
	if ue.NotesPost != "" {
		evt.NotesPost = null.StringFrom(ue.NotesPost)
	}
	evt.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEvent(ctx, evt)
}

func (svc *service) Delete(ctx context.Context, teamID, id string) error {
	return svc.repo.DeleteEvent(ctx, teamID, id)
}
