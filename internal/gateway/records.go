package gateway

import (
	"context"
	"time"

	"wedding-gateway/internal/model"
	apperrors "wedding-gateway/pkg/app_errors"
)

func (g *GatewayImpl) SaveTriviaResult(ctx context.Context, in model.TriviaSubmission) (_ *model.TriviaResult, err error) {
	const op = "SaveTriviaResult"
	defer g.finish(op, time.Now(), &err)

	if g.deps.Trivia == nil {
		return nil, apperrors.NotInitialized(op)
	}
	if err := g.checkStruct(op, in); err != nil {
		return nil, err
	}

	result, err := g.deps.Trivia.Create(ctx, &model.TriviaResult{
		Score:     in.Score,
		Answers:   in.Answers,
		UserID:    nonEmpty(in.UserID),
		GuestName: nonEmpty(in.GuestName),
	})
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	return result, nil
}

// SaveRSVP passes the payload through untouched; the table decides what it accepts.
func (g *GatewayImpl) SaveRSVP(ctx context.Context, payload model.RsvpPayload) (_ model.RsvpGuest, err error) {
	const op = "SaveRSVP"
	defer g.finish(op, time.Now(), &err)

	if g.deps.Rsvps == nil {
		return nil, apperrors.NotInitialized(op)
	}
	if len(payload) == 0 {
		return nil, apperrors.InvalidInput(op, "RSVP payload is empty")
	}

	guest, err := g.deps.Rsvps.Create(ctx, payload)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	return guest, nil
}

// SaveSongRequest keeps an empty artist name as given; only an omitted one becomes NULL.
func (g *GatewayImpl) SaveSongRequest(ctx context.Context, in model.SongSubmission) (_ *model.SongRequest, err error) {
	const op = "SaveSongRequest"
	defer g.finish(op, time.Now(), &err)

	if g.deps.Songs == nil {
		return nil, apperrors.NotInitialized(op)
	}
	if err := g.checkStruct(op, in); err != nil {
		return nil, err
	}

	song, err := g.deps.Songs.Create(ctx, &model.SongRequest{
		SongName:      in.SongName,
		ArtistName:    in.ArtistName,
		RequesterName: in.RequesterName,
	})
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	return song, nil
}

func (g *GatewayImpl) FetchSongRequests(ctx context.Context) (_ []*model.SongRequest, err error) {
	const op = "FetchSongRequests"
	defer g.finish(op, time.Now(), &err)

	if g.deps.Songs == nil {
		return nil, apperrors.NotInitialized(op)
	}
	songs, err := g.deps.Songs.ListRecent(ctx, SongFeedLimit)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	if len(songs) > SongFeedLimit {
		songs = songs[:SongFeedLimit]
	}
	return songs, nil
}
