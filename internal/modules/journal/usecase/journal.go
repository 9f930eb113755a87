package usecase

import (
	"context"
	"fmt"
	"strings"

	"upmind/internal/modules/journal/domain"
	"upmind/internal/modules/journal/dto"
	journalin "upmind/internal/modules/journal/port/in"
	journalout "upmind/internal/modules/journal/port/out"
	"upmind/internal/modules/journal/service"
	"upmind/internal/platform/clock"
	apperrors "upmind/internal/platform/errors"
)

type Interactor struct {
	svc      *service.JournalService
	exporter journalout.EntryExporter
}

func NewInteractor(svc *service.JournalService, exporter journalout.EntryExporter) journalin.Usecase {
	return &Interactor{svc: svc, exporter: exporter}
}

func (i *Interactor) AddEntry(ctx context.Context, input dto.AddEntryInput) (dto.EntryOutput, error) {
	mood, err := domain.ParseMood(input.Mood)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	entry, err := i.svc.Add(ctx, strings.TrimSpace(input.Content), mood, cleanTags(input.Tags))
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toOutput(entry), nil
}

func (i *Interactor) ListEntries(_ context.Context, limit int) ([]dto.EntryOutput, error) {
	return toOutputs(i.svc.Recent(limit)), nil
}

func (i *Interactor) EntriesForDate(_ context.Context, date string) ([]dto.EntryOutput, error) {
	if _, err := clock.ParseDateKey(date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrInvalidInput)
	}
	return toOutputs(i.svc.ForDate(date)), nil
}

func (i *Interactor) Streak(_ context.Context) (dto.StreakOutput, error) {
	streak, total, journaled, now := i.svc.Today()
	return dto.StreakOutput{
		StreakDays:     streak,
		TotalEntries:   total,
		JournaledToday: journaled,
		Prompt:         domain.PromptFor(now),
	}, nil
}

func (i *Interactor) Prompts(_ context.Context) ([]string, error) {
	return domain.Prompts(), nil
}

func (i *Interactor) ExportEntry(ctx context.Context, entryID string) (string, error) {
	entry, ok := i.svc.Find(strings.TrimSpace(entryID))
	if !ok {
		return "", fmt.Errorf("%w: journal entry %q", apperrors.ErrNotFound, entryID)
	}
	return i.exporter.Export(ctx, entry)
}

func (i *Interactor) Reset(ctx context.Context) error {
	i.svc.Reset(ctx)
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func toOutputs(entries []domain.Entry) []dto.EntryOutput {
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, toOutput(e))
	}
	return out
}

func toOutput(e domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{
		ID:        e.ID,
		Content:   e.Content,
		Mood:      string(e.Mood),
		CreatedAt: e.CreatedAt,
		Tags:      append([]string{}, e.Tags...),
	}
}
