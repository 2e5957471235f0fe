package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"
	"uniket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuditUsecase_ListLogs_DefaultsPageAndLimit(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := usecase.NewAuditUsecase(audits)

	audits.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.Limit == 50 && f.Offset == 0 && f.Action == nil && f.ResourceType == nil
	})).Return([]model.AuditLog{{ID: 1}}, nil)

	out, err := uc.ListLogs(context.Background(), 1, usecase.ListAuditLogsInput{Page: 0, Limit: 999})

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	audits.AssertExpectations(t)
}

func TestAuditUsecase_ListLogs_FilterMappedToRepo(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := usecase.NewAuditUsecase(audits)

	actorID := int64(7)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	audits.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.ActorUserID != nil && *f.ActorUserID == 7 &&
			f.Action != nil && *f.Action == model.AuditActionHideReview &&
			f.ResourceType != nil && *f.ResourceType == model.AuditResourceReview &&
			f.CreatedFrom != nil && f.CreatedFrom.Equal(from) &&
			f.Limit == 10 && f.Offset == 20
	})).Return([]model.AuditLog{}, nil)

	_, err := uc.ListLogs(context.Background(), 1, usecase.ListAuditLogsInput{
		Page:         3,
		Limit:        10,
		ActorUserID:  &actorID,
		Action:       "HIDE_REVIEW",
		ResourceType: "review",
		CreatedFrom:  &from,
	})

	assert.NoError(t, err)
	audits.AssertExpectations(t)
}

func TestAuditUsecase_ListLogs_RepoError(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := usecase.NewAuditUsecase(audits)

	audits.On("List", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := uc.ListLogs(context.Background(), 1, usecase.ListAuditLogsInput{})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
}
