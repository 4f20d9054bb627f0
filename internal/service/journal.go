package service

import (
	"context"

	"covid-dashboard/internal/constants"
	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/repository"
)

type Journal struct {
	Enabled bool                  `json:"enabled"`
	Loads   []domain.LoadRecord   `json:"loads"`
	Exports []domain.ExportRecord `json:"exports"`
}

type JournalService struct {
	loads   *repository.LoadRepository
	exports *repository.ExportRepository
}

func NewJournalService(loads *repository.LoadRepository, exports *repository.ExportRepository) *JournalService {
	return &JournalService{loads: loads, exports: exports}
}

func (s *JournalService) Recent(ctx context.Context) (Journal, error) {
	j := Journal{Enabled: s.loads.Enabled()}
	var err error
	if j.Loads, err = s.loads.Recent(ctx, constants.JournalListLimit); err != nil {
		return j, err
	}
	if j.Exports, err = s.exports.Recent(ctx, constants.JournalListLimit); err != nil {
		return j, err
	}
	return j, nil
}
