package service

import (
	"insulin_advisor/internal/engine"
	"insulin_advisor/internal/models"
)

type DoseTableService struct {
	engine *engine.Engine
}

func NewDoseTableService(eng *engine.Engine) *DoseTableService {
	return &DoseTableService{engine: eng}
}

// Rows returns the loaded table ordered by algorithm then level.
func (s *DoseTableService) Rows() []models.DoseTableRow {
	entries := s.engine.Table().Entries()
	rows := make([]models.DoseTableRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, models.DoseTableRow{
			Algorithm: e.Algorithm.Key(),
			Level:     e.Level,
			GRBSRange: e.Band.String(),
			Dose:      e.Dose.InexactFloat64(),
			Unit:      e.Unit(),
			Action:    e.Label(),
		})
	}
	return rows
}

func (s *DoseTableService) Bounds() engine.Bounds { return s.engine.Bounds() }
