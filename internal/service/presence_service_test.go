package service

import (
	"bergerie_backend/internal/fidelity"
	"bergerie_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePresenceStore struct {
	records []model.PresenceRecord
}

func (f *fakePresenceStore) Upsert(record *model.PresenceRecord) error {
	for i, r := range f.records {
		if r.VisitorID == record.VisitorID && r.Date.Equal(record.Date) && r.Category == record.Category {
			f.records[i] = *record
			return nil
		}
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakePresenceStore) FindByVisitor(visitorID uint, category model.PresenceCategory) ([]model.PresenceRecord, error) {
	var out []model.PresenceRecord
	for _, r := range f.records {
		if r.VisitorID == visitorID && (category == "" || r.Category == category) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePresenceStore) FindByVisitors(visitorIDs []uint, from, to time.Time) ([]model.PresenceRecord, error) {
	ids := make(map[uint]bool, len(visitorIDs))
	for _, id := range visitorIDs {
		ids[id] = true
	}
	var out []model.PresenceRecord
	for _, r := range f.records {
		if !ids[r.VisitorID] {
			continue
		}
		if !from.IsZero() && r.Date.Before(from) {
			continue
		}
		if !to.IsZero() && r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeCohortStore struct {
	visitors []model.Visitor
}

func (f *fakeCohortStore) FindByID(id uint) (*model.Visitor, error) {
	for i := range f.visitors {
		if f.visitors[i].ID == id {
			return &f.visitors[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCohortStore) FindByBergerie(bergerieID uint) ([]model.Visitor, error) {
	var out []model.Visitor
	for _, v := range f.visitors {
		if v.BergerieID != nil && *v.BergerieID == bergerieID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeCohortStore) FindByCity(cityID uint) ([]model.Visitor, error) {
	var out []model.Visitor
	for _, v := range f.visitors {
		if cityID == 0 || v.CityID == cityID {
			out = append(out, v)
		}
	}
	return out, nil
}

func cohortVisitor(id, cityID, bergerieID uint) model.Visitor {
	v := model.Visitor{CityID: cityID}
	v.ID = id
	if bergerieID != 0 {
		v.BergerieID = &bergerieID
	}
	return v
}

func newPresenceServiceForTest(visitors ...model.Visitor) (*PresenceService, *fakePresenceStore) {
	store := &fakePresenceStore{}
	cohort := &fakeCohortStore{visitors: visitors}
	return NewPresenceService(store, cohort, fidelity.NewCalculator(8)), store
}

func TestSavePresenceReplacesSameOccasion(t *testing.T) {
	svc, store := newPresenceServiceForTest(cohortVisitor(1, 1, 0))

	_, err := svc.Save(1, "2025-03-02", model.PresenceCulte, true, "")
	require.NoError(t, err)
	_, err = svc.Save(1, "2025-03-02", model.PresenceCulte, false, "absent finalement")
	require.NoError(t, err)

	require.Len(t, store.records, 1)
	assert.False(t, store.records[0].Present)

	// same date, other stream, is a distinct occasion
	_, err = svc.Save(1, "2025-03-02", model.PresenceBergerie, true, "")
	require.NoError(t, err)
	assert.Len(t, store.records, 2)
}

func TestSavePresenceRejectsBadDate(t *testing.T) {
	svc, _ := newPresenceServiceForTest(cohortVisitor(1, 1, 0))

	_, err := svc.Save(1, "02/03/2025", model.PresenceCulte, true, "")
	assert.Error(t, err)

	_, err = svc.Save(42, "2025-03-02", model.PresenceCulte, true, "")
	assert.Error(t, err)
}

func TestListByVisitorSplitsStreams(t *testing.T) {
	svc, _ := newPresenceServiceForTest(cohortVisitor(1, 1, 0))

	_, err := svc.Save(1, "2025-03-02", model.PresenceCulte, true, "")
	require.NoError(t, err)
	_, err = svc.Save(1, "2025-03-06", model.PresenceBergerie, true, "")
	require.NoError(t, err)

	presences, err := svc.ListByVisitor(1)
	require.NoError(t, err)
	assert.Len(t, presences.Culte, 1)
	assert.Len(t, presences.Bergerie, 1)
}

func TestFidelityReportByBergerie(t *testing.T) {
	svc, _ := newPresenceServiceForTest(
		cohortVisitor(1, 1, 5),
		cohortVisitor(2, 1, 5),
		cohortVisitor(3, 2, 0),
	)

	// visitor 1: 4 presents, visitor 2: 2 presents -> avg 3 of 8 = 38%
	for _, date := range []string{"2025-03-02", "2025-03-09", "2025-03-16", "2025-03-23"} {
		_, err := svc.Save(1, date, model.PresenceCulte, true, "")
		require.NoError(t, err)
	}
	for _, date := range []string{"2025-03-02", "2025-03-09"} {
		_, err := svc.Save(2, date, model.PresenceCulte, true, "")
		require.NoError(t, err)
	}
	// outside the cohort, must not count
	_, err := svc.Save(3, "2025-03-02", model.PresenceCulte, true, "")
	require.NoError(t, err)

	report, err := svc.FidelityReport(0, 5, time.Time{}, time.Time{}, "", fidelity.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, 38, report.Rate)
	assert.Equal(t, 2, report.CohortSize)
	assert.Equal(t, 8, report.ExpectedOccasions)
}

func TestFidelityReportDateFilter(t *testing.T) {
	svc, _ := newPresenceServiceForTest(
		cohortVisitor(1, 1, 5),
		cohortVisitor(2, 1, 5),
	)

	_, err := svc.Save(1, "2025-03-02", model.PresenceCulte, true, "")
	require.NoError(t, err)
	_, err = svc.Save(2, "2025-03-02", model.PresenceCulte, false, "")
	require.NoError(t, err)

	report, err := svc.FidelityReport(0, 5, time.Time{}, time.Time{}, "2025-03-02", fidelity.FilterPresent)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, report.RetainedSubjects)

	report, err = svc.FidelityReport(0, 5, time.Time{}, time.Time{}, "2025-03-02", fidelity.FilterAbsent)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, report.RetainedSubjects)
}

func TestFidelityReportEmptyCohort(t *testing.T) {
	svc, _ := newPresenceServiceForTest()

	report, err := svc.FidelityReport(0, 5, time.Time{}, time.Time{}, "", fidelity.FilterAll)
	require.NoError(t, err)
	assert.Zero(t, report.Rate)
	assert.Zero(t, report.CohortSize)
}
