package service

import (
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/scoring"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeKPIStore struct {
	records map[string]*model.KPIRecord
}

func newFakeKPIStore() *fakeKPIStore {
	return &fakeKPIStore{records: make(map[string]*model.KPIRecord)}
}

func (f *fakeKPIStore) key(visitorID uint, period string) string {
	return fmt.Sprintf("%d|%s", visitorID, period)
}

func (f *fakeKPIStore) Upsert(record *model.KPIRecord) error {
	f.records[f.key(record.VisitorID, record.Period)] = record
	return nil
}

func (f *fakeKPIStore) FindByVisitorAndPeriod(visitorID uint, period string) (*model.KPIRecord, error) {
	record, ok := f.records[f.key(visitorID, period)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeKPIStore) FindByVisitor(visitorID uint) ([]model.KPIRecord, error) {
	var out []model.KPIRecord
	for _, r := range f.records {
		if r.VisitorID == visitorID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeVisitorStore struct {
	visitors map[uint]*model.Visitor
}

func (f *fakeVisitorStore) FindByID(id uint) (*model.Visitor, error) {
	v, ok := f.visitors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func newKPIServiceForTest(visitors ...*model.Visitor) (*KPIService, *fakeKPIStore) {
	store := newFakeKPIStore()
	vs := &fakeVisitorStore{visitors: make(map[uint]*model.Visitor)}
	for _, v := range visitors {
		vs.visitors[v.ID] = v
	}
	return NewKPIService(store, vs, scoring.NewTable(scoring.Default())), store
}

func TestSaveReplacesSamePeriod(t *testing.T) {
	visitor := &model.Visitor{}
	visitor.ID = 1
	svc, _ := newKPIServiceForTest(visitor)

	first, err := svc.Save(1, "2025-03", map[string]int{"culte": 1}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, first.Score)

	second, err := svc.Save(1, "2025-03", map[string]int{"culte": 3, "bergerie": 3}, "mise à jour")
	require.NoError(t, err)
	assert.Equal(t, 18, second.Score)

	history, err := svc.History(1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 18, history[0].Score)
	assert.Equal(t, "mise à jour", history[0].Comment)
}

func TestSaveRejectsBadPeriodAndUnknownVisitor(t *testing.T) {
	visitor := &model.Visitor{}
	visitor.ID = 1
	svc, _ := newKPIServiceForTest(visitor)

	_, err := svc.Save(1, "03-2025", map[string]int{}, "")
	assert.Error(t, err)

	_, err = svc.Save(99, "2025-03", map[string]int{}, "")
	assert.Error(t, err)
}

func TestGetRecordDefaultsWhenMissing(t *testing.T) {
	visitor := &model.Visitor{}
	visitor.ID = 1
	svc, _ := newKPIServiceForTest(visitor)

	record, err := svc.GetRecord(1, "2025-06")
	require.NoError(t, err)
	assert.Equal(t, 0, record.Score)
	assert.Equal(t, "En éveil", record.Level)

	cfg := scoring.Default()
	assert.Len(t, record.Values, len(cfg.Indicators))
	for _, ind := range cfg.Indicators {
		v, ok := record.Values[ind.Key]
		assert.True(t, ok, "missing default for %s", ind.Key)
		assert.Equal(t, 0, v)
	}
}

func TestSummaryAveragesHistory(t *testing.T) {
	visitor := &model.Visitor{}
	visitor.ID = 1
	svc, _ := newKPIServiceForTest(visitor)

	_, err := svc.Save(1, "2025-01", map[string]int{"culte": 3, "bergerie": 3, "priere": 3}, "")
	require.NoError(t, err) // 24
	_, err = svc.Save(1, "2025-02", map[string]int{"culte": 2}, "")
	require.NoError(t, err) // 6

	summary, err := svc.Summary(1)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, summary.AverageScore, 0.001)
	assert.Equal(t, "En croissance", summary.AverageLevel)
	assert.Equal(t, scoring.StatusComputed, summary.Status.Kind)
	assert.Equal(t, "En croissance", summary.Status.Label)
}

func TestSummaryManualOverrideWins(t *testing.T) {
	visitor := &model.Visitor{ManualStatus: "Confirmé"}
	visitor.ID = 1
	svc, _ := newKPIServiceForTest(visitor)

	summary, err := svc.Summary(1)
	require.NoError(t, err)
	assert.Equal(t, NoDataLabel, summary.AverageLevel)
	assert.Equal(t, scoring.StatusOverride, summary.Status.Kind)
	assert.Equal(t, "Confirmé", summary.Status.Label)
}

func TestSummaryNoHistory(t *testing.T) {
	visitor := &model.Visitor{}
	visitor.ID = 1
	svc, _ := newKPIServiceForTest(visitor)

	summary, err := svc.Summary(1)
	require.NoError(t, err)
	assert.Zero(t, summary.AverageScore)
	assert.Equal(t, NoDataLabel, summary.AverageLevel)
	assert.Equal(t, NoDataLabel, summary.Status.Label)
}

func TestPreviewDuringTableReload(t *testing.T) {
	visitor := &model.Visitor{}
	visitor.ID = 1
	svc, _ := newKPIServiceForTest(visitor)

	values := map[string]int{"culte": 3, "bergerie": 3}
	max := scoring.Default().MaxScore()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			preview := svc.Preview(values)
			// Score and level must come from the same table snapshot.
			assert.GreaterOrEqual(t, preview.Score, 0)
			assert.LessOrEqual(t, preview.Score, max)
			assert.NotEmpty(t, preview.Level.Label)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			svc.Scoring.Replace(scoring.Default())
		}
	}()
	wg.Wait()
}

func TestPreviewMatchesSave(t *testing.T) {
	visitor := &model.Visitor{}
	visitor.ID = 1
	svc, _ := newKPIServiceForTest(visitor)

	values := map[string]int{"culte": 2, "offrande": 2, "service": 1}
	preview := svc.Preview(values)

	saved, err := svc.Save(1, "2025-04", values, "")
	require.NoError(t, err)
	assert.Equal(t, preview.Score, saved.Score)
	assert.Equal(t, preview.Level.Label, saved.Level)
}
