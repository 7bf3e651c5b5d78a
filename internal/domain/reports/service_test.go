package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/domain/documents/meal"
)

type mealList []meal.Meal

func (m mealList) Items() []meal.Meal { return m }

func TestService_Days(t *testing.T) {
	now := time.Date(2025, time.June, 10, 20, 0, 0, 0, time.UTC)
	meals := mealList{
		{ID: 1, TimestampUTC: now.Add(-time.Hour).UnixMilli(), Summary: values(2, 4), SummaryComplete: true},
		{ID: 2, TimestampUTC: now.Add(-48 * time.Hour).UnixMilli(), Summary: values(1, 3), SummaryComplete: false},
	}

	svc := NewService(meals, hierarchy())
	days, err := svc.Days(now, time.UTC, 3)
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, "Today", days[0].Heading.Alias)
	assert.Equal(t, []id.ID{2}, days[0].Summary.PropertyIDs())
	assert.True(t, days[0].Summary.Complete)

	assert.Empty(t, days[1].Meals)
	assert.Empty(t, days[1].Summary.Rows)
	assert.True(t, days[1].Summary.Complete)

	assert.Len(t, days[2].Meals, 1)
	assert.False(t, days[2].Summary.Complete)
}

func TestService_Meal(t *testing.T) {
	svc := NewService(mealList{{ID: 5, Summary: values(1, 1, 2, 2), SummaryComplete: true}}, hierarchy())

	summary, err := svc.Meal(5)
	require.NoError(t, err)
	assert.Equal(t, []id.ID{1, 2}, summary.PropertyIDs())

	_, err = svc.Meal(6)
	assert.True(t, apperror.IsNotFound(err))
}
