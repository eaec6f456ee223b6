package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

const diaryFixture = `
<html><body>
<div class="printDiary">
  <h1>Monday 03 March 2025</h1>
  <div class="occasionTags" data-occasioname="Breakfast">
    <table><tr><th class="colNutri subtot">400</th></tr></table>
  </div>
  <div class="occasionTags" data-occasioname="Lunch">
    <table><tr><th class="colNutri subtot">600</th></tr></table>
  </div>
  <div class="occasionExercise">
    <table><tr><th class="colNutri subtot">200</th></tr></table>
  </div>
</div>
<div class="printDiary">
  <h1>Tuesday 04 March 2025</h1>
  <div class="occasionTags" data-occasioname="Dinner">
    <table><tr><th class="colNutri subtot">750</th></tr></table>
  </div>
</div>
</body></html>`

func TestParseDiary(t *testing.T) {
	days, err := ParseDiary(diaryFixture, arbor.NewLogger())
	require.NoError(t, err)
	require.Len(t, days, 2)

	first := days[0]
	assert.Equal(t, "Monday 03 March 2025", first.DateText)
	require.Len(t, first.Occasions, 2)
	assert.Equal(t, Occasion{Name: "Breakfast", KcalText: "400"}, first.Occasions[0])
	assert.Equal(t, Occasion{Name: "Lunch", KcalText: "600"}, first.Occasions[1])
	assert.Equal(t, "200", first.ExerciseText)

	second := days[1]
	assert.Equal(t, "Tuesday 04 March 2025", second.DateText)
	require.Len(t, second.Occasions, 1)
	assert.Empty(t, second.ExerciseText)
}

func TestParseDiary_SkipsBlockWithoutDate(t *testing.T) {
	html := `
<div class="printDiary">
  <div class="occasionTags" data-occasioname="Lunch">
    <table><tr><th class="colNutri subtot">500</th></tr></table>
  </div>
</div>`

	days, err := ParseDiary(html, arbor.NewLogger())
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestParseDiary_SkipsOccasionWithoutName(t *testing.T) {
	html := `
<div class="printDiary">
  <h1>Monday 03 March 2025</h1>
  <div class="occasionTags">
    <table><tr><th class="colNutri subtot">500</th></tr></table>
  </div>
  <div class="occasionTags" data-occasioname="Snacks">
    <table><tr><th class="colNutri subtot">120</th></tr></table>
  </div>
</div>`

	days, err := ParseDiary(html, arbor.NewLogger())
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Occasions, 1)
	assert.Equal(t, "Snacks", days[0].Occasions[0].Name)
}

func TestParseDiary_SkipsOccasionWithoutSubtotal(t *testing.T) {
	html := `
<div class="printDiary">
  <h1>Monday 03 March 2025</h1>
  <div class="occasionTags" data-occasioname="Breakfast"></div>
</div>`

	days, err := ParseDiary(html, arbor.NewLogger())
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Empty(t, days[0].Occasions)
}

func TestParseDiary_EmptyPage(t *testing.T) {
	days, err := ParseDiary("<html><body></body></html>", arbor.NewLogger())
	require.NoError(t, err)
	assert.Empty(t, days)
}
