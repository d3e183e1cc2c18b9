package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/charter/pkg/types"
)

const criteriaBody = `# Title

## Objective

Something.

## Exit Criteria

- [x] First thing
- [ ] Second thing
- [X] Third thing

## Notes

- [ ] Not a criterion, wrong section
`

func TestCriteria(t *testing.T) {
	items, done, total := Criteria(criteriaBody)
	require.Len(t, items, 3)
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)

	assert.Equal(t, Criterion{Text: "First thing", Done: true}, items[0])
	assert.Equal(t, Criterion{Text: "Second thing", Done: false}, items[1])
	assert.Equal(t, Criterion{Text: "Third thing", Done: true}, items[2])
}

func TestCriteriaStatus(t *testing.T) {
	met, done, total, missing := CriteriaStatus(criteriaBody)
	assert.False(t, met)
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"Second thing"}, missing)

	// An empty checklist never counts as met.
	met, _, total, _ = CriteriaStatus("# Title\n\nNo checklist here.\n")
	assert.False(t, met)
	assert.Zero(t, total)

	met, _, _, _ = CriteriaStatus("## Acceptance Criteria\n\n- [x] Only item\n")
	assert.True(t, met)
}

func TestSetCriterion(t *testing.T) {
	body, err := SetCriterion(criteriaBody, "Second thing", true)
	require.NoError(t, err)

	met, done, total, _ := CriteriaStatus(body)
	assert.True(t, met)
	assert.Equal(t, 3, done)
	assert.Equal(t, 3, total)

	// Unchecking works on both [x] and [X] forms.
	body, err = SetCriterion(body, "Third thing", false)
	require.NoError(t, err)
	_, done, _, _ = CriteriaStatus(body)
	assert.Equal(t, 2, done)

	_, err = SetCriterion(criteriaBody, "No such item", true)
	assert.ErrorIs(t, err, types.ErrCriterionNotFound)

	// Items outside the criteria section are not reachable.
	_, err = SetCriterion(criteriaBody, "Not a criterion, wrong section", true)
	assert.ErrorIs(t, err, types.ErrCriterionNotFound)
}
