package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-crm/api/internal/menu"
)

func testItem(name string, price int64) menu.Item {
	return menu.Item{ID: uuid.New(), Name: name, Price: decimal.NewFromInt(price)}
}

func TestSelectionAddInsertsWithQuantityOne(t *testing.T) {
	var s Selection
	item := testItem("Капучино", 180)

	s.Add(item)

	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 1, s.Lines()[0].Quantity)
	assert.Equal(t, item.ID, s.Lines()[0].Item.ID)
}

func TestSelectionAddAccumulatesOnSameItem(t *testing.T) {
	var s Selection
	item := testItem("Капучино", 180)

	s.Add(item)
	s.Add(item)
	s.Add(item)

	require.Len(t, s.Lines(), 1, "no duplicate lines for the same item")
	assert.Equal(t, 3, s.Lines()[0].Quantity)
	assert.Equal(t, 3, s.Count())
}

func TestSelectionIncrementAndDecrement(t *testing.T) {
	var s Selection
	item := testItem("Тирамису", 300)

	s.Add(item)
	s.Increment(item.ID)
	assert.Equal(t, 2, s.Lines()[0].Quantity)

	s.Decrement(item.ID)
	assert.Equal(t, 1, s.Lines()[0].Quantity)
}

func TestSelectionDecrementAtOneRemovesLine(t *testing.T) {
	var s Selection
	item := testItem("Тирамису", 300)

	s.Add(item)
	s.Decrement(item.ID)

	assert.True(t, s.Empty())
	assert.Empty(t, s.Lines())
}

func TestSelectionAdjustAbsentItemIsNoOp(t *testing.T) {
	var s Selection
	item := testItem("Том Ям", 400)
	s.Add(item)

	s.Increment(uuid.New())
	s.Decrement(uuid.New())

	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 1, s.Lines()[0].Quantity)
}

func TestSelectionInvariantsUnderMixedSequence(t *testing.T) {
	// No entry may ever hold quantity <= 0 and no two entries may share an
	// item identity, whatever the operation order.
	var s Selection
	a := testItem("A", 100)
	b := testItem("B", 200)

	ops := []func(){
		func() { s.Add(a) },
		func() { s.Add(b) },
		func() { s.Decrement(a.ID) },
		func() { s.Add(a) },
		func() { s.Increment(a.ID) },
		func() { s.Decrement(b.ID) },
		func() { s.Decrement(b.ID) },
		func() { s.Add(b) },
		func() { s.Add(a) },
		func() { s.Increment(uuid.New()) },
	}
	for _, op := range ops {
		op()
		seen := make(map[uuid.UUID]bool)
		for _, l := range s.Lines() {
			assert.Greater(t, l.Quantity, 0)
			assert.False(t, seen[l.Item.ID], "duplicate line for item %s", l.Item.Name)
			seen[l.Item.ID] = true
		}
	}

	// 3×A and 1×B survive the sequence.
	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "A", lines[0].Item.Name)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, "B", lines[1].Item.Name)
}

func TestSelectionLinesReturnsCopy(t *testing.T) {
	var s Selection
	s.Add(testItem("A", 100))

	lines := s.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, s.Lines()[0].Quantity)
}
