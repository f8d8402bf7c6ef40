package audit

import (
	"context"
	"testing"

	"github.com/khata/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, entry *Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockRepo) Find(ctx context.Context, filter Filter) ([]Entry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]Entry), args.Error(1)
}

func TestNewEntry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		e, err := NewEntry(" register_entry ", 7, ActionInsert, map[string]any{"amount": int64(500)})
		require.NoError(t, err)
		assert.Equal(t, TableRegisterEntry, e.TableName)
		assert.Equal(t, int64(7), e.RecordID)
		assert.False(t, e.Timestamp.IsZero())
	})

	tests := []struct {
		name   string
		table  string
		action Action
	}{
		{"empty table", " ", ActionInsert},
		{"audit table", "AUDIT_LOG", ActionInsert},
		{"bad action", TableMemoEntry, Action("TRUNCATE")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntry(tt.table, 1, tt.action, nil)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
		})
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" delete ")
	require.NoError(t, err)
	assert.Equal(t, ActionDelete, a)

	_, err = ParseAction("merge")
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	before := map[string]any{"status": "N", "partial_amount": int64(0), "amount": int64(5000)}
	after := map[string]any{"status": "F", "partial_amount": int64(5000), "amount": int64(5000)}

	d := Diff(before, after)
	assert.Len(t, d, 2)
	assert.Equal(t, map[string]any{"old": "N", "new": "F"}, d["status"])
	assert.NotContains(t, d, "amount")

	assert.Empty(t, Diff(after, after))
}

func TestRecord(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	repo.On("Create", ctx, mock.MatchedBy(func(e *Entry) bool {
		return e.TableName == TableMemoEntry && e.RecordID == 3 && e.Action == ActionDelete
	})).Return(nil)

	require.NoError(t, Record(ctx, repo, TableMemoEntry, 3, ActionDelete, nil))
	repo.AssertExpectations(t)

	assert.Error(t, Record(ctx, repo, TableAuditLog, 1, ActionInsert, nil))
	repo.AssertNumberOfCalls(t, "Create", 1)
}
