package gerrit

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// MockAPI is a testify mock of API
type MockAPI struct {
	mock.Mock
}

// BaseURL implements API.
func (m *MockAPI) BaseURL() string {
	return DefaultURL
}

// ChangeDetail implements API.
func (m *MockAPI) ChangeDetail(ctx context.Context, id string) (json.RawMessage, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// QueryChanges implements API.
func (m *MockAPI) QueryChanges(ctx context.Context, query string, start, limit int) ([]json.RawMessage, error) {
	args := m.Called(query, start, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}
