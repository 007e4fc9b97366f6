package contract

import (
	"context"

	"github.com/huangsam/whatsmygrade/schema"
	"github.com/stretchr/testify/mock"
)

// MockGradeSolver is a mock implementation of GradeSolver for testing.
type MockGradeSolver struct {
	mock.Mock
}

var _ GradeSolver = &MockGradeSolver{} // Compile-time check

// SolveContent implements the GradeSolver interface.
func (m *MockGradeSolver) SolveContent(ctx context.Context, content string) (*schema.Course, schema.Result, error) {
	args := m.Called(ctx, content)
	course, _ := args.Get(0).(*schema.Course)
	return course, args.Get(1).(schema.Result), args.Error(2)
}

// Evaluate implements the GradeSolver interface.
func (m *MockGradeSolver) Evaluate(ctx context.Context, expression string) (float64, error) {
	args := m.Called(ctx, expression)
	return args.Get(0).(float64), args.Error(1)
}
