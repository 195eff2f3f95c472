package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mindmatch/memoryledger/internal/dependencies/mocks"
	"github.com/mindmatch/memoryledger/internal/storage/memory"
	"github.com/mindmatch/memoryledger/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Facts     *testutil.FactRecorder
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, logger)

	recorder := &testutil.FactRecorder{}
	app.Bus.Subscribe(recorder)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Facts:     recorder,
	}
}
