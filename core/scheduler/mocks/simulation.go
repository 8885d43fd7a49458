package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// Simulation is a mock implementation of scheduler.Simulation
type Simulation struct {
	mock.Mock
}

func (m *Simulation) Initialize() error {
	args := m.Called()
	return args.Error(0)
}

func (m *Simulation) Update(delta, total time.Duration) {
	m.Called(delta, total)
}

func (m *Simulation) Render() {
	m.Called()
}

func (m *Simulation) SetFPSToDraw(fps int) {
	m.Called(fps)
}

func (m *Simulation) Close() error {
	args := m.Called()
	return args.Error(0)
}
