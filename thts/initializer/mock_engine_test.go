// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Code written by hand in the shape mockgen would produce for
// engine.SearchEngine, since only one method of the interface matters
// to ExpandNode's contract and a generated file would be all
// boilerplate around it.

package initializer_test

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/prost-go/prost/state"
)

// MockSearchEngine is a mock of the engine.SearchEngine interface.
type MockSearchEngine struct {
	ctrl     *gomock.Controller
	recorder *MockSearchEngineMockRecorder
}

// MockSearchEngineMockRecorder is the mock recorder for MockSearchEngine.
type MockSearchEngineMockRecorder struct {
	mock *MockSearchEngine
}

// NewMockSearchEngine creates a new mock instance.
func NewMockSearchEngine(ctrl *gomock.Controller) *MockSearchEngine {
	m := &MockSearchEngine{ctrl: ctrl}
	m.recorder = &MockSearchEngineMockRecorder{m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSearchEngine) EXPECT() *MockSearchEngineMockRecorder {
	return m.recorder
}

// EstimateQValues mocks base method.
func (m *MockSearchEngine) EstimateQValues(s state.State, applicable []int) []float64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EstimateQValues", s, applicable)
	ret0, _ := ret[0].([]float64)
	return ret0
}

// EstimateQValues indicates an expected call.
func (mr *MockSearchEngineMockRecorder) EstimateQValues(s, applicable any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EstimateQValues", reflect.TypeOf((*MockSearchEngine)(nil).EstimateQValues), s, applicable)
}

// UsesCaching mocks base method.
func (m *MockSearchEngine) UsesCaching() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UsesCaching")
	ret0, _ := ret[0].(bool)
	return ret0
}

// UsesCaching indicates an expected call.
func (mr *MockSearchEngineMockRecorder) UsesCaching() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UsesCaching", reflect.TypeOf((*MockSearchEngine)(nil).UsesCaching))
}

// SetCaching mocks base method.
func (m *MockSearchEngine) SetCaching(enabled bool) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetCaching", enabled)
}

// SetCaching indicates an expected call.
func (mr *MockSearchEngineMockRecorder) SetCaching(enabled any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetCaching", reflect.TypeOf((*MockSearchEngine)(nil).SetCaching), enabled)
}

// MaxSearchDepth mocks base method.
func (m *MockSearchEngine) MaxSearchDepth() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MaxSearchDepth")
	ret0, _ := ret[0].(int)
	return ret0
}

// MaxSearchDepth indicates an expected call.
func (mr *MockSearchEngineMockRecorder) MaxSearchDepth() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MaxSearchDepth", reflect.TypeOf((*MockSearchEngine)(nil).MaxSearchDepth))
}
