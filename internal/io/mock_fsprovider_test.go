package io

import (
	"github.com/desertwitch/memfs/internal/schema"
	"github.com/stretchr/testify/mock"
)

type mockFsProvider struct {
	mock.Mock
}

func newMockFsProvider(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockFsProvider {
	m := &mockFsProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockFsProvider) Create(path string) error {
	args := m.Called(path)

	return args.Error(0)
}

func (m *mockFsProvider) Link(src, dst string) error {
	args := m.Called(src, dst)

	return args.Error(0)
}

func (m *mockFsProvider) Unlink(path string) error {
	args := m.Called(path)

	return args.Error(0)
}

func (m *mockFsProvider) Stat(path string) (schema.Stat, error) {
	args := m.Called(path)
	st, _ := args.Get(0).(schema.Stat)

	return st, args.Error(1)
}

func (m *mockFsProvider) OpenMode(path string, mode schema.AccessMode) (int, error) {
	args := m.Called(path, mode)

	return args.Int(0), args.Error(1)
}

func (m *mockFsProvider) Close(fd int) error {
	args := m.Called(fd)

	return args.Error(0)
}

func (m *mockFsProvider) Fstat(fd int) (schema.Stat, error) {
	args := m.Called(fd)
	st, _ := args.Get(0).(schema.Stat)

	return st, args.Error(1)
}

func (m *mockFsProvider) Tell(fd int) (int64, error) {
	args := m.Called(fd)
	off, _ := args.Get(0).(int64)

	return off, args.Error(1)
}

func (m *mockFsProvider) Read(fd int, size int64) ([]byte, error) {
	args := m.Called(fd, size)
	data, _ := args.Get(0).([]byte)

	return data, args.Error(1)
}

func (m *mockFsProvider) Write(fd int, size int64, data []byte) error {
	args := m.Called(fd, size, data)

	return args.Error(0)
}
