package catalog

import (
	"context"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"
	"github.com/stretchr/testify/mock"
)

// MockCatalogSource is a mock implementation of CatalogSource for testing.
type MockCatalogSource struct {
	mock.Mock
}

var _ contract.CatalogSource = &MockCatalogSource{} // Compile-time check

// Servers implements the CatalogSource interface.
func (m *MockCatalogSource) Servers(ctx context.Context) ([]schema.ServerRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.ServerRecord)
	return records, args.Error(1)
}

// VcsInfo implements the CatalogSource interface.
func (m *MockCatalogSource) VcsInfo(ctx context.Context) ([]schema.VcsInfoRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.VcsInfoRecord)
	return records, args.Error(1)
}

// PackageInfo implements the CatalogSource interface.
func (m *MockCatalogSource) PackageInfo(ctx context.Context) ([]schema.PackageRegistryInfoRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.PackageRegistryInfoRecord)
	return records, args.Error(1)
}

// PackageConfigs implements the CatalogSource interface.
func (m *MockCatalogSource) PackageConfigs(ctx context.Context) ([]schema.PackageInstallConfigRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.PackageInstallConfigRecord)
	return records, args.Error(1)
}

// ContainerConfigs implements the CatalogSource interface.
func (m *MockCatalogSource) ContainerConfigs(ctx context.Context) ([]schema.ContainerInstallConfigRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.ContainerInstallConfigRecord)
	return records, args.Error(1)
}

// Tools implements the CatalogSource interface.
func (m *MockCatalogSource) Tools(ctx context.Context) ([]schema.ToolRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.ToolRecord)
	return records, args.Error(1)
}

// TopServersByStars implements the CatalogSource interface.
func (m *MockCatalogSource) TopServersByStars(ctx context.Context, limit int) ([]schema.TopServer, error) {
	args := m.Called(ctx, limit)
	top, _ := args.Get(0).([]schema.TopServer)
	return top, args.Error(1)
}

// LoadSnapshot implements the CatalogSource interface.
func (m *MockCatalogSource) LoadSnapshot(ctx context.Context) (*schema.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(*schema.Snapshot)
	return snap, args.Error(1)
}

// Status implements the CatalogSource interface.
func (m *MockCatalogSource) Status(ctx context.Context) (schema.CatalogStatus, error) {
	args := m.Called(ctx)
	status, _ := args.Get(0).(schema.CatalogStatus)
	return status, args.Error(1)
}

// Close implements the CatalogSource interface.
func (m *MockCatalogSource) Close() error {
	args := m.Called()
	return args.Error(0)
}
