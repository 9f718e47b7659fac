package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ridwanfathin/gst-invoice-service/internal/document"
	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
	"github.com/ridwanfathin/gst-invoice-service/internal/repository"
	"github.com/ridwanfathin/gst-invoice-service/internal/storage"
)

type memoryCompanies struct {
	mu        sync.Mutex
	profiles  map[string]domain.CompanyProfile
	err       error
	upsertErr error
}

func newMemoryCompanies(profiles ...domain.CompanyProfile) *memoryCompanies {
	m := &memoryCompanies{profiles: map[string]domain.CompanyProfile{}}
	for _, p := range profiles {
		m.profiles[p.ID] = p
	}
	return m
}

func (m *memoryCompanies) GetProfile(_ context.Context, id string) (*domain.CompanyProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, &repository.RepositoryError{Op: "get_profile", Err: repository.ErrProfileNotFound}
	}
	return &p, nil
}

func (m *memoryCompanies) UpsertProfile(_ context.Context, profile *domain.CompanyProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.profiles[profile.ID] = *profile
	return nil
}

type memoryLogos struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleteErr error
}

func newMemoryLogos() *memoryLogos {
	return &memoryLogos{objects: map[string][]byte{}}
}

func (m *memoryLogos) Put(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryLogos) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.objects[key]
	if !ok {
		return nil, &storage.StorageError{Op: "get_logo", Key: key, Err: storage.ErrLogoNotFound}
	}
	return d, nil
}

func (m *memoryLogos) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, key)
	return nil
}

func (m *memoryLogos) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

type renderCall struct {
	company   domain.CompanyInfo
	meta      domain.InvoiceMeta
	breakdown domain.TotalsBreakdown
	tax       domain.TaxConfig
	logo      []byte
}

type fakeRenderer struct {
	mu    sync.Mutex
	calls []renderCall
	err   error
	block chan struct{}
}

func (f *fakeRenderer) Render(company domain.CompanyInfo, meta domain.InvoiceMeta, breakdown domain.TotalsBreakdown, tax domain.TaxConfig, logo []byte) (*document.Document, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, renderCall{company, meta, breakdown, tax, logo})
	if f.err != nil {
		return nil, f.err
	}
	return &document.Document{Content: []byte("%PDF-fake"), Pages: 1, LogoEmbedded: len(logo) > 0}, nil
}

func (f *fakeRenderer) last() renderCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

var errBoom = errors.New("boom")
